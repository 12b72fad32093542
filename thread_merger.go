package flow

// RasterThreadMerger is the signaling side of the mechanism that runs the
// raster work on the platform thread while platform views are on screen.
// Embedders only request transitions; they never perform the merge.
//
// A nil RasterThreadMerger is passed to embedders that do not support
// dynamic thread merging.
type RasterThreadMerger interface {
	// IsMerged reports whether the raster and platform threads are merged.
	IsMerged() bool

	// MergeWithLease merges the threads for at least leaseTerm frames.
	MergeWithLease(leaseTerm int)

	// ExtendLeaseTo extends an existing merge to at least leaseTerm frames.
	ExtendLeaseTo(leaseTerm int)
}

// DefaultMergedLeaseDuration is the number of frames the threads stay
// merged after the last frame that contained a platform view.
const DefaultMergedLeaseDuration = 10
