package flow

// PostPrerollResult tells the rasterizer how to proceed after preroll.
// None of the values is an error; they are scheduling outcomes driven by
// thread merging.
type PostPrerollResult uint8

const (
	// PostPrerollSuccess continues to paint and submit normally.
	PostPrerollSuccess PostPrerollResult = iota
	// PostPrerollResubmitFrame finishes the frame and submits the same
	// layer tree again.
	PostPrerollResubmitFrame
	// PostPrerollSkipAndRetryFrame drops the frame and retries the same
	// layer tree in a new one.
	PostPrerollSkipAndRetryFrame
)

// String returns the name of the result.
func (r PostPrerollResult) String() string {
	switch r {
	case PostPrerollSuccess:
		return "Success"
	case PostPrerollResubmitFrame:
		return "ResubmitFrame"
	case PostPrerollSkipAndRetryFrame:
		return "SkipAndRetryFrame"
	default:
		return "Unknown"
	}
}
