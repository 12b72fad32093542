// Package displaylist records drawing operations into immutable display
// lists that can be replayed, dispatched to receivers, and queried by region.
//
// # Architecture
//
// The package follows a command pattern with three parts:
//
//   - Canvas: the drawing surface interface that layer painting code targets
//   - Builder: a Canvas that records typed ops instead of rasterizing
//   - DisplayList: the immutable result of Builder.Build
//
// While recording, the Builder tracks the current matrix and the device
// clip bounds, and indexes the device-space bounds of every drawing op.
// The built list uses that index to answer region queries ("which pixels
// did this list touch?") without replaying anything.
//
// # Basic Usage
//
//	b := displaylist.NewBuilder(geom.MakeLTRB(0, 0, 800, 600))
//	b.Translate(10, 10)
//	b.DrawRect(geom.MakeXYWH(0, 0, 100, 50), displaylist.FillPaint(red))
//	dl := b.Build()
//
//	dl.Region()            // pixels touched, in device space
//	dl.Dispatch(receiver)  // replay op by op
//	other.DrawDisplayList(dl, 1) // nest into another canvas
//
// # Thread Safety
//
// Builder is NOT safe for concurrent use. DisplayList values are immutable
// after Build and can be shared and dispatched from multiple goroutines.
package displaylist
