package flow

import (
	"errors"
	"strconv"
)

// Errors reported by flow. They describe contract violations by the caller
// (mismatched push/pop nesting, unregistered views, reuse of a finished
// recording), never conditions an end user is expected to see.
var (
	// ErrTypeMismatch is matched by the panic value of a Mutator accessor
	// called for the wrong mutator type.
	ErrTypeMismatch = errors.New("flow: mutator type mismatch")

	// ErrEmptyStack is returned by MutatorsStack.Pop on an empty stack.
	ErrEmptyStack = errors.New("flow: pop from empty mutators stack")

	// ErrInvalidPopCount is returned by MutatorsStack.PopTo when asked to
	// keep more entries than the stack holds.
	ErrInvalidPopCount = errors.New("flow: pop count exceeds stack size")

	// ErrUnknownView is matched by errors about a platform view that was not
	// prerolled in the current frame.
	ErrUnknownView = errors.New("flow: unknown platform view")

	// ErrRecordingEnded is returned when a slice recording is ended twice.
	ErrRecordingEnded = errors.New("flow: recording already ended")

	// ErrRecordingNotEnded is returned when a slice is queried or replayed
	// before its recording has ended.
	ErrRecordingNotEnded = errors.New("flow: recording not ended")

	// ErrFrameAlreadySubmitted is returned by SurfaceFrame.Submit after the
	// first call.
	ErrFrameAlreadySubmitted = errors.New("flow: frame already submitted")
)

// TypeMismatchError describes a Mutator accessor used on the wrong type.
type TypeMismatchError struct {
	Method string
	Want   MutatorType
	Got    MutatorType
}

func (e *TypeMismatchError) Error() string {
	return "flow: Mutator." + e.Method + " called on " + e.Got.String() + " mutator, want " + e.Want.String()
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnknownViewError reports the id of a platform view that is not registered.
type UnknownViewError struct {
	ViewID int64
}

func (e *UnknownViewError) Error() string {
	return "flow: unknown platform view " + strconv.FormatInt(e.ViewID, 10)
}

// Is reports whether target is ErrUnknownView.
func (e *UnknownViewError) Is(target error) bool {
	return target == ErrUnknownView
}
