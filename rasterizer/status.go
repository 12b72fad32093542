// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterizer

import "github.com/gogpu/flow"

// Status is the outcome of one Draw.
type Status uint8

const (
	// StatusSuccess means the frame was presented.
	StatusSuccess Status = iota
	// StatusResubmit means the frame was presented and must be drawn
	// again on the merged thread.
	StatusResubmit
	// StatusSkipAndRetry means the frame was dropped before painting and
	// must be drawn again.
	StatusSkipAndRetry
	// StatusFailed means the frame could not be drawn.
	StatusFailed
)

// String returns the metric label of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusResubmit:
		return "resubmit"
	case StatusSkipAndRetry:
		return "skip_and_retry"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Retry reports whether the same tree must be drawn again.
func (s Status) Retry() bool {
	return s == StatusResubmit || s == StatusSkipAndRetry
}

func statusFromResult(r flow.PostPrerollResult) Status {
	switch r {
	case flow.PostPrerollResubmitFrame:
		return StatusResubmit
	case flow.PostPrerollSkipAndRetryFrame:
		return StatusSkipAndRetry
	default:
		return StatusSuccess
	}
}
