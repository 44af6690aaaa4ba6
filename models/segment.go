// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package models

// SegmentKind distinguishes prose from fenced source code in an assistant
// reply.
type SegmentKind string

const (
	// SegmentText is a run of plain prose.
	SegmentText SegmentKind = "text"

	// SegmentCode is the body of a fenced code block.
	SegmentCode SegmentKind = "code"
)

// Segment is a contiguous renderable run extracted from a message body.
//
// Segments are recomputed from Message.Content on every render and are never
// stored.
type Segment struct {
	// Kind is the segment type.
	Kind SegmentKind

	// Language is the fence's language tag. Empty for text segments and
	// for code fences with no tag.
	Language string

	// Body is the segment content. For code segments the fence markup is
	// stripped and surrounding whitespace trimmed.
	Body string
}
