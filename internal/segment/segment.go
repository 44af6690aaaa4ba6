// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

// Package segment splits raw assistant replies into an ordered sequence of
// renderable text and fenced-code segments.
//
// Split is a pure, total function over strings: it never fails, and malformed
// fence markup degrades to plain text. The presentation layer calls it on
// every render; segments are never stored.
package segment

import (
	"strings"

	"github.com/codegenhq/codechat/models"
)

const fence = "```"

// Split scans content for spans of the form "``` [lang] \n body ```" and
// returns the resulting segments in strict input order.
//
// Each well-formed fenced span becomes a code segment whose Language is the
// fence tag (empty if absent) and whose Body is the fenced content with
// surrounding whitespace trimmed. Spans between fences become text segments;
// whitespace-only spans are dropped. Adjacent segments of the same kind are
// not merged.
//
// An opening fence with no closing fence is not a code block: the unflushed
// text before it and everything after it collapse into one text segment, so
// the degenerate input "before ```js\ncode" yields a single text segment
// equal to the whole input.
func Split(content string) []models.Segment {
	var segments []models.Segment

	// textStart marks the beginning of the current unflushed text span.
	textStart := 0
	pos := 0

	flushText := func(end int) {
		span := content[textStart:end]
		if strings.TrimSpace(span) == "" {
			return
		}
		segments = append(segments, models.Segment{
			Kind: models.SegmentText,
			Body: span,
		})
	}

	for {
		open := strings.Index(content[pos:], fence)
		if open < 0 {
			break
		}
		open += pos

		lang, bodyStart, ok := parseFenceOpen(content, open+len(fence))
		if !ok {
			// Not a fence opening (no newline after the tag, or a
			// non-tag character). Keep scanning past the backticks.
			pos = open + len(fence)
			continue
		}

		closing := strings.Index(content[bodyStart:], fence)
		if closing < 0 {
			// Unterminated fence: the rest of the input is text.
			break
		}
		closing += bodyStart

		flushText(open)
		segments = append(segments, models.Segment{
			Kind:     models.SegmentCode,
			Language: lang,
			Body:     strings.TrimSpace(content[bodyStart:closing]),
		})

		pos = closing + len(fence)
		textStart = pos
	}

	flushText(len(content))
	return segments
}

// parseFenceOpen reads an optional language tag followed by a newline,
// starting just after an opening triple backtick. It returns the tag, the
// index of the first body byte, and whether the opening is well formed.
func parseFenceOpen(content string, i int) (string, int, bool) {
	tagStart := i
	for i < len(content) && isTagChar(content[i]) {
		i++
	}
	if i >= len(content) || content[i] != '\n' {
		return "", 0, false
	}
	return content[tagStart:i], i + 1, true
}

// isTagChar reports whether c may appear in a fence language tag, matching
// the word-character class: letters, digits and underscore.
func isTagChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	}
	return false
}

// FirstCode returns the first code segment of content, if any. Used by the
// copy-to-clipboard action, which copies code rather than prose.
func FirstCode(content string) (models.Segment, bool) {
	for _, s := range Split(content) {
		if s.Kind == models.SegmentCode {
			return s, true
		}
	}
	return models.Segment{}, false
}
