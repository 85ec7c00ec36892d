// Package source loads documentation from files and URLs and prepares it
// for extraction: plain-text conversion, paragraph segmentation, and change
// watching.
package source

import "strings"

// DefaultMaxSegmentLength is the segment size used when none is configured.
const DefaultMaxSegmentLength = 2000

// Segment splits text into extraction-sized segments on paragraph
// boundaries. Paragraphs accumulate greedily while the running segment plus
// the next paragraph stays under maxLength; a single paragraph longer than
// the limit becomes its own oversized segment rather than being split
// mid-paragraph. A text with no usable paragraphs degrades to one truncated
// segment so downstream stages always see input.
func Segment(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxSegmentLength
	}

	paragraphs := strings.Split(text, "\n\n")
	var segments []string
	var current strings.Builder

	for _, para := range paragraphs {
		if current.Len()+len(para) < maxLength {
			current.WriteString(para)
			current.WriteString("\n\n")
			continue
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}
		current.Reset()
		current.WriteString(para)
		current.WriteString("\n\n")
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		segments = append(segments, s)
	}

	if len(segments) == 0 {
		if len(text) > maxLength {
			text = text[:maxLength]
		}
		return []string{text}
	}

	return segments
}
