package emu

import "regexp"

// urlPattern matches the URL schemes worth turning into clickable
// links. Terminator characters exclude whitespace, quoting and bracket
// characters that commonly wrap URLs in shell output.
var urlPattern = regexp.MustCompile(
	`(ipfs:|ipns:|magnet:|mailto:|gemini://|gopher://|https://|http://|news:|file://|git://|ssh:|ftp://)` +
		"[^\x00-\x1f\x7f<>\"\\s{}^⟨⟩`]+",
)

// LinkSpan is a detected hyperlink occupying a run of cells on one
// viewport row.
type LinkSpan struct {
	Row      int
	StartCol int
	// EndCol is inclusive.
	EndCol int
	URL    string
}

// findLinks scans every viewport row of the snapshot for URLs. Spans
// are in viewport coordinates and do not wrap across rows; a URL split
// by the emulator across two rows detects as two separate spans.
func findLinks(s *Snapshot) []LinkSpan {
	var spans []LinkSpan
	for y := 0; y < s.Rows; y++ {
		line := s.Line(y)
		if line == "" {
			continue
		}
		for _, m := range urlPattern.FindAllStringIndex(line, -1) {
			// Regexp indexes are byte offsets; columns are rune counts.
			start := len([]rune(line[:m[0]]))
			width := len([]rune(line[m[0]:m[1]]))
			if width == 0 {
				continue
			}
			spans = append(spans, LinkSpan{
				Row:      y,
				StartCol: start,
				EndCol:   start + width - 1,
				URL:      line[m[0]:m[1]],
			})
		}
	}
	return spans
}

// LinkAt returns the link covering the viewport cell, if any.
func (s *Snapshot) LinkAt(x, y int) (LinkSpan, bool) {
	for _, l := range s.Links {
		if l.Row == y && x >= l.StartCol && x <= l.EndCol {
			return l, true
		}
	}
	return LinkSpan{}, false
}
