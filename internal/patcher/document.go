package patcher

import (
	"bytes"
	"strings"
)

const (
	// LF is the Unix line terminator.
	LF = "\n"
	// CRLF is the Windows line terminator.
	CRLF = "\r\n"
)

// Document is a text file held as an ordered sequence of lines.
// It remembers the line terminator and trailing-terminator state of the
// input so Bytes reproduces the original convention.
type Document struct {
	Lines []string
	// Terminator is LF or CRLF, detected from the first line break.
	Terminator string
	// TrailingTerminator is true when the content ended with a line break.
	TrailingTerminator bool
}

// Parse splits data into a Document.
// An empty input yields a Document with no lines.
func Parse(data []byte) *Document {
	doc := &Document{Terminator: detectTerminator(data)}
	if len(data) == 0 {
		return doc
	}

	text := string(data)
	if strings.HasSuffix(text, doc.Terminator) {
		doc.TrailingTerminator = true
		text = strings.TrimSuffix(text, doc.Terminator)
	}
	doc.Lines = strings.Split(text, doc.Terminator)
	return doc
}

// detectTerminator returns CRLF when the first line break is preceded by a
// carriage return, LF otherwise (including when there is no line break).
func detectTerminator(data []byte) string {
	idx := bytes.IndexByte(data, '\n')
	if idx > 0 && data[idx-1] == '\r' {
		return CRLF
	}
	return LF
}

// Bytes joins the lines back together using the detected conventions.
func (d *Document) Bytes() []byte {
	if len(d.Lines) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(d.Lines, d.Terminator))
	if d.TrailingTerminator {
		buf.WriteString(d.Terminator)
	}
	return buf.Bytes()
}

// FindMarker returns the index of the first line exactly equal to marker,
// or -1. No trimming or case folding is applied.
func (d *Document) FindMarker(marker string) int {
	for i, line := range d.Lines {
		if line == marker {
			return i
		}
	}
	return -1
}

// InsertAfter places lines immediately after the line at index idx.
func (d *Document) InsertAfter(idx int, lines []string) {
	out := make([]string, 0, len(d.Lines)+len(lines))
	out = append(out, d.Lines[:idx+1]...)
	out = append(out, lines...)
	out = append(out, d.Lines[idx+1:]...)
	d.Lines = out
}
