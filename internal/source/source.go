package source

import (
	"fmt"
	"unicode/utf8"
)

// Source is a retained source buffer. Spans refer into it by offset, so it
// must not be modified once spans have been taken from it.
type Source struct {
	Name string
	Text string
}

func New(name, text string) *Source {
	return &Source{Name: name, Text: text}
}

// Span returns the span covering bytes [start, end) of the source.
func (s *Source) Span(start, end int) Span {
	if start < 0 || end < start || end > len(s.Text) {
		panic(fmt.Sprintf("span [%d, %d) out of range for source of length %d", start, end, len(s.Text)))
	}
	return Span{src: s, start: start, end: end}
}

// Position converts a byte offset into a line and column, both 1-based.
// Columns count runes, not bytes.
func (s *Source) Position(offset int) Position {
	line, col := 1, 1
	for i, r := range s.Text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Filename: s.Name, Line: line, Col: col}
}

type Position struct {
	Filename string
	Line     int
	Col      int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// Span is an immutable reference to a contiguous region of a Source.
//
// Two spans are equal when they cover the same offsets of sources with the
// same name and text. The buffer's identity does not matter, but the
// position does: the same token at two places is two different spans.
// reflect.DeepEqual agrees with Equal.
type Span struct {
	src        *Source
	start, end int
}

func (s Span) Start() int { return s.start }

func (s Span) End() int { return s.end }

func (s Span) Len() int { return s.end - s.start }

func (s Span) Source() *Source { return s.src }

// Text returns the source text the span denotes.
func (s Span) Text() string {
	if s.src == nil {
		return ""
	}
	return s.src.Text[s.start:s.end]
}

func (s Span) Pos() Position {
	if s.src == nil {
		return Position{Line: 1, Col: 1}
	}
	return s.src.Position(s.start)
}

func (s Span) Equal(other Span) bool {
	if s.start != other.start || s.end != other.end {
		return false
	}
	if s.src == nil || other.src == nil {
		return s.src == other.src
	}
	return s.src.Name == other.src.Name && s.src.Text == other.src.Text
}

// Join returns the smallest span covering both s and other. Both must refer
// to the same source.
func (s Span) Join(other Span) Span {
	start, end := s.start, s.end
	if other.start < start {
		start = other.start
	}
	if other.end > end {
		end = other.end
	}
	return Span{src: s.src, start: start, end: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d..%d]", s.Pos(), s.start, s.end)
}

// RuneCount is the number of runes in the denoted text.
func (s Span) RuneCount() int {
	return utf8.RuneCountInString(s.Text())
}
