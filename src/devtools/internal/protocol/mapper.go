// The line table and offset search in this file follow the gopls "protocol" mapper.
// Based on the following: https://github.com/golang/tools/blob/67d73b2960c82b2c8db0b9d0694c66a789a1db11/gopls/internal/lsp/protocol/mapper.go

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// License Revision: https://github.com/golang/tools/blob/67d73b2960c82b2c8db0b9d0694c66a789a1db11/LICENSE

package protocol

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// TextOffsetMapper converts between positions and byte offsets of a document.
// Columns are counted in characters (Unicode code points) of the enclosing line,
// which is how edits and diagnostics address text in this service.
type TextOffsetMapper struct {
	Content []byte

	// Computed lazily; call initLines() before accessing fields below.
	linesOnce sync.Once
	lineStart []int // byte offset of start of ith line (0-based); last=EOF iff \n-terminated
	nonASCII  bool
}

// NewTextOffsetMapper creates a new mapper for the given content.
func NewTextOffsetMapper(content []byte) *TextOffsetMapper {
	return &TextOffsetMapper{Content: content}
}

// initLines populates the lineStart table.
func (m *TextOffsetMapper) initLines() {
	m.linesOnce.Do(func() {
		nlines := bytes.Count(m.Content, []byte("\n"))
		m.lineStart = make([]int, 1, nlines+1) // initially []int{0}
		for offset, b := range m.Content {
			if b == '\n' {
				m.lineStart = append(m.lineStart, offset+1)
			}
			if b >= utf8.RuneSelf {
				m.nonASCII = true
			}
		}
	})
}

// LineCount returns the number of lines, counting a final line without a terminator.
func (m *TextOffsetMapper) LineCount() int {
	m.initLines()
	if len(m.Content) > 0 && m.Content[len(m.Content)-1] == '\n' {
		return len(m.lineStart) - 1
	}
	return len(m.lineStart)
}

// PositionOffset converts a position to a byte offset.
func (m *TextOffsetMapper) PositionOffset(p protocol.Position) (int, error) {
	m.initLines()

	// Validate line number.
	if p.Line > uint32(len(m.lineStart)) {
		return 0, fmt.Errorf("line number %d out of range 0-%d", p.Line, len(m.lineStart))
	} else if p.Line == uint32(len(m.lineStart)) {
		if p.Character == 0 {
			return len(m.Content), nil // EOF
		}
		return 0, fmt.Errorf("column is beyond end of file")
	}

	offset := m.lineStart[p.Line]
	content := m.Content[offset:] // rest of file from start of enclosing line

	col8 := 0
	for col := 0; col < int(p.Character); col++ {
		r, sz := utf8.DecodeRune(content)
		if sz == 0 {
			return 0, fmt.Errorf("column %d is beyond end of file", p.Character)
		}
		if r == '\n' || (r == '\r' && bytes.HasPrefix(content[1:], []byte("\n"))) {
			return 0, fmt.Errorf("column %d is beyond end of line %d", p.Character, p.Line)
		}
		if sz == 1 && r == utf8.RuneError {
			return 0, fmt.Errorf("buffer contains invalid UTF-8 text")
		}
		content = content[sz:]
		col8 += sz
	}
	return offset + col8, nil
}

// OffsetPosition converts a byte offset to a position.
func (m *TextOffsetMapper) OffsetPosition(offset int) (protocol.Position, error) {
	if !(0 <= offset && offset <= len(m.Content)) {
		return protocol.Position{}, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(m.Content))
	}

	line, start, cr := m.line(offset)
	col := offset - start
	if m.nonASCII {
		col = utf8.RuneCount(m.Content[start:offset])
	}
	if cr {
		col-- // retreat from \r at line end
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}, nil
}

// Lines returns lines start through end (0-based, inclusive) without their terminators.
// end is clamped to the last line; ok is false when nothing remains to return.
func (m *TextOffsetMapper) Lines(start, end int) (lines []string, ok bool) {
	count := m.LineCount()
	if end > count-1 {
		end = count - 1
	}
	if start < 0 || start > end {
		return nil, false
	}

	lines = make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		from := m.lineStart[i]
		to := len(m.Content)
		if i+1 < len(m.lineStart) {
			to = m.lineStart[i+1] - 1
		}
		lines = append(lines, string(bytes.TrimSuffix(m.Content[from:to], []byte("\r"))))
	}
	return lines, true
}

// line returns:
// - the 0-based index of the line that encloses the (valid) byte offset;
// - the start offset of that line; and
// - whether the offset denotes a carriage return (\r) at line end.
func (m *TextOffsetMapper) line(offset int) (int, int, bool) {
	m.initLines()
	// In effect, binary search returns a 1-based result.
	line := sort.Search(len(m.lineStart), func(i int) bool {
		return offset < m.lineStart[i]
	})

	// Adjustment for line-endings: \r|\n is the same as |\r\n.
	var eol int
	if line == len(m.lineStart) {
		eol = len(m.Content) // EOF
	} else {
		eol = m.lineStart[line] - 1
	}
	cr := offset == eol && offset > 0 && m.Content[offset-1] == '\r'

	line-- // 0-based

	return line, m.lineStart[line], cr
}
