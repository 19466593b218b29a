package lexer

import "sort"

type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in bytes
	Offset int // 0-based absolute index in input
}

// LineIndex maps byte offsets to line and column numbers. Lines end at
// "\n", "\r\n" or a lone "\r", matching how the scanner splits NEWLINE
// tokens.
type LineIndex struct {
	src    []byte
	starts []int
}

func NewLineIndex(src []byte) *LineIndex {
	starts := make([]int, 1, len(src)/32+1)
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Position returns the position of offset. Offsets outside the source are
// clamped to it.
func (x *LineIndex) Position(offset int) Position {
	offset = max(0, min(offset, len(x.src)))
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return Position{
		Line:   line + 1,
		Column: offset - x.starts[line] + 1,
		Offset: offset,
	}
}

func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// Line returns the text of the 1-based line n without its line break, or
// nil if there is no such line.
func (x *LineIndex) Line(n int) []byte {
	if n < 1 || n > len(x.starts) {
		return nil
	}
	start := x.starts[n-1]
	end := len(x.src)
	if n < len(x.starts) {
		end = x.starts[n]
		if x.src[end-1] == '\n' {
			end--
		}
		if end > start && x.src[end-1] == '\r' {
			end--
		}
	}
	return x.src[start:end]
}
