package template

import (
	"bufio"
	"io"
)

const defaultPageSize = 1024

// pagedReader decodes runes from a forward-only source and retains every rune
// it has ever produced, in fixed-size pages. Replayed reads are served from
// the pages without touching the upstream source, which is what allows a
// repeating section body to be rendered once per element even when the source
// is a network stream that cannot seek.
//
// Marks form a stack: Reset moves the read position to the most recently
// recorded mark and consumes it, so nested repeating sections each get their
// own replay point. Reset with no recorded mark rewinds to the start.
type pagedReader struct {
	src      *bufio.Reader
	pageSize int

	pages    [][]rune
	position int
	count    int
	eof      bool

	marks []int
}

func newPagedReader(r io.Reader) *pagedReader {
	return newPagedReaderSize(r, defaultPageSize)
}

func newPagedReaderSize(r io.Reader, pageSize int) *pagedReader {
	return &pagedReader{src: bufio.NewReader(r), pageSize: pageSize}
}

// ReadRune returns the next rune, replaying retained runes first and reading
// from the upstream source only at the frontier. It returns io.EOF once the
// retained history is exhausted and the source has ended.
func (pr *pagedReader) ReadRune() (rune, error) {
	if pr.position < pr.count {
		c := pr.pages[pr.position/pr.pageSize][pr.position%pr.pageSize]
		pr.position++
		return c, nil
	}

	if pr.eof {
		return 0, io.EOF
	}

	c, _, err := pr.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			pr.eof = true
		}
		return 0, err
	}

	if pr.position/pr.pageSize == len(pr.pages) {
		pr.pages = append(pr.pages, make([]rune, pr.pageSize))
	}
	pr.pages[len(pr.pages)-1][pr.position%pr.pageSize] = c

	pr.position++
	pr.count++

	return c, nil
}

// Mark records the current read position.
func (pr *pagedReader) Mark() {
	pr.marks = append(pr.marks, pr.position)
}

// Reset moves the read position to the most recent mark and discards it, or
// to the start of the stream if no mark is recorded.
func (pr *pagedReader) Reset() {
	if n := len(pr.marks); n > 0 {
		pr.position = pr.marks[n-1]
		pr.marks = pr.marks[:n-1]
	} else {
		pr.position = 0
	}
}
