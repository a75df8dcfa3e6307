package parser

import (
	"bufio"
	"io"
)

const (
	initialScanBufSize = 64 * 1024        // 64KB
	maxRecordBytes     = 20 * 1024 * 1024 // 20MB
)

// lineReader walks a transcript line by line. Lines longer than
// maxLen are not buffered; they are reported as oversized so the
// caller can still account for them (one line, one record). The
// buffer starts small and grows on demand up to maxLen.
type lineReader struct {
	r      *bufio.Reader
	maxLen int
	buf    []byte
	err    error
}

func newLineReader(r io.Reader, maxLen int) *lineReader {
	return &lineReader{
		r:      bufio.NewReaderSize(r, initialScanBufSize),
		maxLen: maxLen,
		buf:    make([]byte, 0, initialScanBufSize),
	}
}

// next returns the next line without its trailing newline.
// Oversized lines come back as ("", true, true). ok is false once
// the input is exhausted or a read fails; check lr.err after.
func (lr *lineReader) next() (line string, oversized, ok bool) {
	lr.buf = lr.buf[:0]
	skipping := false

	for {
		chunk, isPrefix, err := lr.r.ReadLine()
		if err != nil {
			if err == io.EOF {
				if skipping {
					return "", true, true
				}
				if len(lr.buf) > 0 {
					return string(lr.buf), false, true
				}
			} else {
				lr.err = err
			}
			return "", false, false
		}

		if skipping {
			if !isPrefix {
				return "", true, true
			}
			continue
		}

		lr.buf = append(lr.buf, chunk...)
		if len(lr.buf) > lr.maxLen {
			skipping = true
			lr.buf = lr.buf[:0]
			if !isPrefix {
				return "", true, true
			}
			continue
		}

		if !isPrefix {
			return string(lr.buf), false, true
		}
	}
}
