package dataset

import (
	"bufio"
	"bytes"
	"io"
)

const (
	maxLineLength = 1 << 20
	// prefix kept from an oversized line for error reports
	tooLongPrefix = 64
)

type inputLine struct {
	text    string
	tooLong bool
}

// lineReader splits input like bufio.ScanLines but never fails on long lines:
// anything over maxLineLength is drained and marked tooLong.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns io.EOF after the last line.
func (lr *lineReader) next() (inputLine, error) {
	lr.buf = lr.buf[:0]
	var tooLong, read bool
	for {
		chunk, err := lr.r.ReadSlice('\n')
		if len(chunk) != 0 {
			read = true
		}
		if !tooLong {
			lr.buf = append(lr.buf, chunk...)
			if len(lr.buf) > maxLineLength {
				tooLong = true
				lr.buf = lr.buf[:tooLongPrefix]
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF {
			if !read {
				return inputLine{}, io.EOF
			}
			break
		}
		if err != nil {
			return inputLine{}, err
		}
		break
	}
	if tooLong {
		return inputLine{text: string(lr.buf), tooLong: true}, nil
	}
	var line = bytes.TrimSuffix(lr.buf, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return inputLine{text: string(line)}, nil
}
