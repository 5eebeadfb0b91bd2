package funge

import (
	"fmt"
	"io"
	"strconv"
)

// ioPort adapts the caller's reader and writer to the two byte-oriented
// capabilities the engine needs: read exactly one byte with end-of-stream
// distinguishable from other failures, and write-all.
type ioPort struct {
	in  io.Reader
	out io.Writer
	buf [1]byte
}

func newIOPort(in io.Reader, out io.Writer) *ioPort {
	return &ioPort{in: in, out: out}
}

// readByte reads exactly one byte. eos is true on a clean end of stream.
func (p *ioPort) readByte() (b byte, eos bool, err error) {
	_, err = io.ReadFull(p.in, p.buf[:])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return p.buf[0], false, nil
}

// writeAll writes the whole of data.
func (p *ioPort) writeAll(data []byte) error {
	_, err := p.out.Write(data)
	return err
}

// writeDecimal writes the decimal representation of v followed by one space,
// the Befunge-93 output format for numbers.
func (p *ioPort) writeDecimal(v int64) error {
	return p.writeAll(append(strconv.AppendInt(nil, v, 10), ' '))
}

// readDecimal skips ASCII whitespace, then reads non-whitespace bytes and
// parses them as a signed decimal integer. End of stream terminates a token
// like whitespace does; an empty token is invalid data.
func (p *ioPort) readDecimal() (int64, error) {
	var token []byte
	for {
		b, eos, err := p.readByte()
		if err != nil {
			return 0, err
		}
		if eos {
			break
		}
		if asciiSpace(b) {
			if len(token) == 0 {
				continue
			}
			break
		}
		token = append(token, b)
	}
	if len(token) == 0 {
		return 0, fmt.Errorf("%w: empty token", ErrInvalidData)
	}
	v, err := strconv.ParseInt(string(token), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidData, token)
	}
	return v, nil
}

func asciiSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
