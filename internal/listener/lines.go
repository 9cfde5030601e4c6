package listener

import (
	"bytes"
	"io"
)

// lineConn adapts a network stream to the newline-only text the game reads
// and writes. Incoming CRLF or bare CR become LF, outgoing LF becomes CRLF.
type lineConn struct {
	rw     io.ReadWriter
	lastCR bool
}

func newLineConn(rw io.ReadWriter) *lineConn {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		out := p[:0]
		for _, b := range p[:n] {
			// A CR ends the line; an LF right after it, even in the next
			// read, belongs to the same line ending.
			if b == '\n' && c.lastCR {
				c.lastCR = false
				continue
			}
			c.lastCR = b == '\r'
			if c.lastCR {
				b = '\n'
			}
			out = append(out, b)
		}
		if len(out) > 0 || err != nil || n == 0 {
			return len(out), err
		}
	}
}

func (c *lineConn) Write(p []byte) (int, error) {
	if _, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes the underlying stream when it can be closed.
func (c *lineConn) Close() error {
	if cl, ok := c.rw.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
