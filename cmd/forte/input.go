package main

import "io"

// lineReader serves bytes from lines pulled on demand, each followed by
// a newline.
type lineReader struct {
	next func() (string, error)
	buf  []byte
}

var _ io.ByteReader = new(lineReader)

func (l *lineReader) fill() error {
	for len(l.buf) == 0 {
		line, err := l.next()
		if err != nil {
			return err
		}
		l.buf = append(l.buf[:0], line...)
		l.buf = append(l.buf, '\n')
	}
	return nil
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := l.fill(); err != nil {
		return 0, err
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}

func (l *lineReader) ReadByte() (byte, error) {
	if err := l.fill(); err != nil {
		return 0, err
	}
	b := l.buf[0]
	l.buf = l.buf[1:]
	return b, nil
}
