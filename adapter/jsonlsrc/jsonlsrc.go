// Package jsonlsrc reads newline delimited JSON as a pull source for groupkit.
package jsonlsrc

import (
	"bufio"
	"bytes"
	"io"

	"github.com/tidwall/gjson"

	"go.llib.dev/groupkit/pkg/errorkit"
	"go.llib.dev/groupkit/port/option"
)

const ErrInvalidJSON errorkit.Error = "jsonlsrc: invalid JSON line"

type Option option.Option[Config]

type Config struct {
	// BufferSize is the maximum size of a single line.
	//
	// Default: 1MiB
	BufferSize int
	// Closer is closed with the Iterator, when the reader should be released with it.
	Closer io.Closer
}

func (c *Config) Init() { c.BufferSize = 1 << 20 }

func BufferSize(n int) Option {
	return option.Func[Config](func(c *Config) {
		if 0 < n {
			c.BufferSize = n
		}
	})
}

func WithCloser(closer io.Closer) Option {
	return option.Func[Config](func(c *Config) { c.Closer = closer })
}

// Lines returns an Iterator over the JSON documents of r, one per line.
// Blank lines are skipped.
func Lines(r io.Reader, opts ...Option) *Iterator {
	c := option.Use[Config](opts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(c.BufferSize, 64*1024)), c.BufferSize)
	return &Iterator{scanner: scanner, config: c}
}

type Iterator struct {
	scanner *bufio.Scanner
	config  Config

	line   int
	value  gjson.Result
	err    error
	closed bool
}

func (i *Iterator) Next() bool {
	if i.closed || i.err != nil {
		return false
	}
	for i.scanner.Scan() {
		i.line++
		raw := bytes.TrimSpace(i.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if !gjson.ValidBytes(raw) {
			i.err = ErrInvalidJSON.F("line %d", i.line)
			return false
		}
		i.value = gjson.ParseBytes(raw)
		return true
	}
	i.err = i.scanner.Err()
	return false
}

func (i *Iterator) Value() gjson.Result { return i.value }

func (i *Iterator) Err() error { return i.err }

func (i *Iterator) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	if i.config.Closer == nil {
		return nil
	}
	return i.config.Closer.Close()
}

// Key returns a key function that selects the value at the gjson path as string.
// Documents without the path map to the empty string.
func Key(path string) func(gjson.Result) string {
	return func(r gjson.Result) string {
		return r.Get(path).String()
	}
}
