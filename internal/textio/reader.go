package textio

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultBufferSize is the number of bytes read from the source per chunk.
const DefaultBufferSize = 32 * 1024

// Reader decodes a byte stream into runes. Multi-byte sequences that straddle
// chunk boundaries are reassembled before decoding; invalid sequences are
// dropped and counted.
type Reader struct {
	br      *bufio.Reader
	err     error
	invalid int
	read    int
}

type readerConfig struct {
	bufferSize int
	nfc        bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerConfig)

// WithBufferSize sets the chunk size used for reads from the source.
func WithBufferSize(n int) ReaderOption {
	return func(c *readerConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithNFC composes the input to Unicode Normalization Form C before decoding,
// so visually identical text ciphers the same regardless of how it was typed.
func WithNFC() ReaderOption {
	return func(c *readerConfig) {
		c.nfc = true
	}
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	cfg := readerConfig{bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.nfc {
		r = norm.NFC.Reader(r)
	}
	return &Reader{br: bufio.NewReaderSize(r, cfg.bufferSize)}
}

// Runes returns the decoded runes as a single-pass sequence. Iteration stops
// at EOF or at the first read error, which is then reported by Err.
func (r *Reader) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			c, size, err := r.br.ReadRune()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					r.err = err
				}
				return
			}
			r.read += size
			if c == utf8.RuneError && size == 1 {
				r.invalid++
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Err returns the first non-EOF error encountered while reading.
func (r *Reader) Err() error {
	return r.err
}

// Invalid returns the number of bytes dropped as invalid UTF-8.
func (r *Reader) Invalid() int {
	return r.invalid
}

// BytesRead returns the number of bytes consumed from the source.
func (r *Reader) BytesRead() int {
	return r.read
}
