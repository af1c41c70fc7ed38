package textio

import (
	"bufio"
	"context"
	"io"
	"iter"
	"unicode/utf8"
)

// DefaultBatchSize is the number of runes collected before a write.
const DefaultBatchSize = 4096

// Writer encodes runes as UTF-8 and writes them in batches.
type Writer struct {
	w       *bufio.Writer
	batch   []byte
	size    int
	pending int
	written int
}

// NewWriter returns a Writer that flushes every batchSize runes.
func NewWriter(w io.Writer, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Writer{
		w:     bufio.NewWriter(w),
		batch: make([]byte, 0, batchSize*utf8.UTFMax),
		size:  batchSize,
	}
}

// WriteRune appends r to the current batch, writing the batch when full.
func (w *Writer) WriteRune(r rune) error {
	w.batch = utf8.AppendRune(w.batch, r)
	w.pending++
	if w.pending >= w.size {
		return w.writeBatch()
	}
	return nil
}

func (w *Writer) writeBatch() error {
	if len(w.batch) == 0 {
		return nil
	}
	if _, err := w.w.Write(w.batch); err != nil {
		return err
	}
	w.written += w.pending
	w.batch = w.batch[:0]
	w.pending = 0
	return nil
}

// Flush writes any partial batch and flushes the underlying buffer.
func (w *Writer) Flush() error {
	if err := w.writeBatch(); err != nil {
		return err
	}
	return w.w.Flush()
}

// Written returns the number of runes handed to the underlying writer.
func (w *Writer) Written() int {
	return w.written
}

// WriteSeq drains seq into the writer and flushes. It checks ctx between
// batches and stops pulling from seq once ctx is done.
func (w *Writer) WriteSeq(ctx context.Context, seq iter.Seq[rune]) (int, error) {
	start := w.written
	for r := range seq {
		if err := w.WriteRune(r); err != nil {
			return w.written - start, err
		}
		if w.pending == 0 {
			if err := ctx.Err(); err != nil {
				return w.written - start, err
			}
		}
	}
	if err := w.Flush(); err != nil {
		return w.written - start, err
	}
	return w.written - start, nil
}
