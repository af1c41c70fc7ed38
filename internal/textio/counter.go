package textio

import "iter"

// Counter counts the elements flowing through a sequence.
type Counter struct {
	n int
}

// Wrap returns seq with every yielded element counted.
func (c *Counter) Wrap(seq iter.Seq[rune]) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for r := range seq {
			c.n++
			if !yield(r) {
				return
			}
		}
	}
}

// Count returns the number of elements seen so far.
func (c *Counter) Count() int {
	return c.n
}

// Concat yields every element of each sequence in turn.
func Concat(seqs ...iter.Seq[rune]) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, seq := range seqs {
			for r := range seq {
				if !yield(r) {
					return
				}
			}
		}
	}
}
