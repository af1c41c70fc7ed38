package vigenere

import (
	"iter"
	"strings"
)

// Engine enciphers and deciphers symbol sequences with a fixed key. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	policy Policy
	key    []int32
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy selects the symbol policy. The default is DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		if !p.IsZero() {
			e.policy = p
		}
	}
}

// New validates key against the configured policy and returns an engine.
// The error wraps ErrInvalidKey when the key is empty or contains symbols
// outside the policy's alphabet.
func New(key string, opts ...Option) (*Engine, error) {
	e := &Engine{policy: DefaultPolicy}
	for _, opt := range opts {
		opt(e)
	}

	offsets, err := keyOffsets(e.policy, key)
	if err != nil {
		return nil, err
	}
	e.key = offsets
	return e, nil
}

// NewWithPolicy is shorthand for New(key, WithPolicy(p)).
func NewWithPolicy(p Policy, key string) (*Engine, error) {
	return New(key, WithPolicy(p))
}

// Policy returns the engine's symbol policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// KeyLen returns the number of symbols in the key cycle.
func (e *Engine) KeyLen() int {
	return len(e.key)
}

// Cipher returns a lazy sequence of the enciphered symbols of in.
func (e *Engine) Cipher(in iter.Seq[rune]) iter.Seq[rune] {
	return e.Transform(Encode, in)
}

// Decipher returns a lazy sequence of the deciphered symbols of in.
func (e *Engine) Decipher(in iter.Seq[rune]) iter.Seq[rune] {
	return e.Transform(Decode, in)
}

// Transform filters in to admitted symbols, normalizes them, pairs each with
// the next key symbol and shifts it in direction d. Dropped symbols do not
// advance the key cycle. Each iteration of the returned sequence keeps its
// own cycle position and ranges over in again.
func (e *Engine) Transform(d Direction, in iter.Seq[rune]) iter.Seq[rune] {
	p := e.policy
	key := e.key
	return func(yield func(rune) bool) {
		pos := 0
		for r := range in {
			idx, ok := p.index(p.Normalize(r))
			if !ok {
				continue
			}
			out := p.symbol(p.shift(idx, key[pos], d))
			pos++
			if pos == len(key) {
				pos = 0
			}
			if !yield(out) {
				return
			}
		}
	}
}

// CipherString enciphers s and collects the result.
func (e *Engine) CipherString(s string) string {
	return Collect(e.Cipher(Runes(s)))
}

// DecipherString deciphers s and collects the result.
func (e *Engine) DecipherString(s string) string {
	return Collect(e.Decipher(Runes(s)))
}

// Runes returns the code points of s as a sequence. Invalid UTF-8 yields
// U+FFFD, as ranging over a string does.
func Runes(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// Collect drains seq into a string.
func Collect(seq iter.Seq[rune]) string {
	var b strings.Builder
	for r := range seq {
		b.WriteRune(r)
	}
	return b.String()
}
