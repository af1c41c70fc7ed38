package vigenere

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
)

// Direction selects which half of the tabula recta a shift uses.
type Direction int

const (
	// Encode adds the key offset to the symbol offset.
	Encode Direction = iota
	// Decode subtracts the key offset from the symbol offset.
	Decode
)

func (d Direction) String() string {
	switch d {
	case Encode:
		return "cipher"
	case Decode:
		return "decipher"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Span is an inclusive range of code points.
type Span struct {
	Lo rune
	Hi rune
}

// Len returns the number of code points covered by the span.
func (s Span) Len() int32 {
	return int32(s.Hi - s.Lo + 1)
}

func (s Span) String() string {
	if s.Lo == s.Hi {
		return fmt.Sprintf("U+%04X", s.Lo)
	}
	return fmt.Sprintf("U+%04X-U+%04X", s.Lo, s.Hi)
}

// Policy decides which symbols take part in the cipher and the modular range
// they are shifted over. The spans are laid end to end to form the logical
// range [0, RangeLen), so gaps such as DEL or the surrogate block are never
// produced as output.
type Policy struct {
	name        string
	description string
	spans       []Span
	rangeLen    int32
	foldUpper   bool
	keySpaces   bool
	marker      string
}

func newPolicy(name, description, marker string, foldUpper, keySpaces bool, spans ...Span) Policy {
	var n int32
	for _, s := range spans {
		n += s.Len()
	}
	return Policy{
		name:        name,
		description: description,
		spans:       spans,
		rangeLen:    n,
		foldUpper:   foldUpper,
		keySpaces:   keySpaces,
		marker:      marker,
	}
}

const defaultMarker = "M%S$&#%"

// Built-in policies.
var (
	// Letters covers A-Z. Lowercase input is folded to uppercase and the key may contain spaces.
	Letters = newPolicy("letters", "uppercase Latin letters, lowercase folded", "MSQZX", true, true,
		Span{'A', 'Z'})

	// PrintableASCII covers the printable ASCII characters, space included.
	PrintableASCII = newPolicy("ascii", "printable ASCII", defaultMarker, false, false,
		Span{0x20, 0x7E})

	// Extended covers printable ASCII plus the Latin-1 block, skipping DEL.
	Extended = newPolicy("extended", "printable ASCII and Latin-1", defaultMarker, false, false,
		Span{0x20, 0x7E}, Span{0x80, 0xFF})

	// Unicode covers the Basic Multilingual Plane from space to U+FFFD, skipping surrogates.
	Unicode = newPolicy("unicode", "Basic Multilingual Plane from space, surrogates excluded", defaultMarker, false, false,
		Span{0x0020, 0xD7FF}, Span{0xE000, 0xFFFD})
)

// DefaultPolicy is used when no policy is configured.
var DefaultPolicy = Unicode

// Policies returns the built-in policies in order of increasing range.
func Policies() []Policy {
	return []Policy{Letters, PrintableASCII, Extended, Unicode}
}

// PolicyByName looks up a built-in policy. Matching ignores case and surrounding space.
func PolicyByName(name string) (Policy, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Policies() {
		if p.name == want {
			return p, nil
		}
	}
	return Policy{}, fmt.Errorf("%w: %q", kerrors.ErrUnknownPolicy, name)
}

// PolicyNames returns the names of the built-in policies.
func PolicyNames() []string {
	policies := Policies()
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = p.name
	}
	return names
}

// Name returns the configuration name of the policy.
func (p Policy) Name() string { return p.name }

// Description returns a short human readable summary.
func (p Policy) Description() string { return p.description }

// RangeLen returns the size of the modular range symbols are shifted over.
func (p Policy) RangeLen() int { return int(p.rangeLen) }

// FoldsCase reports whether lowercase letters are folded before shifting.
func (p Policy) FoldsCase() bool { return p.foldUpper }

// Marker returns the policy's default identifying marker.
func (p Policy) Marker() string { return p.marker }

// Spans returns a copy of the policy's range table.
func (p Policy) Spans() []Span {
	out := make([]Span, len(p.spans))
	copy(out, p.spans)
	return out
}

// IsZero reports whether p is the zero Policy.
func (p Policy) IsZero() bool { return p.rangeLen == 0 }

func (p Policy) String() string { return p.name }

// InDomain reports whether r falls inside one of the policy's spans.
func (p Policy) InDomain(r rune) bool {
	for _, s := range p.spans {
		if r >= s.Lo && r <= s.Hi {
			return true
		}
	}
	return false
}

// Normalize applies the policy's case folding. Only ASCII letters are folded.
func (p Policy) Normalize(r rune) rune {
	if p.foldUpper && r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// Admits reports whether r survives filtering, after normalization.
func (p Policy) Admits(r rune) bool {
	return p.InDomain(p.Normalize(r))
}

// index maps an in-domain symbol to its offset in [0, rangeLen).
func (p Policy) index(r rune) (int32, bool) {
	var base int32
	for _, s := range p.spans {
		if r >= s.Lo && r <= s.Hi {
			return base + int32(r-s.Lo), true
		}
		base += s.Len()
	}
	return 0, false
}

// symbol maps an offset in [0, rangeLen) back to its code point.
func (p Policy) symbol(i int32) rune {
	for _, s := range p.spans {
		if i < s.Len() {
			return s.Lo + rune(i)
		}
		i -= s.Len()
	}
	// unreachable for offsets reduced modulo rangeLen
	return p.spans[len(p.spans)-1].Hi
}

// shift applies the tabula recta to two offsets. Both are already reduced, so
// the decode pre-addition stays below 2*rangeLen.
func (p Policy) shift(s, k int32, d Direction) int32 {
	if d == Decode {
		return (s + p.rangeLen - k) % p.rangeLen
	}
	return (s + k) % p.rangeLen
}

// Shift combines symbol s with key symbol k. Both are normalized first; ok is
// false when either falls outside the domain.
func (p Policy) Shift(s, k rune, d Direction) (rune, bool) {
	si, ok := p.index(p.Normalize(s))
	if !ok {
		return 0, false
	}
	ki, ok := p.index(p.Normalize(k))
	if !ok {
		return 0, false
	}
	return p.symbol(p.shift(si, ki, d)), true
}
