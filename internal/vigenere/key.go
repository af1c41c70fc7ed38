package vigenere

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
)

// ValidateKey reports whether text can key an engine under p. It has no side
// effects; the returned error wraps ErrInvalidKey.
func ValidateKey(p Policy, text string) error {
	_, err := keyOffsets(p, text)
	return err
}

// keyOffsets converts key text into shift offsets. Spaces are skipped when the
// policy allows them in keys without treating them as symbols.
func keyOffsets(p Policy, text string) ([]int32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: key is empty", kerrors.ErrInvalidKey)
	}

	offsets := make([]int32, 0, len(text))
	for i, r := range text {
		if p.skipsInKey(r) {
			continue
		}
		idx, ok := p.index(p.Normalize(r))
		if !ok {
			return nil, fmt.Errorf("%w: symbol %q at byte %d is not in the %s alphabet",
				kerrors.ErrInvalidKey, r, i, p.name)
		}
		offsets = append(offsets, idx)
	}

	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: key has no usable symbols", kerrors.ErrInvalidKey)
	}
	return offsets, nil
}

// NormalizeKey returns key as the engine reads it: case folded, without the
// spaces the policy skips. Keys that build the same engine normalize to the
// same string.
func NormalizeKey(p Policy, key string) string {
	return strings.Map(func(r rune) rune {
		if p.skipsInKey(r) {
			return -1
		}
		return p.Normalize(r)
	}, key)
}

func (p Policy) skipsInKey(r rune) bool {
	return r == ' ' && p.keySpaces && !p.InDomain(' ')
}
