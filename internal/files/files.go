package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// ResolveFiles takes user-provided paths, directories and globs and returns
// the matching regular files, deduplicated, in the order they were found.
// Relative patterns are resolved against baseDir.
//
// Directories and globs are filtered by suffix: when ciphered is false only
// files without the suffix are kept (inputs to cipher); when true only files
// carrying it (inputs to decipher). Literal file paths are always kept.
func ResolveFiles(patterns []string, baseDir, suffix string, ciphered bool) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, suffix, ciphered)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern, baseDir, suffix string, ciphered bool) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, suffix, ciphered)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, suffix, ciphered)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
		}
		return nil, fmt.Errorf("checking %s: %w", pattern, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern, suffix string, ciphered bool) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if HasSuffix(m, suffix) == ciphered {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findFilesInDir(dir, suffix string, ciphered bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories such as .git, but not the root itself.
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if HasSuffix(path, suffix) == ciphered {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// HasSuffix reports whether the file name ends in suffix and has something before it.
func HasSuffix(path, suffix string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, suffix) && len(base) > len(suffix)
}

// CipheredName returns the output path for ciphering input.
func CipheredName(input, suffix string) string {
	return input + suffix
}

// PlainName returns the output path for deciphering input. The input must
// carry the suffix.
func PlainName(input, suffix string) (string, error) {
	if !HasSuffix(input, suffix) {
		return "", fmt.Errorf("%w: %s does not end in %s, pass an explicit output",
			kerrors.ErrNoOutputName, filepath.Base(input), suffix)
	}
	return strings.TrimSuffix(input, suffix), nil
}
