// Package files resolves command-line path arguments into input files and
// derives the matching output names.
//
// Arguments may be literal paths, directories (walked recursively, hidden
// directories skipped) or globs with ** support from doublestar. Ciphered
// files carry a configurable suffix (".vig" by default): cipher reads
// notes.txt and writes notes.txt.vig, decipher reverses it.
package files
