// Package vigenere implements a polyalphabetic substitution cipher over
// configurable symbol alphabets.
//
// An Engine holds a validated key and turns an input sequence of runes into
// a lazy output sequence. Symbols the Policy does not admit are dropped from
// the output and do not advance the key. Every admitted symbol is shifted by
// the next key symbol modulo the policy's range length, so for any in-domain
// input:
//
//	e, _ := vigenere.New("LEMON", vigenere.WithPolicy(vigenere.Letters))
//	e.DecipherString(e.CipherString("ATTACKATDAWN")) == "ATTACKATDAWN"
//
// # Policies
//
// Four built-in policies are available:
//
//   - letters: A-Z, lowercase folded to uppercase (the classical tabula recta)
//   - ascii: printable ASCII, U+0020-U+007E
//   - extended: printable ASCII and Latin-1, U+0020-U+007E and U+0080-U+00FF
//   - unicode: U+0020-U+FFFD without the surrogate block (the default)
//
// # Streaming
//
// Cipher and Decipher return iter.Seq values. Nothing is buffered between
// symbols except the position in the key cycle, so arbitrarily large inputs
// can be processed as they are read. The engine never performs I/O and never
// fails after New returns.
//
// This is not a secure cipher. It is trivially broken by frequency analysis.
package vigenere
