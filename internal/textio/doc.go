// Package textio adapts byte streams to the rune sequences the cipher engine
// consumes and produces.
//
// Reading is chunked (32 KiB by default) and never splits a multi-byte UTF-8
// sequence between two symbols. Bytes that do not decode are dropped and
// counted rather than turned into U+FFFD, because U+FFFD is itself a
// cipherable symbol under the unicode policy.
//
// Writing collects runes into batches before handing them to the destination,
// so output is produced incrementally as the engine's lazy sequence is pulled.
package textio
