// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content according to terminal capabilities. When colors
// are available, content is colorized. When NO_COLOR is set or the terminal
// doesn't support colors, text decorations (backticks, quotes) are used.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("vigenere cipher notes.txt") // Commands and code
//	ui.Path.Sprint("notes.txt.vig")             // File paths
//	ui.Success.Sprint("✓")                      // Success indicators
//	ui.Error.Sprint("✗")                        // Error indicators
//	ui.Warning.Sprint("[dry-run]")              // Warnings
//	ui.Info.Sprint("→")                         // Informational hints
//	ui.Highlight.Sprint("letters")              // User values
//	ui.Muted.Sprint("default")                  // De-emphasized text
//
// Ok, Fail and Hint build the one-line status messages commands print, and
// Table lays out simple column listings such as the policy table.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
