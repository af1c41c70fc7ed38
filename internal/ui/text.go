package ui

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Formatter colors one kind of value in command output. Without color the
// value is wrapped in prefix and suffix instead.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprint renders the arguments like fmt.Sprint.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf renders the arguments like fmt.Sprintf.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends a newline unless s already ends with one. Spinner
// final messages go through it.
func EnsureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// noColor honours NO_COLOR (https://no-color.org/) on top of fatih/color's
// own terminal detection.
func noColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

var (
	// Code marks commands to run, such as vigenere config init.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path marks input and output files and the config and history paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag marks flag names like --key-file or --no-marker.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info marks counts and notes that need no action.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight marks values the user chose: policy names, config values and
	// where the key came from. Quoted when color is off.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted marks secondary detail, parenthesised when color is off.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Ok prefixes a success message with a check mark.
func Ok(msg string) string {
	return Success.Sprint("✓") + " " + msg
}

// Fail prefixes a failure message with a cross.
func Fail(msg string) string {
	return Error.Sprint("✗") + " " + msg
}

// Hint prefixes a follow-up suggestion with an arrow.
func Hint(msg string) string {
	return Info.Sprint("→") + " " + msg
}

// Table renders rows as left-aligned columns separated by two spaces. The
// header is uppercased.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, upper bool) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if upper {
				cell = strings.ToUpper(cell)
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
			}
		}
		b.WriteString("\n")
	}

	writeRow(header, true)
	for _, row := range rows {
		writeRow(row, false)
	}
	return b.String()
}
