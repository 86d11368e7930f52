package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
	profile      = termenv.EnvColorProfile()
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
	switch {
	case disable:
		profile = termenv.Ascii
	case force:
		profile = termenv.ANSI256
	default:
		profile = termenv.EnvColorProfile()
	}
}

// C paints s with an ANSI color index ("9", "42", "214"...).
// An empty color returns s unchanged.
func C(color, s string) string {
	if color == "" || disableColor || profile == termenv.Ascii {
		return s
	}
	return profile.String(s).Foreground(profile.Color(color)).String()
}

// Bold renders s in bold when colors are on.
func Bold(s string) string {
	if disableColor || profile == termenv.Ascii {
		return s
	}
	return profile.String(s).Bold().String()
}

// Faint renders s dimmed when colors are on.
func Faint(s string) string {
	if disableColor || profile == termenv.Ascii {
		return s
	}
	return profile.String(s).Faint().String()
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Success, symCheck+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Error, symCross+" "+msg))
}

// Notice prints a muted informational line.
func Notice(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Muted, msg))
}

// Width returns the stdout terminal width, or 80 when it is not a terminal.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
