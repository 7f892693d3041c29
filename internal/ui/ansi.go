package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C colors s for stdout.
func C(color, s string) string { return CFor(os.Stdout, color, s) }

// CFor colors s when w is a terminal (or color is forced).
func CFor(w io.Writer, color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY(w) {
		return color + s + reset
	}
	return s
}

// Dim is C with the faint attribute.
func Dim(s string) string { return C(dim, s) }

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, CFor(w, fgGreen, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, CFor(w, fgRed, symCross+" "+msg)) }

// Hint prints a dimmed follow-up line under a failure.
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, CFor(w, dim, msg)) }
