package main

import (
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	blue   = color.New(color.FgBlue)
)

func successf(w io.Writer, format string, args ...any) {
	green.Fprintf(w, "  → "+format+"\n", args...)
}

func infof(w io.Writer, format string, args ...any) {
	blue.Fprintf(w, "  "+format+"\n", args...)
}

func warnf(w io.Writer, format string, args ...any) {
	yellow.Fprintf(w, "  ⚠ "+format+"\n", args...)
}
