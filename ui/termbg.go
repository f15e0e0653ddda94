package ui

import (
	"fmt"
	"io"
	"os"
)

// SetTerminalBackground emits OSC 11 to set the terminal's default background
// color and returns a function that restores the original via OSC 111, so
// every ANSI reset falls back to the theme base rather than the terminal
// default.
func SetTerminalBackground(hexColor string) func() {
	return setTermBg(os.Stdout, hexColor)
}

func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	fmt.Fprintf(w, "\033]11;%s\033\\", hexColor)

	return func() {
		fmt.Fprint(w, "\033]111\033\\")
	}
}
