package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// ErrorPrefix is written before every diagnostic.
const ErrorPrefix = "[Error]:"

// PrintError writes err to w behind a red prefix. Colour is only used when
// w is a terminal that supports it.
func PrintError(w io.Writer, err error) {
	out := termenv.NewOutput(w)
	prefix := out.String(ErrorPrefix).Foreground(out.Color("#e53935")).Bold()
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}

// PrintVerdict writes "<word>: accepted" in green or "<word>: rejected" in red.
func PrintVerdict(w io.Writer, word string, accepted bool) {
	out := termenv.NewOutput(w)
	if word == "" {
		word = `""`
	}
	verdict := out.String("rejected").Foreground(out.Color("#e53935"))
	if accepted {
		verdict = out.String("accepted").Foreground(out.Color("#43a047"))
	}
	fmt.Fprintf(w, "%s: %s\n", word, verdict)
}
