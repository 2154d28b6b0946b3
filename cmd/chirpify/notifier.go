package main

import (
	"fmt"
	"io"
	"strings"

	"chirpify/internal/usecase"
)

const placeholder = "🐤 Chirping…"

type terminalNotifier struct {
	w       io.Writer
	pending bool
}

func newTerminalNotifier(w io.Writer) *terminalNotifier {
	return &terminalNotifier{w: w}
}

func (n *terminalNotifier) Started(string) {
	fmt.Fprint(n.w, placeholder)
	n.pending = true
}

func (n *terminalNotifier) Succeeded(model, text string) {
	n.clear()
	fmt.Fprintf(n.w, "Here’s your Chirp (model: %s):\n%s\n", model, strings.TrimRight(text, "\n"))
}

func (n *terminalNotifier) Failed(_ string, err *usecase.Error) {
	n.clear()
	fmt.Fprintf(n.w, "❌ %s\n", err.Display())
}

// clear erases the placeholder line if one is showing.
func (n *terminalNotifier) clear() {
	if !n.pending {
		return
	}
	fmt.Fprint(n.w, "\r\033[K")
	n.pending = false
}
