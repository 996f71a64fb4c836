// Package ui renders the interactive session on a terminal.
package ui

import (
	"fmt"
	"io"
	"sync"

	"pipechat/contract"
)

var _ contract.Display = (*Console)(nil)

// eraseLine returns the cursor to column one and clears the row, so an
// incoming line replaces the in-progress prompt instead of mixing with it.
const eraseLine = "\r\033[K"

// Console shares one screen between incoming traffic and the local prompt.
// Incoming lines are rendered verbatim: the wire line already carries the
// "[room] sender:" prefix.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	prompt string
}

func NewConsole(out io.Writer, room, user string) *Console {
	return &Console{out: out, prompt: fmt.Sprintf("[%s] %s > ", room, user)}
}

func (c *Console) Incoming(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s%s\n", eraseLine, line)
}

func (c *Console) Prompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.prompt)
}

func (c *Console) Notice(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, text)
}
