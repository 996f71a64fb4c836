package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsole_IncomingErasesPromptLine(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := NewConsole(&out, "general", "bob")

	console.Prompt()
	console.Incoming("[general] alice: hello")
	console.Prompt()

	req.Equal("[general] bob > \r\033[K[general] alice: hello\n[general] bob > ", out.String())
}

func TestConsole_Notice(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	console := NewConsole(&out, "general", "bob")

	console.Notice("Welcome to general!")

	req.Equal("Welcome to general!\n", out.String())
}
