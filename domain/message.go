// Package domain contains core concepts of the chat system.
// This file defines Message values and the wire format.
package domain

import "fmt"

// Message is an ephemeral chat value. It carries no identifier, timestamp
// or sequence number: nothing is persisted and nothing is ordered across
// senders.
type Message struct {
	Room   string
	Sender string
	Body   string
}

// Line renders the wire format: "[<room>] <sender>: <body>\n".
// One message is always exactly one line; delivery keeps lines under
// PIPE_BUF so the kernel writes each one atomically.
func (m Message) Line() string {
	return fmt.Sprintf("[%s] %s: %s\n", m.Room, m.Sender, m.Body)
}
