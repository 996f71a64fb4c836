package runtime

import (
	goerrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"pipechat/contract"
	"pipechat/domain"
	"pipechat/errors"
)

var _ contract.Sender = (*Broadcaster)(nil)

// Broadcaster fans one message out to every other mailbox in the room.
//
// Delivery is best-effort with no guarantees regarding ordering, durability,
// or retries. The Broadcaster is not a message broker: a recipient with no
// attached reader is skipped silently and nothing is surfaced to the sender.
type Broadcaster struct {
	registry contract.IRegistry
	room     domain.Room
	self     string
	timeout  time.Duration
	log      *slog.Logger
}

func NewBroadcaster(registry contract.IRegistry, room domain.Room, self string,
	timeout time.Duration, log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		room:     room,
		self:     self,
		timeout:  timeout,
		log:      log,
	}
}

// Send formats the body and dispatches one delivery goroutine per current
// member other than the sender, then waits for all of them. The wait bounds
// in-flight deliveries to the room's membership size; it is not an
// acknowledgment. With zero recipients Send returns immediately.
func (b *Broadcaster) Send(body string) error {
	members, err := b.registry.ListMembers(b.room)
	if err != nil {
		return err
	}
	// Sending to oneself is explicitly excluded
	recipients := lo.Filter(members, func(name string, _ int) bool {
		return name != b.self
	})

	msg := domain.Message{Room: b.room.Name, Sender: b.self, Body: body}
	line := []byte(msg.Line())

	var wg sync.WaitGroup
	for _, name := range recipients {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			b.deliver(name, line)
		}(name)
	}
	wg.Wait()
	return nil
}

// deliver is one delivery attempt: non-blocking attach, a single write,
// close. One absent or slow recipient must never stall the sender or the
// other recipients, so failures end here.
func (b *Broadcaster) deliver(name string, line []byte) {
	box := Mailbox{Path: b.registry.MailboxPath(b.room, name)}
	f, err := box.OpenWriter()
	if err != nil {
		if goerrors.Is(err, errors.ErrNoReader) {
			b.log.Debug("No reader attached, dropping message", "recipient", name)
		} else {
			b.log.Debug("Delivery attempt failed", "recipient", name, "error", err)
		}
		return
	}
	defer f.Close()

	// The line fits under PIPE_BUF, so this single write is atomic and a
	// reader never observes an interleaved half-line. The deadline bounds a
	// recipient whose pipe is full and never drained.
	_ = f.SetWriteDeadline(time.Now().Add(b.timeout))
	if _, err := f.Write(line); err != nil {
		b.log.Debug("Delivery write failed", "recipient", name, "error", err)
	}
}
