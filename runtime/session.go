package runtime

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"pipechat/contract"
	"pipechat/domain"
	"pipechat/errors"
	"pipechat/internal"
	"pipechat/runtime/workers"
)

// Session is one participant's runtime unit: the owned mailbox, the reader
// loop and the interactive loop, all alive for the session's duration and
// all torn down together. The mailbox handle and worker wiring live here as
// session state, so signal-driven cleanup never needs ambient globals.
type Session struct {
	id          string
	room        domain.Room
	user        string
	mailbox     Mailbox
	reader      *os.File
	broadcaster *Broadcaster
	supervisor  contract.ISupervisor
	display     contract.Display
	input       io.Reader
	maxBody     int
	cleanup     sync.Once
	log         *slog.Logger
}

// Join validates the request, materializes the room and the participant's
// mailbox, and attaches the read side. Joining is idempotent with respect to
// leftovers: an existing room and a stale mailbox are both adopted. A mailbox
// whose reader is still attached belongs to a live session, and sharing one
// pipe between two owners is undefined, so that join is refused.
func Join(registry *Registry, req domain.JoinRequest, display contract.Display,
	input io.Reader, supervisor contract.ISupervisor, cfg internal.Config,
	log *slog.Logger) (*Session, error) {

	if err := domain.ValidateJoin(req); err != nil {
		return nil, fmt.Errorf("invalid join request: %w", err)
	}

	room := domain.NewRoom(req.Room)
	if _, err := registry.EnsureRoom(room); err != nil {
		return nil, err
	}

	mailbox, err := Register(registry.MailboxPath(room, req.User))
	if err != nil {
		return nil, err
	}
	if mailbox.HasReader() {
		return nil, fmt.Errorf("%w: %s in %s", errors.ErrNameTaken, req.User, req.Room)
	}

	reader, err := mailbox.OpenReader()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	sessionLog := log.With("session_id", id, "room", req.Room, "user", req.User)

	return &Session{
		id:          id,
		room:        room,
		user:        req.User,
		mailbox:     mailbox,
		reader:      reader,
		broadcaster: NewBroadcaster(registry, room, req.User, cfg.DeliveryTimeout, sessionLog),
		supervisor:  supervisor,
		display:     display,
		input:       input,
		maxBody:     cfg.MaxBodyLength,
		log:         sessionLog,
	}, nil
}

// Run drives the session until the parent context is cancelled (signal) or
// the input ends. Both paths converge on the same teardown, in order: stop
// the reader loop, then remove the mailbox from the room.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go s.scanInput(lines)

	reader := workers.NewReaderWorker(s.reader, s.display, s.log)
	broadcast := workers.NewBroadcastWorker(lines, s.broadcaster, s.display, s.maxBody, cancel, s.log)

	s.log.Info("Session started")
	s.supervisor.Add(reader, broadcast)
	s.supervisor.Run(ctx)

	return s.Leave()
}

// scanInput feeds input lines to the broadcast worker and closes the channel
// on end-of-input. When a signal ends the session first, this goroutine may
// stay parked in a read; the process exit reaps it.
func (s *Session) scanInput(lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(s.input)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

// Leave removes the session's mailbox from the room. The reader is already
// stopped by the time the supervisor returns, so closing the read side and
// unlinking the pipe is all that remains. Safe to call more than once; a
// leave never deletes the room itself.
func (s *Session) Leave() error {
	var err error
	s.cleanup.Do(func() {
		_ = s.reader.Close()
		err = s.mailbox.Remove()
		if err == nil {
			s.log.Info("Left room")
		}
	})
	return err
}
