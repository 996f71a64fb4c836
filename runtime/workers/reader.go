package workers

import (
	"bufio"
	"context"
	goerrors "errors"
	"log/slog"
	"os"
	"time"

	"pipechat/contract"
)

// Ensure *ReaderWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*ReaderWorker)(nil)

// ReaderWorker is the session's long-lived reader loop: it drains the owned
// mailbox and renders complete incoming lines. It never touches the room
// directory and never communicates with the broadcast side.
type ReaderWorker struct {
	mailbox *os.File
	display contract.Display
	log     *slog.Logger
}

func NewReaderWorker(mailbox *os.File, display contract.Display, log *slog.Logger) *ReaderWorker {
	return &ReaderWorker{mailbox: mailbox, display: display, log: log}
}

// Run blocks reading the mailbox until the session context is cancelled.
// Cancellation is translated into a read deadline because a goroutine parked
// in a pipe read cannot be interrupted any other way.
func (w *ReaderWorker) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = w.mailbox.SetReadDeadline(time.Now())
	})
	defer stop()

	scanner := bufio.NewScanner(w.mailbox)
	for scanner.Scan() {
		// Lines are reassembled here: a message split across two pipe reads
		// is never rendered partially. The prompt is redrawn after each line
		// so incoming text does not corrupt an in-progress local edit.
		w.display.Incoming(scanner.Text())
		w.display.Prompt()
	}

	if err := scanner.Err(); err != nil && !goerrors.Is(err, os.ErrDeadlineExceeded) {
		w.log.Warn("Mailbox read failed", "error", err)
		return err
	}
	w.log.Debug("Reader loop stopped")
	return nil
}
