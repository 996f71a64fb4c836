package workers

import (
	"context"
	"fmt"
	"log/slog"

	"pipechat/contract"
)

var _ contract.Worker = (*BroadcastWorker)(nil)

// BroadcastWorker is the interactive side of a session: it consumes input
// lines and fans each one out through the Sender. A line is only accepted
// once every delivery of the previous one has completed, which the Sender
// guarantees by awaiting its delivery goroutines.
type BroadcastWorker struct {
	lines   <-chan string
	sender  contract.Sender
	display contract.Display
	maxBody int
	leave   context.CancelFunc
	log     *slog.Logger
}

func NewBroadcastWorker(lines <-chan string, sender contract.Sender,
	display contract.Display, maxBody int, leave context.CancelFunc,
	log *slog.Logger) *BroadcastWorker {
	return &BroadcastWorker{
		lines:   lines,
		sender:  sender,
		display: display,
		maxBody: maxBody,
		leave:   leave,
		log:     log,
	}
}

func (w *BroadcastWorker) Run(ctx context.Context) error {
	for {
		w.display.Prompt()
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case body, ok := <-w.lines:
			if !ok {
				// End of input is a normal termination trigger, and it ends
				// the whole session, not just this worker.
				w.log.Debug("End of input, leaving room")
				w.leave()
				return nil
			}
			if body == "" {
				continue // skip empty messages
			}
			if len(body) > w.maxBody {
				// An oversized body would break the single-atomic-write
				// framing, so it is refused rather than split.
				w.display.Notice(fmt.Sprintf("message too long (max %d bytes), not sent", w.maxBody))
				continue
			}
			if err := w.sender.Send(body); err != nil {
				return err
			}
		}
	}
}
