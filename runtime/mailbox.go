package runtime

import (
	goerrors "errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"pipechat/errors"
)

// Mailbox is one participant's named pipe inside a room directory: the unit
// of message delivery. Only the owning session ever removes it.
type Mailbox struct {
	Path string
}

// Register creates the pipe with permissive access so any local user can
// join and write. Creation is idempotent: a pipe left behind by a crashed
// session with the same name is adopted rather than rejected.
func Register(path string) (Mailbox, error) {
	if err := unix.Mkfifo(path, 0o777); err != nil && !goerrors.Is(err, fs.ErrExist) {
		return Mailbox{}, fmt.Errorf("creating mailbox %s: %w", path, err)
	}
	return Mailbox{Path: path}, nil
}

// OpenReader attaches the owning session's read side.
//
// The pipe is opened O_RDWR so the open never blocks on a missing peer and
// the read side never sees EOF when a sender disconnects. O_NONBLOCK makes
// the descriptor pollable, which is what lets a read deadline cancel a
// goroutine parked in a read.
func (m Mailbox) OpenReader() (*os.File, error) {
	f, err := os.OpenFile(m.Path, os.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("opening mailbox %s for reading: %w", m.Path, err)
	}
	return f, nil
}

// OpenWriter attaches a delivery write side without blocking. When no reader
// currently holds the pipe open the kernel refuses with ENXIO, surfaced as
// ErrNoReader so a delivery can drop fast instead of stalling the sender.
func (m Mailbox) OpenWriter() (*os.File, error) {
	f, err := os.OpenFile(m.Path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if goerrors.Is(err, unix.ENXIO) {
			return nil, errors.ErrNoReader
		}
		return nil, fmt.Errorf("opening mailbox %s for writing: %w", m.Path, err)
	}
	return f, nil
}

// HasReader probes whether a live session is currently draining the mailbox.
func (m Mailbox) HasReader() bool {
	f, err := m.OpenWriter()
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Remove unlinks the pipe. A second removal is a success: cleanup must stay
// idempotent because a signal and end-of-input can both trigger it.
func (m Mailbox) Remove() error {
	if err := os.Remove(m.Path); err != nil && !goerrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing mailbox %s: %w", m.Path, err)
	}
	return nil
}
