// Package runtime hosts the session machinery: the filesystem registry,
// mailboxes, broadcast fan-out, and the participant session tying them
// together. It orchestrates the system without containing domain rules.
package runtime

import (
	goerrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pipechat/contract"
	"pipechat/domain"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry is the room membership namespace: one directory per room, one
// named pipe per participant. The directory itself is the shared state;
// nothing is cached in memory, so every local process observes the same
// membership without a coordinator.
type Registry struct {
	baseDir string
}

func NewRegistry(baseDir string) *Registry {
	return &Registry{baseDir: baseDir}
}

// EnsureRoom creates the room directory. Already-exists is not an error:
// rooms are shared, ownerless and never deleted by participants, so every
// joiner runs the same idempotent creation.
func (r *Registry) EnsureRoom(room domain.Room) (string, error) {
	path := room.Path(r.baseDir)
	if err := os.Mkdir(path, 0o777); err != nil && !goerrors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("creating room %s: %w", room.Name, err)
	}
	return path, nil
}

// ListMembers snapshots the current mailbox entries of a room. The listing
// runs with no locking against concurrent joins and leaves: callers get a
// best-effort snapshot, not a consistent cut, and must not rely on order.
func (r *Registry) ListMembers(room domain.Room) ([]string, error) {
	entries, err := os.ReadDir(room.Path(r.baseDir))
	if err != nil {
		return nil, fmt.Errorf("listing room %s: %w", room.Name, err)
	}
	members := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		members = append(members, entry.Name())
	}
	return members, nil
}

func (r *Registry) MailboxPath(room domain.Room, user string) string {
	return filepath.Join(room.Path(r.baseDir), user)
}
