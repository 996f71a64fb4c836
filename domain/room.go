// Package domain contains core concepts of the chat system.
// This file defines the Room namespace and its filesystem location.
// No runtime, network, or UI logic should be added here.
package domain

import "path/filepath"

// RoomDirPrefix keeps unrelated entries of the base directory out of
// membership listings.
const RoomDirPrefix = "chatroom-"

// Room is a named, directory-backed namespace grouping participants.
// Rooms are shared, ownerless resources: they are created lazily and
// never deleted by any participant.
type Room struct {
	Name string
}

func NewRoom(name string) Room {
	return Room{Name: name}
}

// Path locates the room directory under the base directory.
func (r Room) Path(baseDir string) string {
	return filepath.Join(baseDir, RoomDirPrefix+r.Name)
}
