package runtime

import (
	"bufio"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"pipechat/domain"
)

func newTestRoom(t *testing.T) (*Registry, domain.Room) {
	t.Helper()
	registry := NewRegistry(t.TempDir())
	room := domain.NewRoom("general")
	_, err := registry.EnsureRoom(room)
	require.NoError(t, err)
	return registry, room
}

func attachReader(t *testing.T, registry *Registry, room domain.Room, user string) *os.File {
	t.Helper()
	box, err := Register(registry.MailboxPath(room, user))
	require.NoError(t, err)
	reader, err := box.OpenReader()
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	return reader
}

func readLine(t *testing.T, reader *os.File) string {
	t.Helper()
	require.NoError(t, reader.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := bufio.NewReader(reader).ReadString('\n')
	require.NoError(t, err)
	return line
}

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

func TestBroadcaster_DeliversToOtherMembers_NeverToSelf(t *testing.T) {
	req := require.New(t)
	registry, room := newTestRoom(t)

	// Given alice and bob both joined with live readers
	aliceReader := attachReader(t, registry, room, "alice")
	bobReader := attachReader(t, registry, room, "bob")

	// When alice sends a message
	b := NewBroadcaster(registry, room, "alice", time.Second, testLogger())
	req.NoError(b.Send("hello"))

	// Then bob receives exactly the wire line
	req.Equal("[general] alice: hello\n", readLine(t, bobReader))

	// And alice receives nothing from her own send
	req.NoError(aliceReader.SetReadDeadline(time.Now().Add(100 * time.Millisecond)))
	buf := make([]byte, 64)
	_, err := aliceReader.Read(buf)
	req.ErrorIs(err, os.ErrDeadlineExceeded)
}

func TestBroadcaster_EmptyRoom_CompletesImmediately(t *testing.T) {
	req := require.New(t)
	registry, room := newTestRoom(t)
	attachReader(t, registry, room, "alice")

	// Given only the sender in the room
	b := NewBroadcaster(registry, room, "alice", time.Second, testLogger())

	// When alice sends, the call returns without blocking and without error
	start := time.Now()
	req.NoError(b.Send("hi"))
	req.Less(time.Since(start), time.Second)
}

func TestBroadcaster_AbsentReaderDoesNotStallOthers(t *testing.T) {
	req := require.New(t)
	registry, room := newTestRoom(t)

	// Given bob reading, and carol's mailbox left behind with no reader
	attachReader(t, registry, room, "alice")
	bobReader := attachReader(t, registry, room, "bob")
	_, err := Register(registry.MailboxPath(room, "carol"))
	req.NoError(err)

	// When alice broadcasts
	b := NewBroadcaster(registry, room, "alice", time.Second, testLogger())
	start := time.Now()
	req.NoError(b.Send("hello"))

	// Then the send is not stalled by carol and bob still receives
	req.Less(time.Since(start), 2*time.Second)
	req.Equal("[general] alice: hello\n", readLine(t, bobReader))
}
