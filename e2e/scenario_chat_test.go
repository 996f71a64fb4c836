package e2e

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"

	"pipechat/domain"
	"pipechat/internal"
	"pipechat/runtime"
	"pipechat/runtime/workers"
)

type recordingDisplay struct {
	mu    sync.Mutex
	lines []string
}

func (d *recordingDisplay) Incoming(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, line)
}

func (d *recordingDisplay) Prompt() {}

func (d *recordingDisplay) Notice(text string) {}

func (d *recordingDisplay) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.lines)
}

// ChatScenarioSuite runs the full two-participant scenario in-process:
// both sessions share one room directory, messages travel through real
// named pipes, and teardown goes through the real cleanup paths.
type ChatScenarioSuite struct {
	suite.Suite
	Config  Config
	baseDir string
	log     *slog.Logger
}

// SetupSuite loads the environment configuration before running tests
func (s *ChatScenarioSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.log = logs.GetLoggerFromLevel(slog.LevelDebug)
}

func (s *ChatScenarioSuite) SetupTest() {
	s.baseDir = s.Config.BaseDir
	if s.baseDir == "" {
		s.baseDir = s.T().TempDir()
	}
}

func (s *ChatScenarioSuite) sessionConfig() internal.Config {
	return internal.Config{
		BaseDir:         s.baseDir,
		DeliveryTimeout: 2 * time.Second,
		MaxBodyLength:   1024,
		RestartInterval: 50 * time.Millisecond,
	}
}

func (s *ChatScenarioSuite) TestAliceSends_BobReceives_AliceDoesNot() {
	req := s.Require()
	cfg := s.sessionConfig()
	registry := runtime.NewRegistry(cfg.BaseDir)
	room := domain.NewRoom(s.Config.Room)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given bob joined with a live reader and an interactive input
	bobDisplay := &recordingDisplay{}
	bobInput, bobInputWriter := io.Pipe()
	defer bobInputWriter.Close()
	bob, err := runtime.Join(registry,
		domain.JoinRequest{Room: s.Config.Room, User: "bob"},
		bobDisplay, bobInput, workers.NewSupervisor(s.log, cfg.RestartInterval), cfg, s.log)
	req.NoError(err)

	bobDone := make(chan error, 1)
	go func() { bobDone <- bob.Run(ctx) }()

	bobBox := runtime.Mailbox{Path: registry.MailboxPath(room, "bob")}
	req.Eventually(bobBox.HasReader, 2*time.Second, 10*time.Millisecond)

	// When alice joins, sends one message and leaves on end of input
	aliceDisplay := &recordingDisplay{}
	alice, err := runtime.Join(registry,
		domain.JoinRequest{Room: s.Config.Room, User: "alice"},
		aliceDisplay, strings.NewReader("hello\n"),
		workers.NewSupervisor(s.log, cfg.RestartInterval), cfg, s.log)
	req.NoError(err)
	req.NoError(alice.Run(context.Background()))

	// Then bob's display received exactly the wire line
	req.Eventually(func() bool { return len(bobDisplay.Lines()) == 1 }, 2*time.Second, 10*time.Millisecond)
	req.Equal(fmt.Sprintf("[%s] alice: hello", s.Config.Room), bobDisplay.Lines()[0])

	// And alice's display received nothing from her own send
	req.Empty(aliceDisplay.Lines())

	// And alice's cleanup removed her mailbox but kept the room
	_, err = os.Stat(registry.MailboxPath(room, "alice"))
	req.ErrorIs(err, fs.ErrNotExist)
	_, err = os.Stat(room.Path(cfg.BaseDir))
	req.NoError(err)

	// When bob's session is terminated by cancellation (the signal path)
	cancel()
	select {
	case err := <-bobDone:
		req.NoError(err)
	case <-time.After(5 * time.Second):
		req.Fail("bob's session did not stop after cancellation")
	}

	// Then bob's mailbox is gone as well
	_, err = os.Stat(bobBox.Path)
	req.ErrorIs(err, fs.ErrNotExist)
}

func (s *ChatScenarioSuite) TestLateJoinerDoesNotReceiveEarlierSend() {
	req := s.Require()
	cfg := s.sessionConfig()
	registry := runtime.NewRegistry(cfg.BaseDir)
	room := domain.NewRoom(s.Config.Room)

	// Given alice alone in the room, sending into the void
	aliceDisplay := &recordingDisplay{}
	alice, err := runtime.Join(registry,
		domain.JoinRequest{Room: s.Config.Room, User: "alice"},
		aliceDisplay, strings.NewReader("hi\n"),
		workers.NewSupervisor(s.log, cfg.RestartInterval), cfg, s.log)
	req.NoError(err)

	start := time.Now()
	req.NoError(alice.Run(context.Background()))
	req.Less(time.Since(start), 5*time.Second)

	// When bob joins afterwards
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bobDisplay := &recordingDisplay{}
	bobInput, bobInputWriter := io.Pipe()
	defer bobInputWriter.Close()
	bob, err := runtime.Join(registry,
		domain.JoinRequest{Room: s.Config.Room, User: "bob"},
		bobDisplay, bobInput, workers.NewSupervisor(s.log, cfg.RestartInterval), cfg, s.log)
	req.NoError(err)

	bobDone := make(chan error, 1)
	go func() { bobDone <- bob.Run(ctx) }()
	req.Eventually(runtime.Mailbox{Path: registry.MailboxPath(room, "bob")}.HasReader,
		2*time.Second, 10*time.Millisecond)

	// Then nothing arrives retroactively
	time.Sleep(200 * time.Millisecond)
	req.Empty(bobDisplay.Lines())

	cancel()
	req.NoError(<-bobDone)
}

func TestChatScenarioSuite(t *testing.T) {
	suite.Run(t, new(ChatScenarioSuite))
}
