package contract

import (
	"context"
	"reflect"

	"pipechat/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IRegistry is the room membership namespace. Membership reads are snapshots
// with no synchronization against concurrent joins and leaves.
type IRegistry interface {
	EnsureRoom(room domain.Room) (string, error)
	ListMembers(room domain.Room) ([]string, error)
	MailboxPath(room domain.Room, user string) string
}

// Sender fans one message body out to the room.
type Sender interface {
	Send(body string) error
}

// Display renders session traffic without corrupting the in-progress prompt.
type Display interface {
	Incoming(line string)
	Prompt()
	Notice(text string)
}
