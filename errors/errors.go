package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrNoReader    = fmt.Errorf("no reader attached to mailbox")
	ErrNameTaken   = fmt.Errorf("participant name already taken in this room")
	ErrUnknownPID  = fmt.Errorf("pid not found")
)
