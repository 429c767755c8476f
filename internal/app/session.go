package app

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/Masteraddy/teamsbot-test/internal/domain"
	"github.com/Masteraddy/teamsbot-test/internal/platform"
)

const (
	StateRegistered = "registered"
	StateRemoving   = "removing"
	StateRemoved    = "removed"
)

// CallSession is one tracked call: the platform's call handle plus the
// handler owning its media stream and transcript. The embedded state machine
// exists only to make teardown run at most once; the platform owns the
// finer-grained call states.
type CallSession struct {
	ThreadID domain.ThreadID
	Call     *platform.Call
	Handler  *CallHandler

	state *fsm.FSM
}

func NewCallSession(threadID domain.ThreadID, call *platform.Call, handler *CallHandler) *CallSession {
	return &CallSession{
		ThreadID: threadID,
		Call:     call,
		Handler:  handler,
		state: fsm.NewFSM(
			StateRegistered,
			fsm.Events{
				{Name: "remove", Src: []string{StateRegistered}, Dst: StateRemoving},
				{Name: "removed", Src: []string{StateRemoving}, Dst: StateRemoved},
			},
			fsm.Callbacks{},
		),
	}
}

// BeginRemoval flips the session into the removing state and reports whether
// this caller won the transition. A loser must not run cleanup.
func (s *CallSession) BeginRemoval() bool {
	return s.state.Event(context.Background(), "remove") == nil
}

// FinishRemoval marks teardown complete.
func (s *CallSession) FinishRemoval() {
	_ = s.state.Event(context.Background(), "removed")
}

func (s *CallSession) State() string {
	return s.state.Current()
}
