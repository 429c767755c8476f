package app

import "errors"

var (
	// ErrAlreadyJoined means a join was requested for a thread the registry
	// already tracks.
	ErrAlreadyJoined = errors.New("call has already been added")
	// ErrMediaSession means the platform failed to create a media session.
	// No call can proceed without one, so this is never swallowed.
	ErrMediaSession = errors.New("media session creation failed")
)
