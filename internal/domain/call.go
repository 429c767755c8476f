// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const MaxDisplayNameLen = 64

var (
	ErrJoinURLEmpty       = errors.New("join url empty")
	ErrDisplayNameTooLong = errors.New("display name too long")
)

// ThreadID is the stable identifier of a meeting's conversation thread,
// assigned by the calling platform. It keys the call registry.
type ThreadID string

// JoinRequest asks the bot to join a meeting by its join URL. DisplayName,
// when set, makes the bot appear as a named guest.
type JoinRequest struct {
	JoinURL     string `json:"joinUrl"`
	DisplayName string `json:"displayName,omitempty"`
}

func (r JoinRequest) Validate() error {
	if r.JoinURL == "" {
		return ErrJoinURLEmpty
	}
	if len(r.DisplayName) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	return nil
}

// JoinResult is what a successful join reports back to the client. The
// registry entry for ThreadID materializes asynchronously, after this result
// is already in the caller's hands.
type JoinResult struct {
	CallID     string
	ScenarioID uuid.UUID
	ThreadID   ThreadID
}
