// Package platform defines the narrow surface of the external calling
// platform consumed by the bot: live call objects, media session creation
// and the add/delete/force-remove operations. The real implementation is
// provided by the platform SDK; tests substitute a fake.
package platform

import (
	"context"

	"github.com/google/uuid"
)

// EndpointType describes the kind of endpoint a call participant uses.
type EndpointType string

const (
	EndpointDefault EndpointType = "default"
	EndpointVoip    EndpointType = "voip"
	EndpointPSTN    EndpointType = "pstn"
)

// Identity is a platform participant identity.
type Identity struct {
	ID          string
	DisplayName string
	TenantID    string
}

// ChatInfo identifies the conversation thread a call belongs to.
type ChatInfo struct {
	ThreadID string
}

// MeetingInfo describes the meeting a join URL points at. Organizer carries
// the tenant the meeting was scheduled in.
type MeetingInfo struct {
	Organizer Identity
}

// IncomingContext carries routing metadata delivered with an inbound call.
type IncomingContext struct {
	ObservedParticipantID string
	SourceParticipantID   string
	OnBehalfOf            *Identity
	Transferor            *Identity
}

// ParticipantInfo describes the source participant of a call.
type ParticipantInfo struct {
	Identity     Identity
	CountryCode  string
	EndpointType EndpointType
}

// Call is an opaque handle to a live platform call object. The platform owns
// it; holders must not assume it stays valid after a removed notification.
type Call struct {
	ID         string
	ScenarioID uuid.UUID
	ChatInfo   ChatInfo
	Source     ParticipantInfo
	Incoming   *IncomingContext
}

// MediaStream controls the media leg of an established call.
type MediaStream interface {
	// Shutdown tears the stream down and releases its sockets. Safe to call
	// once per stream.
	Shutdown(ctx context.Context) error
}

// StreamDirection mirrors the platform's socket direction settings.
type StreamDirection string

const (
	StreamSendRecv StreamDirection = "sendrecv"
	StreamInactive StreamDirection = "inactive"
)

// AudioFormat is the wire format of an audio socket. The platform currently
// supports a single 16 kHz PCM format for bot media.
type AudioFormat string

const AudioPCM16K AudioFormat = "pcm16k"

// AudioSettings configures the audio socket of a media session.
type AudioSettings struct {
	Direction    StreamDirection
	Format       AudioFormat
	UnmixedAudio bool
}

// VideoSettings configures the video socket of a media session.
type VideoSettings struct {
	Direction StreamDirection
}

// MediaSession is the descriptor returned by CreateMediaSession and handed
// back to Answer or AddCall.
type MediaSession struct {
	ID    uuid.UUID
	Audio AudioSettings
	Video VideoSettings
}

// JoinParameters is everything AddCall needs to place the bot into a meeting.
type JoinParameters struct {
	ChatInfo      ChatInfo
	MeetingInfo   MeetingInfo
	TenantID      string
	GuestIdentity *Identity
	MediaSession  *MediaSession
}

// IncomingHandler receives batches of new inbound calls.
type IncomingHandler func(calls []*Call)

// UpdatedHandler receives call-collection changes: calls newly tracked by the
// platform and calls it stopped tracking.
type UpdatedHandler func(added, removed []*Call)

// Client is the calling-platform client. All methods may be called
// concurrently.
type Client interface {
	// OnIncoming registers the handler for inbound call batches.
	OnIncoming(h IncomingHandler)
	// OnUpdated registers the handler for call-collection updates.
	OnUpdated(h UpdatedHandler)

	// CreateMediaSession builds a media session descriptor. A zero sessionID
	// lets the platform pick one.
	CreateMediaSession(audio AudioSettings, video VideoSettings, sessionID uuid.UUID) (*MediaSession, error)
	// Answer accepts an inbound call with the given media session.
	Answer(ctx context.Context, call *Call, media *MediaSession) error
	// AddCall joins a meeting and returns the resulting call handle. The
	// matching added notification arrives asynchronously.
	AddCall(ctx context.Context, params JoinParameters, scenarioID uuid.UUID) (*Call, error)
	// DeleteCall hangs up a tracked call.
	DeleteCall(ctx context.Context, call *Call) error
	// TryForceRemove drops the platform's bookkeeping for a call by id and
	// reports whether anything was removed. A removed notification follows.
	TryForceRemove(callID string) bool
	// MediaStream returns the stream controller bound to a call, if any.
	MediaStream(call *Call) MediaStream

	// ParseJoinURL splits a meeting join URL into its chat and meeting parts.
	ParseJoinURL(joinURL string) (ChatInfo, MeetingInfo, error)

	// Terminate hangs up every active call. Used once during shutdown.
	Terminate(ctx context.Context) error
	// Dispose releases client resources. No calls are valid afterwards.
	Dispose()
}
