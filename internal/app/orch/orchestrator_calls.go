package orch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/app"
	"github.com/Masteraddy/teamsbot-test/internal/domain"
	"github.com/Masteraddy/teamsbot-test/internal/platform"
)

// Join places the bot into the meeting behind req.JoinURL and returns the
// resulting call handle data. The registry entry for the thread is NOT
// guaranteed to exist when Join returns; it arrives later through the
// updated notification. Callers needing registry visibility must poll.
func (o *Orchestrator) Join(ctx context.Context, req domain.JoinRequest) (*domain.JoinResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scenarioID := uuid.New()

	chatInfo, meetingInfo, err := o.Client.ParseJoinURL(req.JoinURL)
	if err != nil {
		return nil, fmt.Errorf("parse join url: %w", err)
	}
	threadID := domain.ThreadID(chatInfo.ThreadID)
	tenantID := meetingInfo.Organizer.TenantID

	ms, err := o.Media.CreateSession(uuid.Nil)
	if err != nil {
		return nil, err
	}

	params := platform.JoinParameters{
		ChatInfo:     chatInfo,
		MeetingInfo:  meetingInfo,
		TenantID:     tenantID,
		MediaSession: ms,
	}
	if req.DisplayName != "" {
		params.GuestIdentity = &platform.Identity{
			ID:          uuid.NewString(),
			DisplayName: req.DisplayName,
		}
	}

	// Optimistic check. No lock spans this lookup and the AddCall below, so
	// two concurrent joins for the same thread can both pass; the platform's
	// updated notifications make the registry converge (last writer wins).
	if _, ok := o.Registry.Get(threadID); ok {
		return nil, app.ErrAlreadyJoined
	}

	call, err := o.Client.AddCall(ctx, params, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("add call: %w", err)
	}

	app.MetricJoins.Inc()
	log.Info().Str("module", "orch").
		Str("call", call.ID).
		Str("scenario", scenarioID.String()).
		Str("thread", string(threadID)).
		Msg("call creation complete")

	return &domain.JoinResult{
		CallID:     call.ID,
		ScenarioID: scenarioID,
		ThreadID:   threadID,
	}, nil
}

// EndCallOutcome says how an end-call request was resolved. It exists for
// diagnostics only: the HTTP layer reports success for all three.
type EndCallOutcome int

const (
	// EndCallUnknownThread means the thread was not tracked; nothing was done.
	EndCallUnknownThread EndCallOutcome = iota
	// EndCallDeleted means the platform accepted the delete request.
	EndCallDeleted
	// EndCallForceRemoved means delete failed and the call was force-removed
	// from the platform's bookkeeping instead.
	EndCallForceRemoved
)

// EndCall drives the call for threadID toward the absent state. It never
// returns an error: platform failures are absorbed, with a forced removal as
// the fallback so a removed notification is eventually delivered and the
// registry converges. The registry entry itself is erased by that
// notification, not here.
func (o *Orchestrator) EndCall(ctx context.Context, threadID domain.ThreadID) EndCallOutcome {
	logger := log.With().Str("module", "orch").Str("thread", string(threadID)).Logger()

	sess, ok := o.Registry.Get(threadID)
	if !ok {
		logger.Info().Msg("end call for untracked thread")
		return EndCallUnknownThread
	}

	if err := o.Client.DeleteCall(ctx, sess.Call); err != nil {
		logger.Warn().Err(err).Str("call", sess.Call.ID).Msg("delete failed, forcing removal")
		app.MetricForceRemovals.Inc()
		o.Client.TryForceRemove(sess.Call.ID)
		return EndCallForceRemoved
	}

	logger.Info().Str("call", sess.Call.ID).Msg("call delete requested")
	return EndCallDeleted
}
