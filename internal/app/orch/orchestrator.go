// Package orch reconciles platform call notifications with client join and
// end-call requests. Every mutation path converges on the call registry.
package orch

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/app"
	"github.com/Masteraddy/teamsbot-test/internal/domain"
	"github.com/Masteraddy/teamsbot-test/internal/platform"
	"github.com/Masteraddy/teamsbot-test/internal/transcript"
)

type Orchestrator struct {
	Registry    *app.CallRegistry
	Media       *app.MediaSessionFactory
	Client      platform.Client
	Tasks       *app.TaskPool
	Transcripts *transcript.Store

	ctx context.Context
}

// Start wires the orchestrator into the platform's notification streams.
// ctx bounds every detached operation the orchestrator spawns afterwards.
func (o *Orchestrator) Start(ctx context.Context) {
	o.ctx = ctx
	o.Client.OnIncoming(o.HandleIncoming)
	o.Client.OnUpdated(o.HandleUpdated)
	log.Info().Str("module", "orch").Msg("orchestrator started")
}

// HandleIncoming answers each new inbound call with a fresh media session.
// It never touches the registry: the entry for the call's thread appears
// later through the updated notification. A failure on one call does not
// block the rest of the batch.
func (o *Orchestrator) HandleIncoming(calls []*platform.Call) {
	for _, call := range calls {
		o.answerIncoming(call)
	}
}

func (o *Orchestrator) answerIncoming(call *platform.Call) {
	logger := log.With().Str("module", "orch").Str("call", call.ID).Logger()

	if ic := call.Incoming; ic != nil {
		ev := logger.Info().Str("observed_participant", ic.ObservedParticipantID)
		if ic.OnBehalfOf != nil {
			ev = ev.Str("on_behalf_of", ic.OnBehalfOf.ID)
		}
		if ic.Transferor != nil {
			ev = ev.Str("transferor", ic.Transferor.ID)
		}
		// Source location details are only meaningful when the observed
		// participant is the source participant itself.
		if ic.ObservedParticipantID == ic.SourceParticipantID {
			ev = ev.Str("country", call.Source.CountryCode).Str("endpoint", string(call.Source.EndpointType))
		}
		ev.Msg("incoming call")
	}

	// Reuse the call id as the media session id when it parses as one.
	sessionID := uuid.Nil
	if id, err := uuid.Parse(call.ID); err == nil {
		sessionID = id
	}

	ms, err := o.Media.CreateSession(sessionID)
	if err != nil {
		logger.Error().Err(err).Msg("cannot answer call without media session")
		return
	}

	o.Tasks.Go("answer "+call.ID, func() error {
		if err := o.Client.Answer(o.ctx, call, ms); err != nil {
			return err
		}
		app.MetricCallsAnswered.Inc()
		logger.Info().Str("scenario", call.ScenarioID.String()).Msg("answered call")
		return nil
	})
}

// HandleUpdated reconciles the platform's call collection into the registry.
// Added calls are registered under their thread id, overwriting any previous
// entry. Removed calls are extracted and torn down on the task pool so this
// handler never waits on media teardown.
func (o *Orchestrator) HandleUpdated(added, removed []*platform.Call) {
	for _, call := range added {
		threadID := domain.ThreadID(call.ChatInfo.ThreadID)
		handler := app.NewCallHandler(call, o.Client.MediaStream(call), o.Transcripts)
		o.Registry.Upsert(threadID, app.NewCallSession(threadID, call, handler))
	}

	for _, call := range removed {
		threadID := domain.ThreadID(call.ChatInfo.ThreadID)
		sess, ok := o.Registry.Remove(threadID)
		if !ok {
			// Duplicate or unknown removal notifications are tolerated.
			log.Debug().Str("module", "orch").Str("thread", string(threadID)).Msg("removal for untracked thread")
			continue
		}
		if !sess.BeginRemoval() {
			continue
		}
		app.MetricCallsRemoved.Inc()
		o.Tasks.Go("teardown "+string(threadID), func() error {
			defer sess.FinishRemoval()
			return sess.Handler.Shutdown(o.ctx)
		})
	}

	app.MetricActiveCalls.Set(float64(o.Registry.Len()))
}
