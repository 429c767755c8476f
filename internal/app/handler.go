package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/platform"
	"github.com/Masteraddy/teamsbot-test/internal/transcript"
)

// CallHandler wraps one live call: the media stream controller and the
// call's transcript file. Created when the platform reports the call added,
// disposed after it reports the call removed.
type CallHandler struct {
	Call  *platform.Call
	Media platform.MediaStream

	transcripts *transcript.Store
	name        string
}

func NewCallHandler(call *platform.Call, media platform.MediaStream, store *transcript.Store) *CallHandler {
	h := &CallHandler{
		Call:        call,
		Media:       media,
		transcripts: store,
		name:        call.ChatInfo.ThreadID,
	}
	if store != nil {
		if err := store.Create(h.name); err != nil {
			log.Error().Err(err).Str("module", "app.handler").Str("call", call.ID).Msg("transcript create failed")
		}
	}
	return h
}

// AppendTranscript records one line of recognized speech for this call.
func (h *CallHandler) AppendTranscript(line string) error {
	if h.transcripts == nil {
		return nil
	}
	stamp := time.Now().UTC().Format(time.RFC3339)
	return h.transcripts.Append(h.name, fmt.Sprintf("[%s] %s\n", stamp, line))
}

// Shutdown tears down the media stream and disposes the handler. The
// transcript file is kept on disk.
func (h *CallHandler) Shutdown(ctx context.Context) error {
	if h.Media != nil {
		if err := h.Media.Shutdown(ctx); err != nil {
			return fmt.Errorf("media stream shutdown: %w", err)
		}
	}
	h.Dispose()
	return nil
}

// Dispose drops references owned by the handler. Idempotent.
func (h *CallHandler) Dispose() {
	h.Media = nil
	h.Call = nil
}
