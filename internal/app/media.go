package app

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/platform"
)

// MediaSessionFactory builds the media session descriptors this bot uses:
// bidirectional audio at the platform's fixed 16 kHz PCM format, video
// explicitly inactive. The bot is audio-only.
type MediaSessionFactory struct {
	client platform.Client
}

func NewMediaSessionFactory(client platform.Client) *MediaSessionFactory {
	return &MediaSessionFactory{client: client}
}

// CreateSession requests a media session from the platform. Pass uuid.Nil to
// let the platform pick the session id.
func (f *MediaSessionFactory) CreateSession(sessionID uuid.UUID) (*platform.MediaSession, error) {
	ms, err := f.client.CreateMediaSession(
		platform.AudioSettings{
			Direction:    platform.StreamSendRecv,
			Format:       platform.AudioPCM16K,
			UnmixedAudio: false,
		},
		platform.VideoSettings{
			Direction: platform.StreamInactive,
		},
		sessionID,
	)
	if err != nil {
		log.Error().Err(err).Str("module", "app.media").Msg("media session creation failed")
		return nil, fmt.Errorf("%w: %w", ErrMediaSession, err)
	}
	return ms, nil
}
