package app

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Masteraddy/teamsbot-test/internal/platform"
)

// failingClient overrides media session creation; everything else is the
// embedded interface (and panics if touched).
type failingClient struct {
	platform.Client
	err error
}

func (f failingClient) CreateMediaSession(audio platform.AudioSettings, video platform.VideoSettings, sessionID uuid.UUID) (*platform.MediaSession, error) {
	return nil, f.err
}

func TestCreateSessionShape(t *testing.T) {
	f := NewMediaSessionFactory(platform.NewLoopback())

	ms, err := f.CreateSession(uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, platform.StreamSendRecv, ms.Audio.Direction)
	assert.Equal(t, platform.AudioPCM16K, ms.Audio.Format)
	assert.False(t, ms.Audio.UnmixedAudio)
	assert.Equal(t, platform.StreamInactive, ms.Video.Direction)
	assert.NotEqual(t, uuid.Nil, ms.ID, "platform picks an id when none given")
}

func TestCreateSessionKeepsRequestedID(t *testing.T) {
	f := NewMediaSessionFactory(platform.NewLoopback())
	want := uuid.New()

	ms, err := f.CreateSession(want)
	require.NoError(t, err)
	assert.Equal(t, want, ms.ID)
}

func TestCreateSessionFailurePropagates(t *testing.T) {
	cause := errors.New("platform down")
	f := NewMediaSessionFactory(failingClient{err: cause})

	ms, err := f.CreateSession(uuid.Nil)
	assert.Nil(t, ms)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMediaSession)
	assert.ErrorIs(t, err, cause)
}
