package platform

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopbackParseJoinURLMeetupJoin(t *testing.T) {
	l := NewLoopback()

	joinURL := "https://teams.microsoft.com/l/meetup-join/19%3ameeting_abc%40thread.v2/0" +
		"?context=%7B%22Tid%22%3A%22tid-1%22%2C%22Oid%22%3A%22oid-1%22%7D"

	chat, meeting, err := l.ParseJoinURL(joinURL)
	require.NoError(t, err)
	assert.Equal(t, "19:meeting_abc@thread.v2", chat.ThreadID)
	assert.Equal(t, "tid-1", meeting.Organizer.TenantID)
	assert.Equal(t, "oid-1", meeting.Organizer.ID)
}

func TestLoopbackParseJoinURLFallback(t *testing.T) {
	l := NewLoopback()

	chat1, _, err := l.ParseJoinURL("https://example.test/meet/123")
	require.NoError(t, err)
	chat2, _, err := l.ParseJoinURL("https://example.test/meet/123")
	require.NoError(t, err)
	assert.Equal(t, chat1.ThreadID, chat2.ThreadID, "thread id derivation is stable")

	_, _, err = l.ParseJoinURL("not a url at all")
	assert.Error(t, err)
}

func TestLoopbackAddAndDeleteNotify(t *testing.T) {
	l := NewLoopback()

	var mu sync.Mutex
	var added, removed []*Call
	l.OnUpdated(func(a, r []*Call) {
		mu.Lock()
		defer mu.Unlock()
		added = append(added, a...)
		removed = append(removed, r...)
	})

	call, err := l.AddCall(context.Background(), JoinParameters{
		ChatInfo:     ChatInfo{ThreadID: "19:t@thread.v2"},
		MediaSession: &MediaSession{ID: uuid.New()},
	}, uuid.New())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(added) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, l.DeleteCall(context.Background(), call))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(removed) == 1 && removed[0].ID == call.ID
	}, time.Second, 5*time.Millisecond)

	assert.Error(t, l.DeleteCall(context.Background(), call), "second delete has nothing to remove")
	assert.False(t, l.TryForceRemove(call.ID))
}

func TestLoopbackDisposedRejectsWork(t *testing.T) {
	l := NewLoopback()
	l.Dispose()

	_, err := l.CreateMediaSession(AudioSettings{}, VideoSettings{}, uuid.Nil)
	assert.ErrorIs(t, err, ErrClientDisposed)

	_, err = l.AddCall(context.Background(), JoinParameters{}, uuid.New())
	assert.ErrorIs(t, err, ErrClientDisposed)
}
