package platform

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrClientDisposed = errors.New("platform client disposed")
	ErrUnknownCall    = errors.New("unknown call")
)

var _ Client = (*Loopback)(nil)

// Loopback is an in-process simulation of the calling platform, used for
// local development and tests. It keeps its own call collection and delivers
// added/removed notifications asynchronously, the way the real platform
// does: an AddCall response can land before or after the matching added
// notification.
type Loopback struct {
	mu       sync.Mutex
	incoming IncomingHandler
	updated  UpdatedHandler
	calls    map[string]*Call
	streams  map[string]*loopbackStream
	disposed bool

	wg sync.WaitGroup
}

func NewLoopback() *Loopback {
	return &Loopback{
		calls:   make(map[string]*Call),
		streams: make(map[string]*loopbackStream),
	}
}

func (l *Loopback) OnIncoming(h IncomingHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.incoming = h
}

func (l *Loopback) OnUpdated(h UpdatedHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updated = h
}

// DeliverIncoming injects inbound calls, as if real participants dialed the
// bot. Driver-side entry point, not part of the Client surface.
func (l *Loopback) DeliverIncoming(calls ...*Call) {
	l.mu.Lock()
	h := l.incoming
	l.mu.Unlock()
	if h != nil {
		h(calls)
	}
}

func (l *Loopback) CreateMediaSession(audio AudioSettings, video VideoSettings, sessionID uuid.UUID) (*MediaSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return nil, ErrClientDisposed
	}
	if sessionID == uuid.Nil {
		sessionID = uuid.New()
	}
	return &MediaSession{ID: sessionID, Audio: audio, Video: video}, nil
}

func (l *Loopback) Answer(ctx context.Context, call *Call, media *MediaSession) error {
	if media == nil {
		return errors.New("answer without media session")
	}
	l.track(call)
	return nil
}

func (l *Loopback) AddCall(ctx context.Context, params JoinParameters, scenarioID uuid.UUID) (*Call, error) {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return nil, ErrClientDisposed
	}
	l.mu.Unlock()

	call := &Call{
		ID:         uuid.NewString(),
		ScenarioID: scenarioID,
		ChatInfo:   params.ChatInfo,
	}
	l.track(call)
	return call, nil
}

// track adds the call to the collection and notifies asynchronously.
func (l *Loopback) track(call *Call) {
	l.mu.Lock()
	l.calls[call.ID] = call
	l.streams[call.ID] = &loopbackStream{}
	h := l.updated
	l.mu.Unlock()

	if h == nil {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		h([]*Call{call}, nil)
	}()
}

func (l *Loopback) DeleteCall(ctx context.Context, call *Call) error {
	if call == nil {
		return ErrUnknownCall
	}
	if !l.untrack(call.ID) {
		return ErrUnknownCall
	}
	return nil
}

func (l *Loopback) TryForceRemove(callID string) bool {
	return l.untrack(callID)
}

// untrack drops the call and delivers the removed notification.
func (l *Loopback) untrack(callID string) bool {
	l.mu.Lock()
	call, ok := l.calls[callID]
	if ok {
		delete(l.calls, callID)
		delete(l.streams, callID)
	}
	h := l.updated
	l.mu.Unlock()

	if !ok {
		return false
	}
	if h != nil {
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			h(nil, []*Call{call})
		}()
	}
	return true
}

func (l *Loopback) MediaStream(call *Call) MediaStream {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.streams[call.ID]; ok {
		return s
	}
	return &loopbackStream{}
}

// ParseJoinURL understands real meetup-join deep links, where the second
// path segment after "meetup-join" is the URL-encoded thread id and the
// context query parameter carries the tenant. Anything else gets a thread id
// derived from the URL so local joins still work.
func (l *Loopback) ParseJoinURL(joinURL string) (ChatInfo, MeetingInfo, error) {
	u, err := url.Parse(joinURL)
	if err != nil {
		return ChatInfo{}, MeetingInfo{}, fmt.Errorf("parse join url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return ChatInfo{}, MeetingInfo{}, fmt.Errorf("join url %q is not absolute", joinURL)
	}

	meeting := MeetingInfo{Organizer: Identity{ID: uuid.NewString()}}
	if raw := u.Query().Get("context"); raw != "" {
		var ctx struct {
			Tid string `json:"Tid"`
			Oid string `json:"Oid"`
		}
		if err := json.Unmarshal([]byte(raw), &ctx); err == nil {
			meeting.Organizer.TenantID = ctx.Tid
			if ctx.Oid != "" {
				meeting.Organizer.ID = ctx.Oid
			}
		}
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg == "meetup-join" && i+1 < len(segments) {
			thread, err := url.PathUnescape(segments[i+1])
			if err != nil {
				return ChatInfo{}, MeetingInfo{}, fmt.Errorf("decode thread id: %w", err)
			}
			return ChatInfo{ThreadID: thread}, meeting, nil
		}
	}

	sum := sha1.Sum([]byte(joinURL))
	thread := "19:" + hex.EncodeToString(sum[:]) + "@thread.v2"
	return ChatInfo{ThreadID: thread}, meeting, nil
}

func (l *Loopback) Terminate(ctx context.Context) error {
	l.mu.Lock()
	remaining := make([]*Call, 0, len(l.calls))
	for _, c := range l.calls {
		remaining = append(remaining, c)
	}
	l.mu.Unlock()

	for _, c := range remaining {
		l.untrack(c.ID)
	}
	l.wg.Wait()
	log.Info().Str("module", "platform.loopback").Int("calls", len(remaining)).Msg("terminated all calls")
	return nil
}

func (l *Loopback) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disposed = true
	l.incoming = nil
	l.updated = nil
}

type loopbackStream struct {
	once sync.Once
}

func (s *loopbackStream) Shutdown(ctx context.Context) error {
	s.once.Do(func() {})
	return nil
}
