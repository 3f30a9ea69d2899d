package application

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

var errBoom = errors.New("boom")

const (
	testGuildID        = snowflake.ID(1)
	testTextChannelID  = snowflake.ID(3)
	testVoiceChannelID = snowflake.ID(4)
)

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		Identifier: id,
		Encoded:    "encoded-" + id,
		Title:      "Track " + id,
		Duration:   3 * time.Minute,
		IsSeekable: true,
	}
}

type mockRepository struct {
	sessions map[snowflake.ID]*domain.Session
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.Session { return m.sessions[guildID] }
func (m *mockRepository) Save(session *domain.Session)             { m.sessions[session.GuildID] = session }
func (m *mockRepository) Delete(guildID snowflake.ID)              { delete(m.sessions, guildID) }
func (m *mockRepository) Count() int                               { return len(m.sessions) }

type mockAudioPlayer struct {
	playErr error
	plays   []*domain.Track
	offsets []time.Duration
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track, startAt time.Duration) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.plays = append(m.plays, track)
	m.offsets = append(m.offsets, startAt)
	return nil
}

func (m *mockAudioPlayer) Stop(context.Context, snowflake.ID) error   { return nil }
func (m *mockAudioPlayer) Pause(context.Context, snowflake.ID) error  { return nil }
func (m *mockAudioPlayer) Resume(context.Context, snowflake.ID) error { return nil }

func (m *mockAudioPlayer) Seek(context.Context, snowflake.ID, time.Duration) error { return nil }

func (m *mockAudioPlayer) ApplyFilter(context.Context, snowflake.ID, domain.Filter, domain.Volume) error {
	return nil
}

type mockVoiceConnection struct {
	leaves int
}

func (m *mockVoiceConnection) JoinChannel(context.Context, snowflake.ID, snowflake.ID) error {
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(context.Context, snowflake.ID) error {
	m.leaves++
	return nil
}

type mockRepeatStore struct {
	flags  map[snowflake.ID]bool
	setErr error
}

func (m *mockRepeatStore) GetRepeat(_ context.Context, guildID snowflake.ID) (bool, error) {
	return m.flags[guildID], nil
}

func (m *mockRepeatStore) SetRepeat(_ context.Context, guildID snowflake.ID, enabled bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.flags[guildID] = enabled
	return nil
}

// mockNotifier records the kind of every notification it was asked to send.
type mockNotifier struct {
	sent    []string
	details []string
}

func (m *mockNotifier) record(kind, detail string) error {
	m.sent = append(m.sent, kind)
	m.details = append(m.details, detail)
	return nil
}

func (m *mockNotifier) SendNowPlaying(_ snowflake.ID, track *domain.Track) error {
	return m.record("now_playing", track.Title)
}

func (m *mockNotifier) SendRepeated(_ snowflake.ID, track *domain.Track) error {
	return m.record("repeated", track.Title)
}

func (m *mockNotifier) SendQueueCompleted(snowflake.ID) error {
	return m.record("queue_completed", "")
}

func (m *mockNotifier) SendStopped(snowflake.ID) error {
	return m.record("stopped", "")
}

func (m *mockNotifier) SendStuck(_ snowflake.ID, _ *domain.Track, threshold time.Duration) error {
	return m.record("stuck", threshold.String())
}

func (m *mockNotifier) SendException(_ snowflake.ID, _ *domain.Track, message string) error {
	return m.record("exception", message)
}

func (m *mockNotifier) SendInvalidTrack(snowflake.ID) error {
	return m.record("invalid_track", "")
}

func (m *mockNotifier) SendError(_ snowflake.ID, message string) error {
	return m.record("error", message)
}

type mockStatsSink struct {
	recorded []domain.NodeStats
}

func (m *mockStatsSink) Record(stats domain.NodeStats) {
	m.recorded = append(m.recorded, stats)
}

// mockSubscriber keeps the registered dispatch table so tests can deliver events.
type mockSubscriber struct {
	handlers map[domain.EventKind]func(context.Context, domain.Event)
	err      error
}

func (m *mockSubscriber) Subscribe(kind domain.EventKind, handler func(context.Context, domain.Event)) error {
	if m.err != nil {
		return m.err
	}
	m.handlers[kind] = handler
	return nil
}

func (m *mockSubscriber) deliver(event domain.Event) {
	if handler, ok := m.handlers[event.Kind()]; ok {
		handler(context.Background(), event)
	}
}

type handlerEnv struct {
	repo       *mockRepository
	player     *mockAudioPlayer
	voice      *mockVoiceConnection
	store      *mockRepeatStore
	notifier   *mockNotifier
	stats      *mockStatsSink
	subscriber *mockSubscriber
	handler    *PlaybackEventHandler
}

func newHandlerEnv() *handlerEnv {
	env := &handlerEnv{
		repo:       &mockRepository{sessions: make(map[snowflake.ID]*domain.Session)},
		player:     &mockAudioPlayer{},
		voice:      &mockVoiceConnection{},
		store:      &mockRepeatStore{flags: make(map[snowflake.ID]bool)},
		notifier:   &mockNotifier{},
		stats:      &mockStatsSink{},
		subscriber: &mockSubscriber{handlers: make(map[domain.EventKind]func(context.Context, domain.Event))},
	}
	env.handler = NewPlaybackEventHandler(
		usecases.NewSessionRegistry(env.repo, env.voice, env.player),
		env.player,
		usecases.NewRepeatMode(env.store),
		env.notifier,
		env.stats,
		env.subscriber,
	)
	return env
}

// playingSession registers a session playing current with the given queue.
func (env *handlerEnv) playingSession(current *domain.Track, queued ...*domain.Track) *domain.Session {
	session := domain.NewSession(testGuildID, testVoiceChannelID, testTextChannelID, domain.StandardVolume)
	session.StartTrack(current)
	session.Queue.EnqueueAll(queued)
	env.repo.Save(session)
	return session
}
