package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

var errBoom = errors.New("boom")

const (
	testGuildID        = snowflake.ID(1)
	testUserID         = snowflake.ID(2)
	testTextChannelID  = snowflake.ID(3)
	testVoiceChannelID = snowflake.ID(4)
	otherVoiceChannel  = snowflake.ID(5)
)

var testControl = ControlInput{GuildID: testGuildID, UserID: testUserID}

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		Identifier:  id,
		Encoded:     "encoded-" + id,
		Title:       "Track " + id,
		Artist:      "Artist",
		Duration:    3 * time.Minute,
		IsSeekable:  true,
		RequesterID: snowflake.ID(123),
	}
}

type mockRepository struct {
	sessions map[snowflake.ID]*domain.Session
	deleted  []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		sessions: make(map[snowflake.ID]*domain.Session),
	}
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.Session {
	return m.sessions[guildID]
}

func (m *mockRepository) Save(session *domain.Session) {
	m.sessions[session.GuildID] = session
}

func (m *mockRepository) Delete(guildID snowflake.ID) {
	m.deleted = append(m.deleted, guildID)
	delete(m.sessions, guildID)
}

func (m *mockRepository) Count() int {
	return len(m.sessions)
}

// createSession creates an idle session in the test guild and saves it.
func (m *mockRepository) createSession() *domain.Session {
	session := domain.NewSession(testGuildID, testVoiceChannelID, testTextChannelID, domain.StandardVolume)
	m.Save(session)
	return session
}

// createPlayingSession creates a session playing the given track.
func (m *mockRepository) createPlayingSession(current *domain.Track) *domain.Session {
	session := m.createSession()
	session.StartTrack(current)
	return session
}

type playCall struct {
	track   *domain.Track
	startAt time.Duration
}

type filterCall struct {
	filter domain.Filter
	volume domain.Volume
}

type mockAudioPlayer struct {
	playErr   error
	stopErr   error
	pauseErr  error
	resumeErr error
	seekErr   error
	filterErr error

	plays   []playCall
	stops   int
	pauses  int
	resumes int
	seeks   []time.Duration
	filters []filterCall
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track, startAt time.Duration) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.plays = append(m.plays, playCall{track: track, startAt: startAt})
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	m.stops++
	return m.stopErr
}

func (m *mockAudioPlayer) Pause(_ context.Context, _ snowflake.ID) error {
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.pauses++
	return nil
}

func (m *mockAudioPlayer) Resume(_ context.Context, _ snowflake.ID) error {
	if m.resumeErr != nil {
		return m.resumeErr
	}
	m.resumes++
	return nil
}

func (m *mockAudioPlayer) Seek(_ context.Context, _ snowflake.ID, position time.Duration) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	m.seeks = append(m.seeks, position)
	return nil
}

func (m *mockAudioPlayer) ApplyFilter(
	_ context.Context,
	_ snowflake.ID,
	filter domain.Filter,
	volume domain.Volume,
) error {
	if m.filterErr != nil {
		return m.filterErr
	}
	m.filters = append(m.filters, filterCall{filter: filter, volume: volume})
	return nil
}

type mockVoiceConnection struct {
	joinErr  error
	leaveErr error
	joins    []snowflake.ID
	leaves   int
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joins = append(m.joins, channelID)
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, _ snowflake.ID) error {
	m.leaves++
	return m.leaveErr
}

type mockTrackResolver struct {
	loadErr error
	list    *domain.TrackList
	queries []domain.SearchQuery
}

func (m *mockTrackResolver) LoadTracks(_ context.Context, query domain.SearchQuery) (*domain.TrackList, error) {
	m.queries = append(m.queries, query)
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.list == nil {
		return &domain.TrackList{}, nil
	}
	return m.list, nil
}

func singleTrack(track *domain.Track) *domain.TrackList {
	return &domain.TrackList{Type: domain.TrackListTypeTrack, Tracks: []*domain.Track{track}}
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(_, userID snowflake.ID) (*snowflake.ID, error) {
	if m.err != nil {
		return nil, m.err
	}
	channelID, ok := m.channels[userID]
	if !ok {
		return nil, nil
	}
	return &channelID, nil
}

type mockRepeatStore struct {
	flags  map[snowflake.ID]bool
	getErr error
	setErr error
}

func newMockRepeatStore() *mockRepeatStore {
	return &mockRepeatStore{flags: make(map[snowflake.ID]bool)}
}

func (m *mockRepeatStore) GetRepeat(_ context.Context, guildID snowflake.ID) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	return m.flags[guildID], nil
}

func (m *mockRepeatStore) SetRepeat(_ context.Context, guildID snowflake.ID, enabled bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.flags[guildID] = enabled
	return nil
}

type mockNodeStatsReader struct {
	stats domain.NodeStats
	ok    bool
}

func (m *mockNodeStatsReader) Latest() (domain.NodeStats, bool) {
	return m.stats, m.ok
}

// inlineExecutor runs lane work on the calling goroutine.
type inlineExecutor struct {
	calls int
}

func (e *inlineExecutor) Do(ctx context.Context, _ snowflake.ID, fn func(context.Context) error) error {
	e.calls++
	return fn(ctx)
}

func (e *inlineExecutor) Go(_ snowflake.ID, fn func(context.Context)) {
	e.calls++
	fn(context.Background())
}

type testEnv struct {
	repo     *mockRepository
	player   *mockAudioPlayer
	voice    *mockVoiceConnection
	resolver *mockTrackResolver
	state    *mockVoiceStateProvider
	store    *mockRepeatStore
	executor *inlineExecutor
	sessions *SessionRegistry
	service  *PlaybackService
}

// newTestEnv wires a PlaybackService whose requester sits in the test voice channel.
func newTestEnv() *testEnv {
	env := &testEnv{
		repo:     newMockRepository(),
		player:   &mockAudioPlayer{},
		voice:    &mockVoiceConnection{},
		resolver: &mockTrackResolver{},
		state: &mockVoiceStateProvider{
			channels: map[snowflake.ID]snowflake.ID{testUserID: testVoiceChannelID},
		},
		store:    newMockRepeatStore(),
		executor: &inlineExecutor{},
	}
	env.sessions = NewSessionRegistry(env.repo, env.voice, env.player)
	env.service = NewPlaybackService(
		env.sessions,
		env.player,
		env.resolver,
		env.state,
		NewRepeatMode(env.store),
		env.executor,
	)
	return env
}

type lyricsCall struct {
	artist string
	title  string
}

type mockLyricsProvider struct {
	lyrics string
	err    error
	calls  []lyricsCall
}

func (m *mockLyricsProvider) Lyrics(_ context.Context, artist, title string) (string, error) {
	m.calls = append(m.calls, lyricsCall{artist: artist, title: title})
	return m.lyrics, m.err
}
