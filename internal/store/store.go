// Package store is the client-side cache over the catalog backend: normalized
// channel and video maps, the home feed list and a little UI state.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/labstack/echo/v4"

	"videoshare/internal/entity"
)

const recommendedLimit = 10

// Backend is satisfied by the in-process catalog service and by the HTTP client.
type Backend interface {
	ListVideos(ctx context.Context, f entity.VideoFilter) ([]entity.Video, error)
	GetVideo(ctx context.Context, id string) (*entity.Video, error)
	ChannelBySlug(ctx context.Context, slug string) (*entity.Channel, error)
	IncrementViews(ctx context.Context, id string) error
	Upload(ctx context.Context, in entity.UploadInput) (*entity.Video, error)
}

// State is a point-in-time copy of the store.
type State struct {
	SidebarOpen bool
	SearchQuery string
	Videos      []entity.Video
	ChannelMap  map[string]entity.Channel
	VideoMap    map[string]entity.Video
	Loading     bool
	Error       string
}

type Store struct {
	backend Backend
	storage Storage
	logger  echo.Logger

	mu          sync.RWMutex
	sidebarOpen bool
	searchQuery string
	videos      []entity.Video
	channelMap  map[string]entity.Channel
	videoMap    map[string]entity.Video
	loading     bool
	err         string
}

type Option func(*Store)

// WithStorage persists UI state and cached rows under StateKey.
func WithStorage(st Storage) Option {
	return func(s *Store) { s.storage = st }
}

func WithLogger(l echo.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		sidebarOpen: true,
		channelMap:  make(map[string]entity.Channel),
		videoMap:    make(map[string]entity.Video),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		SidebarOpen: s.sidebarOpen,
		SearchQuery: s.searchQuery,
		Videos:      append([]entity.Video(nil), s.videos...),
		ChannelMap:  make(map[string]entity.Channel, len(s.channelMap)),
		VideoMap:    make(map[string]entity.Video, len(s.videoMap)),
		Loading:     s.loading,
		Error:       s.err,
	}
	for k, v := range s.channelMap {
		st.ChannelMap[k] = v
	}
	for k, v := range s.videoMap {
		st.VideoMap[k] = v
	}
	return st
}

func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	s.sidebarOpen = open
	s.mu.Unlock()
	s.save()
}

func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	open := s.sidebarOpen
	s.mu.Unlock()
	s.save()
	return open
}

func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// mergeChannelsLocked caches the channel of every row. Caller holds mu.
func (s *Store) mergeChannelsLocked(rows []entity.Video) {
	for _, r := range rows {
		if r.Channel != nil && r.Channel.ID != "" {
			s.channelMap[r.Channel.ID] = *r.Channel
		}
	}
}

// LoadVideos refreshes the home feed. A failure is recorded in State().Error
// and also returned. Results arriving after ctx is done are discarded.
func (s *Store) LoadVideos(ctx context.Context, search, tag string) ([]entity.Video, error) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	rows, err := s.backend.ListVideos(ctx, entity.VideoFilter{Search: search, Tag: tag})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "An error occurred"
		}
		s.err = msg
		return nil, err
	}
	s.videos = rows
	s.mergeChannelsLocked(rows)
	return append([]entity.Video(nil), rows...), nil
}

// LoadVideoByID fetches and caches one video with its channel. It returns
// nil when the video does not exist or the backend fails.
func (s *Store) LoadVideoByID(ctx context.Context, id string) *entity.Video {
	v, err := s.backend.GetVideo(ctx, id)
	if err != nil || v == nil || ctx.Err() != nil {
		s.debugf("load video %s: %v", id, err)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoMap[id] = *v
	if v.Channel != nil {
		s.channelMap[v.Channel.ID] = *v.Channel
	}
	out := *v
	return &out
}

func (s *Store) LoadChannelBySlug(ctx context.Context, slug string) *entity.Channel {
	ch, err := s.backend.ChannelBySlug(ctx, slug)
	if err != nil || ch == nil || ctx.Err() != nil {
		s.debugf("load channel %s: %v", slug, err)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelMap[ch.ID] = *ch
	out := *ch
	return &out
}

func (s *Store) LoadChannelVideos(ctx context.Context, channelID string) []entity.Video {
	return s.loadList(ctx, entity.VideoFilter{ChannelID: channelID})
}

func (s *Store) LoadRecommendedVideos(ctx context.Context, excludeID string) []entity.Video {
	return s.loadList(ctx, entity.VideoFilter{ExcludeID: excludeID, Limit: recommendedLimit})
}

func (s *Store) loadList(ctx context.Context, f entity.VideoFilter) []entity.Video {
	rows, err := s.backend.ListVideos(ctx, f)
	if err != nil || ctx.Err() != nil {
		s.debugf("load videos %+v: %v", f, err)
		return []entity.Video{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeChannelsLocked(rows)
	return rows
}

// IncrementViews records a view and bumps the cached counters once the
// backend accepted it. Failures are ignored.
func (s *Store) IncrementViews(ctx context.Context, id string) {
	if err := s.backend.IncrementViews(ctx, id); err != nil {
		s.debugf("increment views %s: %v", id, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos[i].Views++
		}
	}
	if v, ok := s.videoMap[id]; ok {
		v.Views++
		s.videoMap[id] = v
	}
}

func (s *Store) UploadVideo(ctx context.Context, in entity.UploadInput) (*entity.Video, error) {
	v, err := s.backend.Upload(ctx, in)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("upload returned no video")
	}
	s.mu.Lock()
	s.videos = append([]entity.Video{*v}, s.videos...)
	s.videoMap[v.ID] = *v
	if v.Channel != nil {
		s.channelMap[v.Channel.ID] = *v.Channel
	}
	s.mu.Unlock()
	s.save()

	out := *v
	return &out, nil
}

func (s *Store) ChannelByID(id string) (entity.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.channelMap[id]
	return ch, ok
}

func (s *Store) VideoByID(id string) (entity.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videoMap[id]
	return v, ok
}

// Channels returns the cached channels ordered by name.
func (s *Store) Channels() []entity.Channel {
	s.mu.RLock()
	out := make([]entity.Channel, 0, len(s.channelMap))
	for _, ch := range s.channelMap {
		out = append(out, ch)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}
