package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoshare/internal/entity"
)

type fakeBackend struct {
	mu       sync.Mutex
	videos   []entity.Video
	listErr  error
	viewErr  error
	filters  []entity.VideoFilter
	views    map[string]int
	uploaded []entity.UploadInput
}

func newFakeBackend() *fakeBackend {
	chA := &entity.Channel{ID: "ch-a", Name: "Alpha", Slug: "alpha"}
	chB := &entity.Channel{ID: "ch-b", Name: "Beta", Slug: "beta"}
	return &fakeBackend{
		views: map[string]int{},
		videos: []entity.Video{
			{ID: "v1", ChannelID: "ch-a", Title: "One", Views: 5, Channel: chA, Tags: []string{"music"}},
			{ID: "v2", ChannelID: "ch-b", Title: "Two", Views: 7, Channel: chB},
		},
	}
}

func (f *fakeBackend) ListVideos(_ context.Context, flt entity.VideoFilter) ([]entity.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, flt)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.Video
	for _, v := range f.videos {
		if flt.ChannelID != "" && v.ChannelID != flt.ChannelID {
			continue
		}
		if flt.ExcludeID != "" && v.ID == flt.ExcludeID {
			continue
		}
		if flt.Tag != "" && !v.HasTag(flt.Tag) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeBackend) GetVideo(_ context.Context, id string) (*entity.Video, error) {
	for _, v := range f.videos {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (f *fakeBackend) ChannelBySlug(_ context.Context, slug string) (*entity.Channel, error) {
	for _, v := range f.videos {
		if v.Channel.Slug == slug {
			ch := *v.Channel
			return &ch, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (f *fakeBackend) IncrementViews(_ context.Context, id string) error {
	if f.viewErr != nil {
		return f.viewErr
	}
	f.views[id]++
	return nil
}

func (f *fakeBackend) Upload(_ context.Context, in entity.UploadInput) (*entity.Video, error) {
	if in.Title == "" {
		return nil, errors.New("channel_name, title, and video_url are required")
	}
	f.uploaded = append(f.uploaded, in)
	ch := &entity.Channel{ID: "ch-new", Name: in.ChannelName, Slug: entity.Slugify(in.ChannelName)}
	return &entity.Video{ID: "v-new", ChannelID: ch.ID, Title: in.Title, Channel: ch}, nil
}

func TestNewStoreDefaults(t *testing.T) {
	s := New(newFakeBackend())
	st := s.State()
	assert.True(t, st.SidebarOpen)
	assert.Empty(t, st.Videos)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestUIState(t *testing.T) {
	s := New(newFakeBackend())
	assert.False(t, s.ToggleSidebar())
	assert.False(t, s.State().SidebarOpen)
	s.SetSidebarOpen(true)
	assert.True(t, s.State().SidebarOpen)
	s.SetSearchQuery("cats")
	assert.Equal(t, "cats", s.State().SearchQuery)
}

func TestLoadVideosMergesChannels(t *testing.T) {
	b := newFakeBackend()
	s := New(b)

	rows, err := s.LoadVideos(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	st := s.State()
	assert.Len(t, st.Videos, 2)
	assert.Contains(t, st.ChannelMap, "ch-a")
	assert.Contains(t, st.ChannelMap, "ch-b")
	assert.False(t, st.Loading)

	rows, err = s.LoadVideos(context.Background(), "", "music")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "music", b.filters[1].Tag)
	assert.Len(t, s.State().ChannelMap, 2, "channels accumulate across loads")
}

func TestLoadVideosRecordsError(t *testing.T) {
	b := newFakeBackend()
	s := New(b)
	_, err := s.LoadVideos(context.Background(), "", "")
	require.NoError(t, err)

	b.listErr = errors.New("connection refused")
	_, err = s.LoadVideos(context.Background(), "x", "")
	assert.Error(t, err)

	st := s.State()
	assert.Equal(t, "connection refused", st.Error)
	assert.False(t, st.Loading)
	assert.Len(t, st.Videos, 2, "previous feed is kept on failure")

	b.listErr = errors.New("")
	_, _ = s.LoadVideos(context.Background(), "", "")
	assert.Equal(t, "An error occurred", s.State().Error)

	b.listErr = nil
	_, err = s.LoadVideos(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, s.State().Error)
}

func TestLoadVideosDiscardsCancelled(t *testing.T) {
	s := New(newFakeBackend())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadVideos(ctx, "", "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.State().Videos)
	assert.Empty(t, s.State().ChannelMap)
}

func TestLoadVideoAndChannel(t *testing.T) {
	s := New(newFakeBackend())
	ctx := context.Background()

	v := s.LoadVideoByID(ctx, "v2")
	require.NotNil(t, v)
	cached, ok := s.VideoByID("v2")
	assert.True(t, ok)
	assert.Equal(t, "Two", cached.Title)
	ch, ok := s.ChannelByID("ch-b")
	assert.True(t, ok)
	assert.Equal(t, "Beta", ch.Name)

	assert.Nil(t, s.LoadVideoByID(ctx, "missing"))

	got := s.LoadChannelBySlug(ctx, "alpha")
	require.NotNil(t, got)
	assert.Equal(t, "ch-a", got.ID)
	assert.Nil(t, s.LoadChannelBySlug(ctx, "nobody"))
}

func TestChannelAndRecommendedVideos(t *testing.T) {
	b := newFakeBackend()
	s := New(b)
	ctx := context.Background()

	rows := s.LoadChannelVideos(ctx, "ch-a")
	require.Len(t, rows, 1)
	assert.Equal(t, "v1", rows[0].ID)

	rows = s.LoadRecommendedVideos(ctx, "v1")
	require.Len(t, rows, 1)
	assert.Equal(t, "v2", rows[0].ID)
	assert.Equal(t, 10, b.filters[len(b.filters)-1].Limit)

	b.listErr = errors.New("boom")
	assert.Empty(t, s.LoadChannelVideos(ctx, "ch-a"))
	assert.NotNil(t, s.LoadRecommendedVideos(ctx, "v1"))
}

func TestIncrementViews(t *testing.T) {
	b := newFakeBackend()
	s := New(b)
	ctx := context.Background()
	_, err := s.LoadVideos(ctx, "", "")
	require.NoError(t, err)
	s.LoadVideoByID(ctx, "v1")

	s.IncrementViews(ctx, "v1")
	assert.Equal(t, 1, b.views["v1"])
	st := s.State()
	assert.EqualValues(t, 6, st.Videos[0].Views)
	assert.EqualValues(t, 7, st.Videos[1].Views)
	assert.EqualValues(t, 6, st.VideoMap["v1"].Views)

	s.IncrementViews(ctx, "v2")
	_, cached := s.VideoByID("v2")
	assert.False(t, cached, "increment does not populate the video map")
	assert.EqualValues(t, 8, s.State().Videos[1].Views)

	b.viewErr = errors.New("rpc failed")
	s.IncrementViews(ctx, "v1")
	assert.EqualValues(t, 6, s.State().VideoMap["v1"].Views)
}

func TestUploadVideo(t *testing.T) {
	b := newFakeBackend()
	s := New(b)
	ctx := context.Background()
	_, err := s.LoadVideos(ctx, "", "")
	require.NoError(t, err)

	v, err := s.UploadVideo(ctx, entity.UploadInput{ChannelName: "New Channel", Title: "Fresh", VideoURL: "u"})
	require.NoError(t, err)
	assert.Equal(t, "v-new", v.ID)

	st := s.State()
	require.Len(t, st.Videos, 3)
	assert.Equal(t, "v-new", st.Videos[0].ID)
	assert.Contains(t, st.VideoMap, "v-new")
	assert.Equal(t, "new-channel", st.ChannelMap["ch-new"].Slug)

	_, err = s.UploadVideo(ctx, entity.UploadInput{ChannelName: "x"})
	assert.Error(t, err)
	assert.Len(t, s.State().Videos, 3)
}

func TestChannelsSorted(t *testing.T) {
	s := New(newFakeBackend())
	_, err := s.LoadVideos(context.Background(), "", "")
	require.NoError(t, err)
	chs := s.Channels()
	require.Len(t, chs, 2)
	assert.Equal(t, "Alpha", chs[0].Name)
	assert.Equal(t, "Beta", chs[1].Name)
}

func TestConcurrentAccess(t *testing.T) {
	s := New(newFakeBackend())
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.LoadVideos(ctx, "", "")
			s.LoadVideoByID(ctx, "v1")
			_ = s.State()
		}()
	}
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("store deadlocked")
	}
}
