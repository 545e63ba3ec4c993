package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoshare/internal/entity"
)

func seedRows() ([]entity.Channel, []entity.Video) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []entity.Channel{{ID: "ch-a", Name: "Alpha", Slug: "alpha"}},
		[]entity.Video{
			{ID: "s1", ChannelID: "ch-a", Title: "Older", UploadedAt: t0},
			{ID: "s2", ChannelID: "ch-a", Title: "Newer", UploadedAt: t0.Add(time.Hour)},
		}
}

func TestFileStorageRoundTrip(t *testing.T) {
	fs := FileStorage{Dir: t.TempDir()}
	_, ok, err := fs.Get(StateKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set(StateKey, []byte(`{"a":1}`)))
	b, ok, err := fs.Get(StateKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(b))
}

func TestHydrateWithoutStorage(t *testing.T) {
	s := New(newFakeBackend())
	chs, vids := seedRows()
	require.NoError(t, s.Hydrate(chs, vids))

	st := s.State()
	require.Len(t, st.Videos, 2)
	assert.Equal(t, "s2", st.Videos[0].ID)
	require.NotNil(t, st.VideoMap["s1"].Channel)
	assert.Equal(t, "Alpha", st.VideoMap["s1"].Channel.Name)
	assert.Equal(t, "0:00", st.VideoMap["s1"].Duration)
	assert.NoError(t, s.Save())
}

func TestPersistedStateOverridesSeed(t *testing.T) {
	storage := FileStorage{Dir: t.TempDir()}
	chs, vids := seedRows()

	first := New(newFakeBackend(), WithStorage(storage))
	require.NoError(t, first.Hydrate(chs, vids))
	first.SetSidebarOpen(false)
	_, err := first.UploadVideo(context.Background(), entity.UploadInput{ChannelName: "Gamma", Title: "Uploaded", VideoURL: "u"})
	require.NoError(t, err)

	renamed := []entity.Channel{{ID: "ch-a", Name: "Alpha (seed v2)", Slug: "alpha"}}
	second := New(newFakeBackend(), WithStorage(storage))
	require.NoError(t, second.Hydrate(renamed, vids))

	st := second.State()
	assert.False(t, st.SidebarOpen)
	assert.Contains(t, st.VideoMap, "v-new")
	assert.Equal(t, "Gamma", st.VideoMap["v-new"].Channel.Name)
	assert.Equal(t, "Alpha", st.ChannelMap["ch-a"].Name, "persisted rows win over seed rows")
	assert.Len(t, st.Videos, 3)
}

func TestHydrateRejectsCorruptState(t *testing.T) {
	storage := FileStorage{Dir: t.TempDir()}
	require.NoError(t, storage.Set(StateKey, []byte("{not json")))
	s := New(newFakeBackend(), WithStorage(storage))
	assert.ErrorContains(t, s.Hydrate(nil, nil), "decode video-store")
}
