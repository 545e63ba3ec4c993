// Package catalogtest builds catalog services on throwaway SQLite databases.
package catalogtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videoshare/internal/catalog"
	"videoshare/internal/database"
	"videoshare/internal/entity"
)

const DefaultThumbnail = "https://example.com/default.jpg"

// Fixture ids.
const (
	ChannelTech  = "11111111-0000-0000-0000-000000000001"
	ChannelMusic = "11111111-0000-0000-0000-000000000002"
	VideoGo      = "22222222-0000-0000-0000-000000000001"
	VideoK8s     = "22222222-0000-0000-0000-000000000002"
	VideoLofi    = "22222222-0000-0000-0000-000000000003"
)

func New(t testing.TB) *catalog.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	l := log.New("test")
	l.SetLevel(log.OFF)
	return &catalog.Service{DB: db, Logger: l, DefaultThumbnailURL: DefaultThumbnail}
}

// NewWithFixture returns a service holding two channels and three videos,
// newest first: VideoLofi, VideoK8s, VideoGo.
func NewWithFixture(t testing.TB) *catalog.Service {
	t.Helper()
	s := New(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	channels := []entity.Channel{
		{ID: ChannelTech, Name: "Tech Talks", Slug: "tech-talks", SubscriberCount: 12_800},
		{ID: ChannelMusic, Name: "Chill Beats", Slug: "chill-beats", SubscriberCount: 1},
	}
	videos := []entity.Video{
		{ID: VideoGo, ChannelID: ChannelTech, Title: "Intro to Go", Description: "Learning GOLANG basics",
			ThumbnailURL: "https://example.com/go.jpg", VideoURL: "https://example.com/go.mp4",
			Views: 1_500, Duration: "10:02", Tags: []string{"tech"}, UploadedAt: base},
		{ID: VideoK8s, ChannelID: ChannelTech, Title: "Kubernetes deep dive", Description: "clusters",
			ThumbnailURL: "https://example.com/k8s.jpg", VideoURL: "https://example.com/k8s.mp4",
			Tags: []string{"tech", "education"}, UploadedAt: base.Add(time.Hour)},
		{ID: VideoLofi, ChannelID: ChannelMusic, Title: "Lofi mix", Description: "beats to study to",
			ThumbnailURL: "https://img.youtube.com/vi/jfKfPfyJRdk/hqdefault.jpg", VideoURL: "https://www.youtube.com/embed/jfKfPfyJRdk",
			Tags: []string{"music"}, UploadedAt: base.Add(2 * time.Hour)},
	}
	if err := s.Seed(context.Background(), channels, videos); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}
