// Package catalog is the data-store layer for channels and videos.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"videoshare/internal/entity"
	"videoshare/internal/events"
)

var (
	ErrNotFound           = entity.ErrNotFound
	ErrInvalidUpload      = errors.New("channel_name, title, and video_url are required")
	ErrInvalidChannelName = errors.New("channel_name must contain letters or digits")
)

// DurationResolver looks up the play length of a video URL. Resolvers return
// an empty string for URLs they do not handle.
type DurationResolver interface {
	ResolveDuration(ctx context.Context, videoURL string) (string, error)
}

type Service struct {
	DB                  *gorm.DB
	Logger              echo.Logger
	DefaultThumbnailURL string
	Durations           []DurationResolver
	Events              events.Publisher
}

func (s *Service) ListVideos(ctx context.Context, f entity.VideoFilter) ([]entity.Video, error) {
	q := s.DB.WithContext(ctx).
		Preload("Channel").
		Order("uploaded_at DESC").
		Limit(f.EffectiveLimit())

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if f.ChannelID != "" {
		q = q.Where("channel_id = ?", f.ChannelID)
	}
	if f.ExcludeID != "" {
		q = q.Where("id <> ?", f.ExcludeID)
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		q = q.Where("tags LIKE ?", `%"`+tag+`"%`)
	}

	var videos []entity.Video
	if err := q.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	for i := range videos {
		videos[i].Normalize()
	}
	return videos, nil
}

func (s *Service) GetVideo(ctx context.Context, id string) (*entity.Video, error) {
	var v entity.Video
	err := s.DB.WithContext(ctx).Preload("Channel").Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", id, err)
	}
	v.Normalize()
	return &v, nil
}

func (s *Service) ChannelBySlug(ctx context.Context, slug string) (*entity.Channel, error) {
	var ch entity.Channel
	err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get channel %s: %w", slug, err)
	}
	return &ch, nil
}

// IncrementViews bumps the view counter in a single UPDATE so concurrent
// watchers never lose an increment.
func (s *Service) IncrementViews(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).
		Model(&entity.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment views %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Upload finds or creates the channel named in in and inserts the video under it.
func (s *Service) Upload(ctx context.Context, in entity.UploadInput) (*entity.Video, error) {
	channelName := strings.TrimSpace(in.ChannelName)
	title := strings.TrimSpace(in.Title)
	videoURL := strings.TrimSpace(in.VideoURL)
	if channelName == "" || title == "" || videoURL == "" {
		return nil, ErrInvalidUpload
	}
	slug := entity.Slugify(channelName)
	if slug == "" {
		return nil, ErrInvalidChannelName
	}

	video := entity.Video{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		VideoURL:     videoURL,
		Duration:     strings.TrimSpace(in.Duration),
		Tags:         entity.NormalizeTags(in.Tags),
	}
	if video.ThumbnailURL == "" {
		video.ThumbnailURL = s.DefaultThumbnailURL
	}
	if video.Duration == "" || video.Duration == entity.DefaultDuration {
		video.Duration = s.resolveDuration(ctx, videoURL)
	}

	var ch entity.Channel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("slug = ?", slug).First(&ch).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ch = entity.Channel{Name: channelName, Slug: slug}
			if err := tx.Create(&ch).Error; err != nil {
				return fmt.Errorf("create channel %s: %w", slug, err)
			}
		} else if err != nil {
			return fmt.Errorf("find channel %s: %w", slug, err)
		}

		video.ChannelID = ch.ID
		if err := tx.Create(&video).Error; err != nil {
			return fmt.Errorf("create video: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	video.Channel = &ch

	s.publishUploaded(ctx, video)
	return &video, nil
}

func (s *Service) resolveDuration(ctx context.Context, videoURL string) string {
	for _, r := range s.Durations {
		d, err := r.ResolveDuration(ctx, videoURL)
		if err != nil {
			s.logf("duration lookup failed for %s: %v", videoURL, err)
			continue
		}
		if d != "" {
			return d
		}
	}
	return entity.DefaultDuration
}

func (s *Service) publishUploaded(ctx context.Context, v entity.Video) {
	if s.Events == nil {
		return
	}
	ev := events.VideoUploaded{
		VideoID:     v.ID,
		ChannelID:   v.ChannelID,
		ChannelSlug: v.Channel.Slug,
		Title:       v.Title,
		VideoURL:    v.VideoURL,
		UploadedAt:  v.UploadedAt,
	}
	if err := s.Events.PublishUploaded(ctx, ev); err != nil {
		s.logf("publish upload event for %s: %v", v.ID, err)
	}
}

// Seed inserts channels and videos whose ids are not stored yet.
func (s *Service) Seed(ctx context.Context, channels []entity.Channel, videos []entity.Video) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for i := range channels {
			if channels[i].CreatedAt.IsZero() {
				channels[i].CreatedAt = now
			}
		}
		if len(channels) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&channels).Error; err != nil {
				return fmt.Errorf("seed channels: %w", err)
			}
		}
		rows := make([]entity.Video, len(videos))
		for i, v := range videos {
			v.Channel = nil
			rows[i] = v
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed videos: %w", err)
			}
		}
		return nil
	})
}

func (s *Service) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Warnf(format, args...)
	}
}
