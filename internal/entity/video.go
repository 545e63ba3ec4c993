package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultDuration = "0:00"

type Video struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChannelID    string    `gorm:"type:varchar(36);index;not null" json:"channel_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `gorm:"not null" json:"video_url"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	Duration     string    `gorm:"type:varchar(16)" json:"duration"`
	UploadedAt   time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
	Tags         []string  `gorm:"serializer:json;type:text" json:"tags"`

	Channel *Channel `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE" json:"channels,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Normalize fills the defaults a row may come back without.
func (v *Video) Normalize() {
	if v.Duration == "" {
		v.Duration = DefaultDuration
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
}

// HasTag reports whether the video carries tag, ignoring case.
func (v Video) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags lowercases and trims tags, dropping empty ones.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitTags parses a comma separated tag field.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
