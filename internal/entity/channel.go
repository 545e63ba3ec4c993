package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Channel struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Slug            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	BannerURL       string    `json:"banner_url,omitempty"`
	Description     string    `json:"description,omitempty"`
	SubscriberCount int64     `gorm:"not null;default:0" json:"subscriber_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Channel) TableName() string {
	return "channels"
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses every run of non [a-z0-9] characters
// into a single dash and trims dashes from both ends.
func Slugify(name string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
