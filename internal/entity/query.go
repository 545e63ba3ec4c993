package entity

import "errors"

// ErrNotFound is returned by single-row reads that match nothing.
var ErrNotFound = errors.New("not found")

const DefaultListLimit = 50

// VideoFilter narrows a video listing. Zero values mean "no constraint".
type VideoFilter struct {
	Search    string
	ChannelID string
	ExcludeID string
	Tag       string
	Limit     int
}

func (f VideoFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// UploadInput is the body of an upload request.
type UploadInput struct {
	ChannelName  string   `json:"channel_name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url"`
	VideoURL     string   `json:"video_url"`
	Duration     string   `json:"duration"`
	Tags         []string `json:"tags"`
}
