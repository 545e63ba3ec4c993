package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"videoshare/internal/format"
)

// Client resolves video metadata through the YouTube Data API.
type Client struct {
	service *yt.Service
}

func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// ResolveDuration returns the formatted length of the YouTube video behind
// videoURL. Non-YouTube URLs yield "".
func (c *Client) ResolveDuration(ctx context.Context, videoURL string) (string, error) {
	id := ExtractID(videoURL)
	if id == "" {
		return "", nil
	}
	resp, err := c.service.Videos.List([]string{"contentDetails"}).Id(id).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("videos.list %s: %w", id, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil {
		return "", fmt.Errorf("video %s not found", id)
	}
	secs, err := ParseISODuration(resp.Items[0].ContentDetails.Duration)
	if err != nil {
		return "", err
	}
	return format.Duration(secs), nil
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts the API's ISO 8601 durations (PT4M13S) to seconds.
func ParseISODuration(s string) (int64, error) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}
	var total int64
	for i, unit := range []int64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, err
		}
		total += n * unit
	}
	return total, nil
}
