// Package client talks to the videoshare JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"videoshare/internal/entity"
)

// ErrNotFound is returned when a single-row read hits a 404.
var ErrNotFound = entity.ErrNotFound

// APIError carries the message of a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListVideos(ctx context.Context, f entity.VideoFilter) ([]entity.Video, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.ChannelID != "" {
		q.Set("channel_id", f.ChannelID)
	}
	if f.ExcludeID != "" {
		q.Set("exclude_id", f.ExcludeID)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	q.Set("limit", strconv.Itoa(f.EffectiveLimit()))

	var rows []entity.Video
	if err := c.do(ctx, http.MethodGet, "/api/videos?"+q.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		normalize(&rows[i])
	}
	return rows, nil
}

func (c *Client) GetVideo(ctx context.Context, id string) (*entity.Video, error) {
	var row entity.Video
	if err := c.do(ctx, http.MethodGet, "/api/videos/"+url.PathEscape(id), nil, &row); err != nil {
		return nil, err
	}
	normalize(&row)
	return &row, nil
}

func (c *Client) ChannelBySlug(ctx context.Context, slug string) (*entity.Channel, error) {
	var ch entity.Channel
	if err := c.do(ctx, http.MethodGet, "/api/channels/"+url.PathEscape(slug), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) IncrementViews(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/videos/"+url.PathEscape(id)+"/views", nil, nil)
}

func (c *Client) Upload(ctx context.Context, in entity.UploadInput) (*entity.Video, error) {
	if in.Duration == "" {
		in.Duration = entity.DefaultDuration
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	var row entity.Video
	if err := c.do(ctx, http.MethodPost, "/api/upload", in, &row); err != nil {
		return nil, err
	}
	normalize(&row)
	return &row, nil
}

// normalize applies the defaults of a joined row; a row without a channel
// gets an empty one so callers can always dereference it.
func normalize(v *entity.Video) {
	v.Normalize()
	if v.Channel == nil {
		v.Channel = &entity.Channel{}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
