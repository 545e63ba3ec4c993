package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestExtractID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s":         "dQw4w9WgXcQ",
		"  https://youtu.be/dQw4w9WgXcQ  ":                      "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1":  "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":                 "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/abc_DEF-123":            "abc_DEF-123",
		"https://www.youtube.com/watch?v=short":                 "",
		"https://vimeo.com/123456789":                           "",
		"not a url":                                             "",
		"https://www.youtube.com/watch?feature=share&v=dQw4w9W": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractID(in), in)
	}
}

func TestLinkBuilders(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", ThumbnailURL("dQw4w9WgXcQ"))
	embed := EmbedURL("dQw4w9WgXcQ")
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", embed)
	assert.True(t, IsEmbed(embed))
	assert.False(t, IsEmbed("https://example.com/v.mp4"))
	assert.Equal(t, embed+"?autoplay=1&rel=0", PlayerURL(embed, true))
	assert.Equal(t, embed+"?autoplay=0&rel=0", PlayerURL(embed, false))
}

func TestParseISODuration(t *testing.T) {
	cases := map[string]int64{
		"PT4M13S":  253,
		"PT45S":    45,
		"PT1H2M3S": 3723,
		"PT2H":     7200,
		"P1DT1S":   86401,
		"P0D":      0,
	}
	for in, want := range cases {
		got, err := ParseISODuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "PT", "4M13S", "PT4X"} {
		_, err := ParseISODuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestClientResolveDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/videos") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("id") {
		case "dQw4w9WgXcQ":
			w.Write([]byte(`{"items":[{"id":"dQw4w9WgXcQ","contentDetails":{"duration":"PT3M33S"}}]}`))
		default:
			w.Write([]byte(`{"items":[]}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := NewClient(ctx, "test-key",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	d, err := c.ResolveDuration(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "3:33", d)

	d, err = c.ResolveDuration(ctx, "https://example.com/clip.mp4")
	require.NoError(t, err)
	assert.Empty(t, d)

	_, err = c.ResolveDuration(ctx, "https://youtu.be/AAAAAAAAAAA")
	assert.ErrorContains(t, err, "not found")
}
