// Package media probes direct media URLs with ffprobe.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"videoshare/internal/format"
	"videoshare/internal/youtube"
)

var mediaExts = map[string]bool{
	".mp4": true, ".m4v": true, ".mov": true, ".webm": true,
	".mkv": true, ".m3u8": true, ".ogg": true, ".ogv": true,
}

// MaxProbeTime bounds a single ffprobe run when the caller sets no earlier deadline.
const MaxProbeTime = 20 * time.Second

// Prober resolves durations of direct media files and HLS playlists.
type Prober struct {
	// Probe runs ffprobe against a URL for at most timeout and returns its JSON report.
	Probe func(url string, timeout time.Duration) (string, error)
}

func NewProber() *Prober {
	return &Prober{Probe: func(u string, timeout time.Duration) (string, error) {
		return ffmpeg.ProbeWithTimeout(u, timeout, ffmpeg.KwArgs{})
	}}
}

// probeTimeout is MaxProbeTime, shortened to the time left before ctx's deadline.
func probeTimeout(ctx context.Context) time.Duration {
	timeout := MaxProbeTime
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return timeout
}

// Probeable reports whether videoURL looks like a file ffprobe can read.
func Probeable(videoURL string) bool {
	if youtube.ExtractID(videoURL) != "" {
		return false
	}
	u, err := url.Parse(videoURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return mediaExts[strings.ToLower(path.Ext(u.Path))]
}

func (p *Prober) ResolveDuration(ctx context.Context, videoURL string) (string, error) {
	if !Probeable(videoURL) {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	timeout := probeTimeout(ctx)
	if timeout <= 0 {
		return "", context.DeadlineExceeded
	}

	probeJSON, err := p.Probe(videoURL, timeout)
	if err != nil {
		return "", fmt.Errorf("ffprobe error: %v", err)
	}
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &probe); err != nil {
		return "", err
	}
	secs, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil || secs <= 0 {
		return "", nil
	}
	return format.Duration(int64(math.Round(secs))), nil
}
