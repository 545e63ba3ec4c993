// Package youtube parses YouTube links and looks up video metadata.
package youtube

import (
	"regexp"
	"strings"
)

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// ExtractID returns the 11 character video id of a watch, embed, v, short or
// youtu.be link, or "" when url is not one of those.
func ExtractID(url string) string {
	url = strings.TrimSpace(url)
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

func IsEmbed(url string) bool {
	return strings.Contains(url, "youtube.com/embed/")
}

// PlayerURL adds the player parameters to an embed url.
func PlayerURL(embedURL string, autoplay bool) string {
	a := "0"
	if autoplay {
		a = "1"
	}
	return embedURL + "?autoplay=" + a + "&rel=0"
}
