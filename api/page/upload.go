package page

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"videoshare/internal/entity"
	"videoshare/internal/youtube"
)

const (
	stepLink    = "link"
	stepDetails = "details"
	stepReview  = "review"

	errInvalidLink    = "Please enter a valid YouTube URL"
	errMissingDetails = "Channel name and title are required"
)

// uploadForm is the wizard state, round-tripped through hidden fields.
type uploadForm struct {
	Step            string
	YouTubeURL      string
	YouTubeID       string
	ChannelName     string
	Title           string
	Description     string
	CustomThumbnail string
	Tags            string
	URLError        string
	Error           string
}

func (f uploadForm) EmbedURL() string         { return youtube.EmbedURL(f.YouTubeID) }
func (f uploadForm) DefaultThumbnail() string { return youtube.ThumbnailURL(f.YouTubeID) }

func (f uploadForm) Thumbnail() string {
	if f.CustomThumbnail != "" {
		return f.CustomThumbnail
	}
	return f.DefaultThumbnail()
}

func bindUploadForm(c echo.Context) uploadForm {
	f := uploadForm{
		YouTubeURL:      strings.TrimSpace(c.FormValue("youtube_url")),
		ChannelName:     strings.TrimSpace(c.FormValue("channel_name")),
		Title:           strings.TrimSpace(c.FormValue("title")),
		Description:     strings.TrimSpace(c.FormValue("description")),
		CustomThumbnail: strings.TrimSpace(c.FormValue("thumbnail_url")),
		Tags:            c.FormValue("tags"),
	}
	f.YouTubeID = youtube.ExtractID(f.YouTubeURL)
	return f
}

func (p *Pages) renderUpload(c echo.Context, status int, f uploadForm) error {
	data := p.base(c, "Upload")
	data.HideSidebar = true
	data.Form = &f
	return c.Render(status, "upload", data)
}

func (p *Pages) UploadLink(c echo.Context) error {
	return p.renderUpload(c, http.StatusOK, uploadForm{Step: stepLink})
}

func (p *Pages) SubmitLink(c echo.Context) error {
	f := bindUploadForm(c)
	if f.YouTubeID == "" {
		f.Step = stepLink
		f.URLError = errInvalidLink
		return p.renderUpload(c, http.StatusUnprocessableEntity, f)
	}
	f.Step = stepDetails
	return p.renderUpload(c, http.StatusOK, f)
}

func (p *Pages) SubmitDetails(c echo.Context) error {
	f := bindUploadForm(c)
	if f.YouTubeID == "" {
		f.Step = stepLink
		f.URLError = errInvalidLink
		return p.renderUpload(c, http.StatusUnprocessableEntity, f)
	}
	if f.ChannelName == "" || f.Title == "" {
		f.Step = stepDetails
		f.Error = errMissingDetails
		return p.renderUpload(c, http.StatusUnprocessableEntity, f)
	}
	f.Step = stepReview
	return p.renderUpload(c, http.StatusOK, f)
}

func (p *Pages) Publish(c echo.Context) error {
	f := bindUploadForm(c)
	if f.YouTubeID == "" {
		f.Step = stepLink
		f.URLError = errInvalidLink
		return p.renderUpload(c, http.StatusUnprocessableEntity, f)
	}
	if f.ChannelName == "" || f.Title == "" {
		f.Step = stepDetails
		f.Error = errMissingDetails
		return p.renderUpload(c, http.StatusUnprocessableEntity, f)
	}

	video, err := p.Store.UploadVideo(c.Request().Context(), entity.UploadInput{
		ChannelName:  f.ChannelName,
		Title:        f.Title,
		Description:  f.Description,
		ThumbnailURL: f.Thumbnail(),
		VideoURL:     youtube.EmbedURL(f.YouTubeID),
		Tags:         entity.SplitTags(f.Tags),
	})
	if err != nil {
		c.Logger().Errorf("publish %s: %v", f.YouTubeID, err)
		f.Step = stepReview
		f.Error = err.Error()
		return p.renderUpload(c, http.StatusUnprocessableEntity, f)
	}
	return c.Redirect(http.StatusSeeOther, "/watch/"+video.ID)
}
