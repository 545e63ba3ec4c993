// Package page serves the browser UI on top of the client-side store.
package page

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"videoshare/internal/entity"
	"videoshare/internal/store"
)

var Categories = []string{
	"All", "Music", "Gaming", "Live", "Mixes", "Tech", "AI", "Cooking", "Travel",
	"Fitness", "Art", "News", "Science", "Education", "Comedy", "Film", "Sports",
}

// sidebarCookie keeps each visitor's sidebar choice. Without it the store's
// default applies.
const sidebarCookie = "sidebar"

type Pages struct {
	Store *store.Store
	Now   func() time.Time
}

type pageData struct {
	Title       string
	Query       string
	Sidebar     bool
	HideSidebar bool
	Channels    []entity.Channel

	Categories  []string
	Selected    string
	Videos      []entity.Video
	Error       string
	Video       *entity.Video
	Recommended []entity.Video
	Channel     *entity.Channel
	Form        *uploadForm
}

func (p *Pages) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Register installs the renderer and the page routes on e.
func (p *Pages) Register(e *echo.Echo) error {
	r, err := NewRenderer(p.now)
	if err != nil {
		return err
	}
	e.Renderer = r

	e.GET("/", p.Home)
	e.GET("/watch/:id", p.Watch)
	e.GET("/c/:slug", p.Channel)
	e.GET("/upload", p.UploadLink)
	e.POST("/upload/link", p.SubmitLink)
	e.POST("/upload/details", p.SubmitDetails)
	e.POST("/upload/publish", p.Publish)
	e.POST("/ui/sidebar", p.ToggleSidebar)
	return nil
}

// base fills the layout fields. The search box and sidebar come from the
// request, never from the shared store.
func (p *Pages) base(c echo.Context, title string) pageData {
	return pageData{
		Title:    title,
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Sidebar:  p.sidebarOpen(c),
		Channels: p.Store.Channels(),
	}
}

func (p *Pages) sidebarOpen(c echo.Context) bool {
	if ck, err := c.Cookie(sidebarCookie); err == nil {
		switch ck.Value {
		case "open":
			return true
		case "closed":
			return false
		}
	}
	return p.Store.State().SidebarOpen
}

func selectedCategory(raw, q string) string {
	if q != "" {
		return "All"
	}
	for _, c := range Categories {
		if strings.EqualFold(c, raw) {
			return c
		}
	}
	return "All"
}

func (p *Pages) Home(c echo.Context) error {
	ctx := c.Request().Context()
	q := strings.TrimSpace(c.QueryParam("q"))
	selected := selectedCategory(c.QueryParam("category"), q)

	p.Store.SetSearchQuery(q)
	var (
		videos []entity.Video
		err    error
	)
	if selected != "All" {
		videos, err = p.Store.LoadVideos(ctx, "", strings.ToLower(selected))
	} else {
		videos, err = p.Store.LoadVideos(ctx, q, "")
	}

	data := p.base(c, "")
	data.Categories = Categories
	data.Selected = selected
	data.Videos = videos
	if err != nil {
		c.Logger().Warnf("load home feed: %v", err)
		data.Error = err.Error()
		if data.Error == "" {
			data.Error = "An error occurred"
		}
	}
	return c.Render(http.StatusOK, "home", data)
}

func (p *Pages) notFound(c echo.Context, title, msg string) error {
	data := p.base(c, title)
	data.Error = msg
	return c.Render(http.StatusNotFound, "notfound", data)
}

func (p *Pages) Watch(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	video := p.Store.LoadVideoByID(ctx, id)
	if video == nil {
		return p.notFound(c, "Video not found", "The video you're looking for doesn't exist.")
	}
	p.Store.IncrementViews(ctx, id)
	if cached, ok := p.Store.VideoByID(id); ok {
		video = &cached
	}

	data := p.base(c, video.Title)
	data.HideSidebar = true
	data.Video = video
	data.Recommended = p.Store.LoadRecommendedVideos(ctx, id)
	return c.Render(http.StatusOK, "watch", data)
}

func (p *Pages) Channel(c echo.Context) error {
	ctx := c.Request().Context()
	channel := p.Store.LoadChannelBySlug(ctx, c.Param("slug"))
	if channel == nil {
		return p.notFound(c, "Channel not found", "This channel doesn't exist or may have been removed.")
	}

	data := p.base(c, channel.Name)
	data.Channel = channel
	data.Videos = p.Store.LoadChannelVideos(ctx, channel.ID)
	return c.Render(http.StatusOK, "channel", data)
}

// ToggleSidebar flips the visitor's sidebar and sends them back to the page
// they came from.
func (p *Pages) ToggleSidebar(c echo.Context) error {
	state := "closed"
	if !p.sidebarOpen(c) {
		state = "open"
	}
	c.SetCookie(&http.Cookie{
		Name:     sidebarCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, localReferer(c.Request()))
}

// localReferer returns the path of a same-host Referer, or "/".
func localReferer(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return "/"
	}
	if u.Host == "" && u.Scheme != "" {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.RequestURI()
}
