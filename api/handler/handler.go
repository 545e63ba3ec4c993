package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"videoshare/internal/catalog"
	"videoshare/internal/entity"
)

type Catalog interface {
	ListVideos(ctx context.Context, f entity.VideoFilter) ([]entity.Video, error)
	GetVideo(ctx context.Context, id string) (*entity.Video, error)
	ChannelBySlug(ctx context.Context, slug string) (*entity.Channel, error)
	IncrementViews(ctx context.Context, id string) error
	Upload(ctx context.Context, in entity.UploadInput) (*entity.Video, error)
}

type Handler struct {
	Catalog Catalog
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// Register mounts the JSON API on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/videos", h.ListVideos)
	g.GET("/videos/:id", h.GetVideo)
	g.POST("/videos/:id/views", h.IncrementViews)
	g.GET("/channels/:slug", h.GetChannel)
	g.POST("/upload", h.Upload)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListVideos(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		limit = entity.DefaultListLimit
	}
	f := entity.VideoFilter{
		Search:    c.QueryParam("q"),
		ChannelID: c.QueryParam("channel_id"),
		ExcludeID: c.QueryParam("exclude_id"),
		Tag:       c.QueryParam("tag"),
		Limit:     limit,
	}

	videos, err := h.Catalog.ListVideos(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("failed to fetch videos: %v", err)
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, videos)
}

func (h *Handler) GetVideo(c echo.Context) error {
	id := c.Param("id")
	video, err := h.Catalog.GetVideo(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "Video not found")
		}
		c.Logger().Errorf("failed to fetch video %s: %v", id, err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch video")
	}
	return c.JSON(http.StatusOK, video)
}

func (h *Handler) GetChannel(c echo.Context) error {
	slug := c.Param("slug")
	channel, err := h.Catalog.ChannelBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "Channel not found")
		}
		c.Logger().Errorf("failed to fetch channel %s: %v", slug, err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch channel")
	}
	return c.JSON(http.StatusOK, channel)
}

func (h *Handler) IncrementViews(c echo.Context) error {
	id := c.Param("id")
	if err := h.Catalog.IncrementViews(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "Video not found")
		}
		c.Logger().Errorf("failed to increment views for %s: %v", id, err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to increment views")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Upload(c echo.Context) error {
	var in entity.UploadInput
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	video, err := h.Catalog.Upload(c.Request().Context(), in)
	if err != nil {
		if !errors.Is(err, catalog.ErrInvalidUpload) && !errors.Is(err, catalog.ErrInvalidChannelName) {
			c.Logger().Errorf("upload failed: %v", err)
		}
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	c.Logger().Infof("uploaded video id=%s channel=%s", video.ID, video.Channel.Slug)
	return c.JSON(http.StatusOK, video)
}
