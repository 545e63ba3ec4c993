package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"videoshare/internal/catalog"
	"videoshare/internal/config"
	"videoshare/internal/database"
	"videoshare/internal/events"
	"videoshare/internal/media"
	"videoshare/internal/youtube"
)

func newLogger(prefix string) *log.Logger {
	l := log.New(prefix)
	l.SetLevel(log.INFO)
	return l
}

// newCatalog opens the database and wires the optional integrations named in cfg.
func newCatalog(ctx context.Context, cfg config.Config, logger echo.Logger) (*catalog.Service, error) {
	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	svc := &catalog.Service{
		DB:                  db,
		Logger:              logger,
		DefaultThumbnailURL: cfg.DefaultThumbnailURL,
		Events:              events.Nop{},
	}

	if cfg.YouTubeAPIKey != "" {
		yt, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return nil, err
		}
		svc.Durations = append(svc.Durations, yt)
	}
	if cfg.ProbeMedia {
		svc.Durations = append(svc.Durations, media.NewProber())
	}
	if cfg.AMQPURL != "" {
		pub, err := events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			logger.Warnf("upload events disabled: %v", err)
		} else {
			svc.Events = pub
		}
	}
	return svc, nil
}
