package setup

import (
	"time"

	"github.com/shortlist-dev/shortlister/internal/config"
	"github.com/shortlist-dev/shortlister/internal/email"
	"github.com/shortlist-dev/shortlister/internal/handler"
	"github.com/shortlist-dev/shortlister/internal/jwt"
	"github.com/shortlist-dev/shortlister/internal/middleware"
	"github.com/shortlist-dev/shortlister/internal/scoring"
	"github.com/shortlist-dev/shortlister/internal/service"
	"github.com/shortlist-dev/shortlister/internal/storage/pg"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.Service
	AuthMiddleware *middleware.Auth
}

// SetupDependencies wires storage, services, handlers and middleware.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	sender := email.New(&cfg.Private.Smtp)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	scoringClient := scoring.New(cfg.Public.Scoring.WebhookURL, time.Duration(cfg.Public.Scoring.TimeoutSeconds)*time.Second)

	auth := service.NewAuth(storage, sender, jwtService, cfg)
	jd := service.NewJd(storage, scoringClient)
	ai := service.NewAIResult(storage)

	h := handler.New(auth, jd, ai, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
	}, nil
}
