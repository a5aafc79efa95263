package cli

import (
	"log/slog"

	"github.com/dharmasatrya/aerohub/internal/catalog"
	"github.com/dharmasatrya/aerohub/internal/config"
	"github.com/dharmasatrya/aerohub/internal/notify"
	"github.com/dharmasatrya/aerohub/internal/query"
	"github.com/dharmasatrya/aerohub/internal/ratelimit"
	"github.com/dharmasatrya/aerohub/internal/submission"
)

// Session wires the catalog client to both controllers for one CLI invocation.
type Session struct {
	Config *config.Config
	Logger *slog.Logger
	Client *catalog.Client
	Feed   *notify.Feed
	Query  *query.Controller
	Submit *submission.Controller
}

func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	limiter := ratelimit.NewEndpointLimiter(cfg.API.RateLimit.Limits())
	client := catalog.NewClient(catalog.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Limiter: limiter,
		Logger:  logger,
	})
	feed := notify.NewFeed(logger)

	qc, err := query.New(query.Config{
		Lister:   client,
		PageSize: cfg.UI.PageSize,
		Notifier: feed,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	sc := submission.New(submission.Config{
		Creator:     client,
		Refresher:   qc,
		Notifier:    feed,
		Logger:      logger,
		MinDisplay:  cfg.UI.MinSubmitDisplay,
		SuccessHold: cfg.UI.SuccessHold,
	})

	return &Session{
		Config: cfg,
		Logger: logger,
		Client: client,
		Feed:   feed,
		Query:  qc,
		Submit: sc,
	}, nil
}
