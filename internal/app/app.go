// Package app wires together configuration, the API client, and the
// session controller into a single Deps struct that commands receive at
// runtime.
package app

import (
	"math/rand"
	"time"

	"github.com/stackslip/stackslip/internal/config"
	"github.com/stackslip/stackslip/internal/session"
	"github.com/stackslip/stackslip/internal/stackex"
)

// Deps holds all runtime dependencies injected into command Run functions.
type Deps struct {
	Config  *config.Config
	Client  *stackex.Client
	Session *session.Controller
}

// New builds a Deps from resolved config.
func New(cfg *config.Config) *Deps {
	client := stackex.NewClient(stackex.Options{
		BaseURL: cfg.BaseURL,
		Site:    cfg.Site,
		Filter:  cfg.Filter,
		Key:     cfg.Key,
		Timeout: cfg.Timeout,
		Rate:    cfg.Rate,
		Debug:   cfg.Debug,
	})
	codes := session.NewCodeSource(rand.New(rand.NewSource(time.Now().UnixNano())))
	return &Deps{
		Config:  cfg,
		Client:  client,
		Session: session.New(client, codes),
	}
}
