// Package cli implements the hangctl commands on top of a session.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/client/config"
	"github.com/dmitrijs2005/letshang/internal/client/hangclient"
	"github.com/dmitrijs2005/letshang/internal/client/session"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/models"
)

// Client is what the commands need from hangclient.Client.
type Client interface {
	session.Backend
	Ping(ctx context.Context) error
	GetHang(ctx context.Context, hangID string) (*models.HangView, error)
	ShareHang(ctx context.Context, hangID string) (*api.ShareResponse, error)
	GetStats(ctx context.Context) (*api.StatsResponse, error)
	PresignAvatarUpload(ctx context.Context, contentType string) (*api.PresignAvatarUploadResponse, error)
	Close() error
}

type App struct {
	config  *config.Config
	client  Client
	session *session.Session
	logger  logging.Logger
	out     io.Writer
}

func NewApp(c *config.Config, l logging.Logger, out io.Writer) (*App, error) {
	hc, err := hangclient.New(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		return nil, err
	}
	return newApp(c, hc, l, out), nil
}

func newApp(c *config.Config, cl Client, l logging.Logger, out io.Writer) *App {
	return &App{
		config:  c,
		client:  cl,
		session: session.New(cl, l),
		logger:  l,
		out:     out,
	}
}

func (a *App) Close() error {
	return a.client.Close()
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
