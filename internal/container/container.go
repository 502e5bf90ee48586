package container

import (
	"context"
	"fmt"
	"html/template"

	"carviz/adapters/source"
	"carviz/app"
	"carviz/internal"
	"carviz/internal/chart"
	"carviz/internal/config"
	"carviz/internal/dataset"
	"carviz/internal/session"
	"carviz/ports"
	"carviz/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Presentation
	Theme chart.Theme
	About template.HTML

	// Data
	Source  ports.SourcePort
	Dataset *dataset.Dataset
	LoadErr error

	// Views
	Service  *app.ViewService
	Sessions *session.Store
}

// New creates a new dependency injection container. Configuration problems
// (theme or about file) are returned; a failed dataset load is not, it is
// kept in LoadErr and shown by the views.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Source: source.Open(cfg.Data.Source, logger),
	}

	if err := c.initPresentation(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initPresentation() error {
	theme, err := chart.LoadTheme(c.Config.UI.ThemeFile)
	if err != nil {
		return err
	}
	c.Theme = theme

	about, err := ui.LoadAbout(c.Config.UI.AboutFile)
	if err != nil {
		return err
	}
	c.About = about
	return nil
}

// LoadDataset runs the one-shot load under the configured timeout and builds
// the shared view service from whatever it produced.
func (c *Container) LoadDataset(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.Config.Data.FetchTimeout)
	defer cancel()

	c.Dataset, c.LoadErr = dataset.NewLoader(c.Logger).Load(ctx, c.Source)
	if c.LoadErr != nil {
		c.Logger.Error("dataset unavailable, serving failure page: %v", c.LoadErr)
	}
	c.Service = app.NewViewService(c.Dataset, c.LoadErr, c.Source.Name(), c.Theme)
	c.Sessions = session.NewStore(c.Service, session.Options{
		TTL:         c.Config.Session.TTL,
		MaxSessions: c.Config.Session.MaxSessions,
		SelectRate:  c.Config.Server.SelectRate,
		SelectBurst: c.Config.Server.SelectBurst,
	}, c.Logger)
}

// NewServer builds the viewer server over the loaded dataset.
func (c *Container) NewServer() (*ui.Server, error) {
	return ui.NewServer(ui.Options{
		Service:  c.Service,
		Sessions: c.Sessions,
		About:    c.About,
		Logger:   c.Logger,
	})
}

// NewAdminApp builds the profiler and health server.
func (c *Container) NewAdminApp() *ui.AdminApp {
	return ui.NewAdminApp(c.Service, c.Sessions)
}
