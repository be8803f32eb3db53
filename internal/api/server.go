// Package api serves scenes, rotation frames, text normalization and
// learner progress over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/san-kum/eduverse/internal/config"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/progress"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/validate"
)

// maxFrameSamples caps the replay length of a frames request.
const maxFrameSamples = 100000

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Debug          bool
		Config         *config.Config
		Assembler      *scene.Assembler
		Progress       *progress.Service
		Logger         *log.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		validate *validate.Validator
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Assembler == nil {
		opts.Assembler = scene.NewAssembler(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &server{
		opts:     opts,
		app:      echo.New(),
		validate: validate.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Logger = s.opts.Logger
	s.app.Debug = s.opts.Debug
	s.app.Validator = s.validate

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.validate)

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerModelAPI(v1, s.opts.Config, s.opts.Assembler, s.opts.Logger)
	registerSpeechAPI(v1)
	if s.opts.Progress != nil {
		registerUserAPI(v1, s.opts.Progress, progress.NewTracker(s.opts.Progress, s.opts.Logger))
	}
}

func (s *server) Start() error {
	s.opts.Logger.Infof("api: listening on %s", s.opts.Address)
	err := s.app.Start(s.opts.Address)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EduVerse API!")
}
