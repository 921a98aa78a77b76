package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
	"github.com/trezcool/darasa/web"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		StudentSvc *student.Service
		WeekSvc    *week.Service
		UserSvc    *user.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(corsMiddleware)
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug
	s.app.HideBanner = true

	s.app.GET("/", home)
	s.app.StaticFS("/static", web.StaticFS())

	v1 := s.app.Group("/v1")
	registerStudentAPI(v1, s.opts.StudentSvc)
	registerWeeklyAPI(v1, s.opts.WeekSvc)
	registerAuthAPI(v1, s.opts.UserSvc, s.opts.Conf)
}

// signalShutdown is handed to the error handler so an unrecoverable error
// can take the server down gracefully.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.app.Start(s.opts.Conf.Server.Addr()); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Fatal(err)
		}
	}()

	<-s.shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		s.app.Logger.Error(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa API!")
}

// Envelope helpers; every response body is {success, data|message}.

func dataResponse(data interface{}) echo.Map {
	return echo.Map{"success": true, "data": data}
}

func messageResponse(msg string) echo.Map {
	return echo.Map{"success": true, "message": msg}
}
