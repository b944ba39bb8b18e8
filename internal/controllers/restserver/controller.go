package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/wxastro/internal/log"
	"github.com/chrissnell/wxastro/pkg/config"
	"github.com/chrissnell/wxastro/pkg/site"
)

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	site         site.Site
	serverConfig config.ServerData
	Server       http.Server
	logger       *zap.SugaredLogger
	handlers     *Handlers

	// now is the clock used when a request omits its time; tests pin it.
	now func() time.Time
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, logger *zap.SugaredLogger) (*Controller, error) {
	s, err := configProvider.GetSite()
	if err != nil {
		return nil, fmt.Errorf("error loading site configuration: %w", err)
	}
	sc, err := configProvider.GetServerConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading server configuration: %w", err)
	}

	if sc.ListenAddr == "" {
		logger.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		sc.ListenAddr = "0.0.0.0"
	}

	ctrl := newController(*s, *sc, logger)
	ctrl.ctx = ctx
	ctrl.wg = wg
	return ctrl, nil
}

func newController(s site.Site, sc config.ServerData, logger *zap.SugaredLogger) *Controller {
	ctrl := &Controller{
		site:         s,
		serverConfig: sc,
		logger:       logger,
		now:          time.Now,
	}
	ctrl.handlers = NewHandlers(ctrl)
	ctrl.Server.Addr = sc.Addr()
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second
	return ctrl
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infow("starting REST server", "addr", c.Server.Addr, "site", c.site.String())
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.Cert != "" && c.serverConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("REST server shutdown error: %v", err)
		}
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/derived", c.handlers.GetDerived).Methods(http.MethodGet)
	api.HandleFunc("/solar", c.handlers.GetSolar).Methods(http.MethodGet)
	api.HandleFunc("/riseset", c.handlers.GetRiseSet).Methods(http.MethodGet)
	api.HandleFunc("/moon", c.handlers.GetMoon).Methods(http.MethodGet)

	router.HandleFunc("/healthz", c.handlers.Healthz).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(c.handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(c.handlers.MethodNotAllowed)

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{c.logger}),
	)(handlers.CompressHandler(router))
}

// recoveryLogger routes panics caught by the recovery handler into zap.
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.logger.Errorw("panic while serving request", "error", fmt.Sprint(v...))
}
