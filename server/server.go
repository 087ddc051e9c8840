// Package server exposes the media library over HTTP: a liveness check, a paginated listing
// and a byte-range streaming endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/syirilrakhulh/oddbit-player/key"
	"github.com/syirilrakhulh/oddbit-player/log"
	"github.com/syirilrakhulh/oddbit-player/media"
	"golang.org/x/net/netutil"
)

// shutdownTimeout bounds how long in-flight streams may keep the process alive after a stop request.
const shutdownTimeout = 5 * time.Second

// Config describes the listening socket and HTTP surface.
type Config struct {
	Host              string
	Port              int
	CorsOrigins       []string
	MaxConnections    int
	Metrics           bool
	ReadHeaderTimeout time.Duration
}

// ConfigFromViper reads the server.* keys.
func ConfigFromViper() Config {
	return Config{
		Host:              viper.GetString(key.ServerHost),
		Port:              viper.GetInt(key.ServerPort),
		CorsOrigins:       viper.GetStringSlice(key.ServerCorsOrigins),
		MaxConnections:    viper.GetInt(key.ServerMaxConnections),
		Metrics:           viper.GetBool(key.ServerMetrics),
		ReadHeaderTimeout: time.Duration(viper.GetInt(key.ServerReadHeaderTimeout)) * time.Second,
	}
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server is the HTTP front of a media streamer.
type Server struct {
	cfg     Config
	engine  *gin.Engine
	metrics *Metrics
}

// New builds the routes for streamer.
func New(streamer *media.Streamer, cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{cfg: cfg, engine: gin.New()}
	if cfg.Metrics {
		s.metrics = NewMetrics()
	}

	s.engine.Use(
		gin.Recovery(),
		requestID(),
		accessLog(s.metrics),
		cors.New(corsConfig(cfg.CorsOrigins)),
	)

	h := &handlers{streamer: streamer, metrics: s.metrics}
	s.engine.GET("/", h.root)

	api := s.engine.Group("/api/video")
	api.GET("", h.list)
	api.GET("/:id", h.stream)
	api.HEAD("/:id", h.head)

	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	return s
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Range", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Range", "Accept-Ranges", HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || lo.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Handler returns the router, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}

	// Request contexts derive from base so that stopping also ends running streams.
	base, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()

	// No write timeout: a stream lasts as long as the client keeps reading.
	srv := &http.Server{
		Handler:           s.engine,
		BaseContext:       func(net.Listener) context.Context { return base },
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	log.Infof("listening on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	stopStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
