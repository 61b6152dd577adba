package service

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultMaxBodyBytes = 10 << 20 // 10MiB

// Config describes server wiring and runtime behaviour.
type Config struct {
	Logger       *log.Logger
	Clock        func() time.Time
	MaxBodyBytes int64
	AllowCSS     bool
}

// DefaultConfig populates configuration from environment variables.
func DefaultConfig() Config {
	cfg := Config{
		Logger:       log.Default(),
		Clock:        time.Now,
		MaxBodyBytes: defaultMaxBodyBytes,
		AllowCSS:     true,
	}
	if raw := strings.TrimSpace(os.Getenv("HTMLSCAN_MAX_BODY_BYTES")); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}
	if raw := strings.TrimSpace(os.Getenv("HTMLSCAN_ALLOW_CSS")); raw != "" {
		cfg.AllowCSS = raw != "0" && !strings.EqualFold(raw, "false")
	}
	return cfg
}

// Server exposes the HTTP handlers implementing the scan service.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	handler http.Handler
	logger  *log.Logger
	clock   func() time.Time
}

// New wires a new scan server with the provided configuration.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		logger: cfg.Logger,
		clock:  cfg.Clock,
	}
	s.registerRoutes()
	s.handler = withLogging(s.logger, s.mux)
	return s
}

// Handler exposes the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler { return s }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/scan", s.handleScan)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
}
