package config

import (
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Server configures cmd/server.
type Server struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
}

// Client configures the display clients. Variables carry the SKETCHPAD_ prefix.
type Client struct {
	Server  string `envconfig:"SERVER"`
	Origin  string `envconfig:"ORIGIN" default:"local"`
	LogFile string `envconfig:"LOG_FILE"`
	Sample  bool   `envconfig:"SAMPLE"`
}

func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadClient() (*Client, error) {
	var cfg Client
	if err := envconfig.Process("sketchpad", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OriginPatterns splits AllowedOrigins into websocket origin patterns.
func (s *Server) OriginPatterns() []string {
	var patterns []string
	for _, p := range strings.Split(s.AllowedOrigins, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// Level parses LogLevel, falling back to info.
func (s *Server) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
