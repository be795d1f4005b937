package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Seed sources.
const (
	SeedSourceCSV = "csv"
	SeedSourceDB  = "db"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[atm]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000" validate:"min=1,max=65535"`
}

// Addr returns host:port for listening.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// URL returns the base URL the server is reachable at.
func (s *Server) URL() string {
	return fmt.Sprintf("%s://%s", s.Scheme, s.Addr())
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100" validate:"min=1"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Receipt struct {
	File string `envconfig:"FILE" default:"atm_receipt.txt" validate:"required"`
}

type Seed struct {
	Source  string `envconfig:"SOURCE" default:"csv" validate:"oneof=csv db"`
	CSVPath string `envconfig:"CSV_PATH"`
}

type Archive struct {
	Enabled bool `envconfig:"ENABLED" default:"false"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Receipt   *Receipt   `envconfig:"RECEIPT"`
	Seed      *Seed      `envconfig:"SEED"`
	Archive   *Archive   `envconfig:"ARCHIVE"`
}

// NeedsDB reports whether the configuration requires a database connection.
func (a *App) NeedsDB() bool {
	return a.Seed.Source == SeedSourceDB || a.Archive.Enabled
}
