package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App     *App
		Token   *Token
		DB      *DB
		HTTP    *HTTP
		Redis   *Redis
		Backend *Backend
		Broker  *Broker
		Console *Console
		GRPC    *GRPC
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	// Backend is the campus-ride REST API the console drives.
	Backend struct {
		Host     string
		BasePath string
		Scheme   string
		Timeout  string
	}

	Broker struct {
		URL      string
		Exchange string
	}

	// GRPC serves the health service. Address is where campusctl dials it.
	GRPC struct {
		Port    string
		Address string
		Retries string
	}

	Console struct {
		RowsPerPage    string
		RiderPageLimit string
		GateTTL        string
	}
)

// New loads the server configuration.
func New() (*Container, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg.Token.Secret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}
	// The commit gate must outlive the backend call it guards.
	if gate, call := cfg.Console.GateTTLValue(), cfg.Backend.TimeoutValue(); gate <= call {
		return nil, fmt.Errorf("CONSOLE_GATE_TTL (%s) must be longer than BACKEND_TIMEOUT (%s)", gate, call)
	}
	return cfg, nil
}

// Load reads the environment without requiring server-only settings.
func Load() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	app := &App{
		Name: getEnv("APP_NAME", "campusride-console"),
		Env:  getEnv("APP_ENV", "development"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: getEnv("TOKEN_DURATION", "12h"),
	}

	db := &DB{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Port:           getEnv("HTTP_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            app.Env,
	}

	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	backend := &Backend{
		Host:     getEnv("BACKEND_HOST", "localhost:5000"),
		BasePath: getEnv("BACKEND_BASE_PATH", "/api/v1"),
		Scheme:   getEnv("BACKEND_SCHEME", "http"),
		Timeout:  getEnv("BACKEND_TIMEOUT", "15s"),
	}

	broker := &Broker{
		URL:      os.Getenv("BROKER_URL"),
		Exchange: getEnv("BROKER_EXCHANGE", "campusride.activity"),
	}

	console := &Console{
		RowsPerPage:    getEnv("CONSOLE_ROWS_PER_PAGE", "5"),
		RiderPageLimit: getEnv("CONSOLE_RIDER_PAGE_LIMIT", "10"),
		GateTTL:        getEnv("CONSOLE_GATE_TTL", "30s"),
	}

	grpc := &GRPC{
		Port:    getEnv("GRPC_PORT", "50051"),
		Address: getEnv("GRPC_ADDRESS", "localhost:50051"),
		Retries: getEnv("GRPC_RETRIES", "3"),
	}

	return &Container{
		App:     app,
		Token:   token,
		DB:      db,
		HTTP:    http,
		Redis:   redis,
		Backend: backend,
		Broker:  broker,
		Console: console,
		GRPC:    grpc,
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parsePositive(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (t *Token) DurationValue() time.Duration {
	return parseDuration(t.Duration, 12*time.Hour)
}

func (b *Backend) TimeoutValue() time.Duration {
	return parseDuration(b.Timeout, 15*time.Second)
}

// Enabled reports whether activity events should be published.
func (b *Broker) Enabled() bool {
	return b.URL != ""
}

func (c *Console) RowsPerPageInt() int {
	return parsePositive(c.RowsPerPage, 5)
}

func (c *Console) RiderPageLimitInt() int {
	return parsePositive(c.RiderPageLimit, 10)
}

func (c *Console) GateTTLValue() time.Duration {
	return parseDuration(c.GateTTL, 30*time.Second)
}

func (g *GRPC) PortInt() int {
	return parsePositive(g.Port, 50051)
}

func (g *GRPC) RetriesInt() int {
	return parsePositive(g.Retries, 3)
}

func (h *HTTP) Origins() []string {
	var out []string
	for _, o := range strings.Split(h.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (d *DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}
