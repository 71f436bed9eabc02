package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/promiedos/dashboard-pro/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	CORSAllowedOrigins []string
	LogLevel           logging.Level

	DefaultLeague    string
	LeagueCodes      []string
	FixtureDaysAhead int

	CacheEnabled   bool
	StandingsTTL   time.Duration
	FixturesTTL    time.Duration
	TeamDetailsTTL time.Duration

	RefreshEnabled           bool
	RefreshLiveInterval      time.Duration
	RefreshStandingsInterval time.Duration
	RefreshFixturesInterval  time.Duration
	RefreshWorkers           int

	FootballDataEnabled             bool
	FootballDataBaseURL             string
	FootballDataToken               string
	FootballDataTimeout             time.Duration
	FootballDataMaxRetries          int
	FootballDataCircuitEnabled      bool
	FootballDataCircuitFailureCount int
	FootballDataCircuitOpenTimeout  time.Duration
	FootballDataCircuitHalfOpenMax  int

	SportsDBEnabled             bool
	SportsDBBaseURL             string
	SportsDBAPIKey              string
	SportsDBTimeout             time.Duration
	SportsDBMaxRetries          int
	SportsDBCircuitEnabled      bool
	SportsDBCircuitFailureCount int
	SportsDBCircuitOpenTimeout  time.Duration
	SportsDBCircuitHalfOpenMax  int

	InitialBankroll     float64
	KellyFractions      []float64
	MaxParlaySize       int
	MinValueThreshold   float64
	ConfidenceThreshold float64

	DemoAlertsEnabled bool

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "dashboard-pro-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DefaultLeague:      strings.ToUpper(strings.TrimSpace(getEnv("APP_DEFAULT_LEAGUE", "PL"))),
		LeagueCodes:        splitCSV(strings.ToUpper(getEnv("APP_LEAGUES", "PL,PD,BL1,SA,FL1,CL"))),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if len(cfg.LeagueCodes) == 0 {
		return Config{}, fmt.Errorf("APP_LEAGUES cannot be empty")
	}

	cfg.FixtureDaysAhead, err = getEnvAsInt("APP_FIXTURE_DAYS_AHEAD", 14)
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_FIXTURE_DAYS_AHEAD: %w", err)
	}
	if cfg.FixtureDaysAhead < 1 {
		return Config{}, fmt.Errorf("APP_FIXTURE_DAYS_AHEAD must be >= 1")
	}

	cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.StandingsTTL, err = getEnvAsDuration("CACHE_STANDINGS_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.FixturesTTL, err = getEnvAsDuration("CACHE_FIXTURES_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.TeamDetailsTTL, err = getEnvAsDuration("CACHE_TEAM_DETAILS_TTL", time.Hour)
	if err != nil {
		return Config{}, err
	}

	refreshEnabled, err := strconv.ParseBool(getEnv("REFRESH_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_ENABLED: %w", err)
	}
	cfg.RefreshEnabled = refreshEnabled
	cfg.RefreshLiveInterval, err = getEnvAsDuration("REFRESH_LIVE_INTERVAL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshStandingsInterval, err = getEnvAsDuration("REFRESH_STANDINGS_INTERVAL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshFixturesInterval, err = getEnvAsDuration("REFRESH_FIXTURES_INTERVAL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshWorkers, err = getEnvAsInt("REFRESH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_WORKERS: %w", err)
	}
	if cfg.RefreshWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_WORKERS must be >= 1")
	}

	if err := loadFootballData(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadSportsDB(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadBetting(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	demoAlerts, err := strconv.ParseBool(getEnv("ALERTS_DEMO_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALERTS_DEMO_ENABLED: %w", err)
	}
	cfg.DemoAlertsEnabled = demoAlerts

	return cfg, nil
}

func loadFootballData(cfg *Config) error {
	enabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse FOOTBALL_DATA_ENABLED: %w", err)
	}
	cfg.FootballDataEnabled = enabled
	cfg.FootballDataBaseURL = strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4"))
	cfg.FootballDataToken = strings.TrimSpace(getEnv("FOOTBALL_DATA_TOKEN", ""))
	if enabled && cfg.FootballDataToken == "" {
		return fmt.Errorf("FOOTBALL_DATA_TOKEN is required when FOOTBALL_DATA_ENABLED=true")
	}

	cfg.FootballDataTimeout, err = getEnvAsDuration("FOOTBALL_DATA_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	cfg.FootballDataMaxRetries, err = getEnvAsInt("FOOTBALL_DATA_MAX_RETRIES", 1)
	if err != nil {
		return fmt.Errorf("parse FOOTBALL_DATA_MAX_RETRIES: %w", err)
	}
	if cfg.FootballDataMaxRetries < 0 {
		return fmt.Errorf("FOOTBALL_DATA_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_ENABLED: %w", err)
	}
	cfg.FootballDataCircuitEnabled = circuitEnabled
	cfg.FootballDataCircuitFailureCount, err = getEnvAsInt("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.FootballDataCircuitFailureCount < 1 {
		return fmt.Errorf("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cfg.FootballDataCircuitOpenTimeout, err = getEnvAsDuration("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	cfg.FootballDataCircuitHalfOpenMax, err = getEnvAsInt("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.FootballDataCircuitHalfOpenMax < 1 {
		return fmt.Errorf("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func loadSportsDB(cfg *Config) error {
	enabled, err := strconv.ParseBool(getEnv("SPORTSDB_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse SPORTSDB_ENABLED: %w", err)
	}
	cfg.SportsDBEnabled = enabled
	cfg.SportsDBBaseURL = strings.TrimSpace(getEnv("SPORTSDB_BASE_URL", "https://www.thesportsdb.com/api/v1/json"))
	cfg.SportsDBAPIKey = strings.TrimSpace(getEnv("SPORTSDB_API_KEY", "3"))

	cfg.SportsDBTimeout, err = getEnvAsDuration("SPORTSDB_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	cfg.SportsDBMaxRetries, err = getEnvAsInt("SPORTSDB_MAX_RETRIES", 1)
	if err != nil {
		return fmt.Errorf("parse SPORTSDB_MAX_RETRIES: %w", err)
	}
	if cfg.SportsDBMaxRetries < 0 {
		return fmt.Errorf("SPORTSDB_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("SPORTSDB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse SPORTSDB_CIRCUIT_ENABLED: %w", err)
	}
	cfg.SportsDBCircuitEnabled = circuitEnabled
	cfg.SportsDBCircuitFailureCount, err = getEnvAsInt("SPORTSDB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return fmt.Errorf("parse SPORTSDB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.SportsDBCircuitFailureCount < 1 {
		return fmt.Errorf("SPORTSDB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cfg.SportsDBCircuitOpenTimeout, err = getEnvAsDuration("SPORTSDB_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	cfg.SportsDBCircuitHalfOpenMax, err = getEnvAsInt("SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return fmt.Errorf("parse SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.SportsDBCircuitHalfOpenMax < 1 {
		return fmt.Errorf("SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func loadBetting(cfg *Config) error {
	bankroll, err := getEnvAsFloat("BETTING_INITIAL_BANKROLL", 1000)
	if err != nil {
		return fmt.Errorf("parse BETTING_INITIAL_BANKROLL: %w", err)
	}
	if bankroll <= 0 {
		return fmt.Errorf("BETTING_INITIAL_BANKROLL must be > 0")
	}
	cfg.InitialBankroll = bankroll

	fractions, err := parseFloatList(getEnv("BETTING_KELLY_FRACTIONS", "1,0.5,0.25"))
	if err != nil {
		return fmt.Errorf("parse BETTING_KELLY_FRACTIONS: %w", err)
	}
	for _, f := range fractions {
		if f <= 0 || f > 1 {
			return fmt.Errorf("BETTING_KELLY_FRACTIONS values must be in (0, 1]")
		}
	}
	cfg.KellyFractions = fractions

	cfg.MaxParlaySize, err = getEnvAsInt("BETTING_MAX_PARLAY_SIZE", 6)
	if err != nil {
		return fmt.Errorf("parse BETTING_MAX_PARLAY_SIZE: %w", err)
	}
	if cfg.MaxParlaySize < 2 {
		return fmt.Errorf("BETTING_MAX_PARLAY_SIZE must be >= 2")
	}

	threshold, err := getEnvAsFloat("BETTING_MIN_VALUE_THRESHOLD", 0.05)
	if err != nil {
		return fmt.Errorf("parse BETTING_MIN_VALUE_THRESHOLD: %w", err)
	}
	if threshold < 0 || threshold >= 1 {
		return fmt.Errorf("BETTING_MIN_VALUE_THRESHOLD must be in [0, 1)")
	}
	cfg.MinValueThreshold = threshold

	confidence, err := getEnvAsFloat("BETTING_CONFIDENCE_THRESHOLD", 0.7)
	if err != nil {
		return fmt.Errorf("parse BETTING_CONFIDENCE_THRESHOLD: %w", err)
	}
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("BETTING_CONFIDENCE_THRESHOLD must be in [0, 1]")
	}
	cfg.ConfidenceThreshold = confidence
	return nil
}

func loadObservability(cfg *Config) error {
	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	captureBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	cfg.UptraceCaptureRequestBody = captureBody
	cfg.UptraceRequestBodyMaxBytes, err = getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if cfg.UptraceRequestBodyMaxBytes <= 0 {
		return fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if pyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return err
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseFloatList(v string) ([]float64, error) {
	parts := splitCSV(v)
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("list cannot be empty")
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
