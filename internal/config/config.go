package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the API process.
// All values must come from env (or env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Speech    SpeechConfig
	RateLimit RateLimitConfig
	Intake    IntakeConfig
}

type AppConfig struct {
	Env  string
	Port int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode is kept explicit for managed-Postgres posture.
	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type RedisConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// OperatorKey is the shared secret operators exchange for a token pair.
	OperatorKey string
}

// SpeechConfig covers the language-generation and voice-synthesis providers.
// Missing provider credentials are not a config error: the reply generator
// and the synthesis chain treat a credential-less adapter as a failed
// provider and fall back.
type SpeechConfig struct {
	GeminiAPIKey    string
	GeminiModel     string
	GenerateTimeout time.Duration

	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	// FallbackTTSLang is the language code for the secondary synthesizer.
	FallbackTTSLang string

	SynthesizeTimeout time.Duration
}

type RateLimitConfig struct {
	// Window is the trailing admission window per caller.
	Window time.Duration
	// MaxRequests is the number of admissions allowed inside Window.
	MaxRequests int
	// Backend selects the limiter implementation: "redis" or "memory".
	Backend string
}

type IntakeConfig struct {
	// SlotCatalogPath and KnowledgePackPath are optional yaml overrides;
	// compiled-in defaults are used when empty.
	SlotCatalogPath   string
	KnowledgePackPath string

	// InPersonHours are the local wall-clock hours whose slots are held at
	// the display suite rather than on video.
	InPersonHours []int

	// QualifyEntryMax and QualifyMidMax are the budget band thresholds.
	QualifyEntryMax int64
	QualifyMidMax   int64
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	// Optional vars may be absent, but a malformed value is still a config
	// error, same as the required ones.
	optInt := func(key string) int {
		n, err := optionalInt(key)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		return n
	}
	optDuration := func(key string) time.Duration {
		d, err := optionalDuration(key)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		return d
	}

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	{
		n, err := mustInt("DB_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.DB.Port = n
	}
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	// Redis vars are optional at parse time; Validate() requires them when
	// the redis limiter backend is selected.
	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	c.Redis.Port = optInt("REDIS_PORT")

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	// Duration env vars are optional; defaults applied in Validate() based on env.
	c.Auth.AccessTokenTTL = optDuration("JWT_ACCESS_TTL")
	c.Auth.RefreshTokenTTL = optDuration("JWT_REFRESH_TTL")
	c.Auth.OperatorKey = os.Getenv("OPERATOR_KEY")

	c.Speech.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.Speech.GeminiModel = strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	c.Speech.GenerateTimeout = optDuration("GEMINI_TIMEOUT")
	c.Speech.ElevenLabsAPIKey = os.Getenv("ELEVENLABS_API_KEY")
	c.Speech.ElevenLabsVoiceID = strings.TrimSpace(os.Getenv("ELEVENLABS_VOICE_ID"))
	c.Speech.FallbackTTSLang = strings.TrimSpace(os.Getenv("TTS_FALLBACK_LANG"))
	c.Speech.SynthesizeTimeout = optDuration("TTS_TIMEOUT")

	c.RateLimit.Window = optDuration("RATE_LIMIT_WINDOW")
	c.RateLimit.MaxRequests = optInt("RATE_LIMIT_MAX")
	c.RateLimit.Backend = strings.TrimSpace(os.Getenv("RATE_LIMIT_BACKEND"))

	c.Intake.SlotCatalogPath = strings.TrimSpace(os.Getenv("SLOT_CATALOG_PATH"))
	c.Intake.KnowledgePackPath = strings.TrimSpace(os.Getenv("KNOWLEDGE_PACK_PATH"))

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if strings.TrimSpace(c.DB.SSLMode) == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			// Local-friendly default; production must be explicit.
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}

	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "redis"
	}
	if c.RateLimit.Backend != "redis" && c.RateLimit.Backend != "memory" {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BACKEND must be redis or memory, got %q", c.RateLimit.Backend))
	}
	if c.RateLimit.Backend == "redis" {
		if c.Redis.Host == "" {
			errs = append(errs, errors.New("REDIS_HOST is required"))
		}
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = 60 * time.Second
	}
	if c.RateLimit.MaxRequests <= 0 {
		c.RateLimit.MaxRequests = 5
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
		if c.Auth.OperatorKey == "" {
			errs = append(errs, errors.New("OPERATOR_KEY is required in production"))
		}
	}

	if c.Auth.AccessTokenTTL <= 0 {
		// Default: short-lived access tokens.
		c.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		// Default: longer-lived refresh tokens.
		c.Auth.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must be greater than JWT_ACCESS_TTL"))
	}

	if c.Speech.GeminiModel == "" {
		c.Speech.GeminiModel = "gemini-1.5-flash"
	}
	if c.Speech.GenerateTimeout <= 0 {
		c.Speech.GenerateTimeout = 10 * time.Second
	}
	if c.Speech.FallbackTTSLang == "" {
		c.Speech.FallbackTTSLang = "en"
	}
	if c.Speech.SynthesizeTimeout <= 0 {
		c.Speech.SynthesizeTimeout = 15 * time.Second
	}

	if len(c.Intake.InPersonHours) == 0 {
		// Display-suite hours in the sales-office zone.
		c.Intake.InPersonHours = []int{10, 12}
	}
	if c.Intake.QualifyEntryMax <= 0 {
		c.Intake.QualifyEntryMax = 650_000
	}
	if c.Intake.QualifyMidMax <= 0 {
		c.Intake.QualifyMidMax = 1_100_000
	}
	if c.Intake.QualifyMidMax <= c.Intake.QualifyEntryMax {
		errs = append(errs, errors.New("qualification mid threshold must be greater than entry threshold"))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s or 5m, got %q", key, v)
	}
	return d, nil
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
