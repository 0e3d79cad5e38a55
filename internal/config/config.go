package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string   `mapstructure:"env"`          // current application environment (local, dev, production etc)
	LogLevel    string   `mapstructure:"log_level"`    // overrides the environment's default log level
	QuizzesPath string   `mapstructure:"quizzes_path"` // path to the YAML or JSON quiz data file
	Quizzes     Quizzes  `mapstructure:"quizzes"`      // quiz data loading options
	Telegram    Telegram `mapstructure:"telegram"`     // Telegram bot section
	Feedback    Feedback `mapstructure:"feedback"`     // answer feedback timing
	HTTP        HTTP     `mapstructure:"http"`         // web app section
	Sessions    Sessions `mapstructure:"sessions"`     // chat session housekeeping
}

// Quizzes controls how the quiz data file is checked.
type Quizzes struct {
	Strict bool `mapstructure:"strict"` // fail startup on data defects instead of logging them
}

// Telegram contains bot-related configuration parameters.
type Telegram struct {
	APIToken    string `mapstructure:"-"`            // bot token loaded from environment
	Enabled     bool   `mapstructure:"enabled"`      // run the bot at all
	Debug       bool   `mapstructure:"debug"`        // log raw Bot API traffic
	PollTimeout int    `mapstructure:"poll_timeout"` // long polling timeout in seconds
}

// Token returns the bot token if it is configured.
func (t Telegram) Token() (string, error) {
	if t.APIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return t.APIToken, nil
}

// Feedback holds how long answer feedback stays on screen.
type Feedback struct {
	CorrectDelay   time.Duration `mapstructure:"correct_delay"`
	IncorrectDelay time.Duration `mapstructure:"incorrect_delay"`
}

// HTTP configures the web app.
type HTTP struct {
	Enabled        bool     `mapstructure:"enabled"`
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Sessions configures removal of abandoned chat sessions.
type Sessions struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec, e.g. "@every 30m"
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from config.yaml in the given directories,
// a .env file in the working directory and environment variables.
func LoadFrom(paths ...string) (*Config, error) {
	// Populate the environment from .env if it exists.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("quizzes_path", "assets/data/quizzes.yaml")
	v.SetDefault("quizzes.strict", true)
	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("feedback.correct_delay", "1500ms")
	v.SetDefault("feedback.incorrect_delay", "2000ms")
	v.SetDefault("http.enabled", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("sessions.idle_ttl", "24h")
	v.SetDefault("sessions.sweep_schedule", "@every 30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would break the application at runtime.
// The bot token is checked by whoever needs it, see Telegram.Token.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.QuizzesPath) == "" {
		problems = append(problems, "quizzes_path is empty")
	}
	if c.Feedback.CorrectDelay <= 0 {
		problems = append(problems, "feedback.correct_delay must be positive")
	}
	if c.Feedback.IncorrectDelay <= 0 {
		problems = append(problems, "feedback.incorrect_delay must be positive")
	}
	if c.Telegram.PollTimeout < 0 {
		problems = append(problems, "telegram.poll_timeout must not be negative")
	}
	if c.HTTP.Enabled && strings.TrimSpace(c.HTTP.Addr) == "" {
		problems = append(problems, "http.addr is empty")
	}
	if c.Sessions.IdleTTL <= 0 {
		problems = append(problems, "sessions.idle_ttl must be positive")
	}
	if strings.TrimSpace(c.Sessions.SweepSchedule) == "" {
		problems = append(problems, "sessions.sweep_schedule is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
