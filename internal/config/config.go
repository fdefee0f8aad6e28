package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"StockScreener/internal/model"
)

const DateLayout = "2006-01-02"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

var now = time.Now

// Config holds all application configuration.
type Config struct {
	Symbols   []string `yaml:"symbols" validate:"required,min=1,dive,required"`
	StartDate string   `yaml:"start_date" validate:"required"`
	EndDate   string   `yaml:"end_date"` // empty means yesterday

	Indicators struct {
		SMAPeriod     int     `yaml:"sma_period" default:"20" validate:"gt=0"`
		RSIPeriod     int     `yaml:"rsi_period" default:"14" validate:"gt=0"`
		BBPeriod      int     `yaml:"bb_period" default:"20" validate:"gt=0"`
		BBMultiplier  float64 `yaml:"bb_multiplier" default:"2" validate:"gt=0"`
		RSIOverbought float64 `yaml:"rsi_overbought" default:"70" validate:"gt=0,lte=100,gtfield=RSIOversold"`
		RSIOversold   float64 `yaml:"rsi_oversold" default:"30" validate:"gte=0,lt=100"`
	} `yaml:"indicators"`

	Report struct {
		RecentDays int    `yaml:"recent_days" default:"5" validate:"gt=0"`
		ChartDir   string `yaml:"chart_dir"`
	} `yaml:"report"`

	DataSource struct {
		Provider   string        `yaml:"provider" default:"yahoo" validate:"oneof=yahoo polygon sqlite mock"`
		APIKey     string        `yaml:"api_key" validate:"required_if=Provider polygon"`
		SQLitePath string        `yaml:"sqlite_path" validate:"required_if=Provider sqlite"`
		MockPrice  float64       `yaml:"mock_price" default:"100" validate:"gte=0"`
		Timeout    time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
		Retries    int           `yaml:"retries" default:"2" validate:"gte=0"`
		Workers    int           `yaml:"workers" default:"4" validate:"gt=0"`
	} `yaml:"data_source"`

	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`

	Metrics struct {
		PushgatewayURL string `yaml:"pushgateway_url" validate:"omitempty,url"`
		Job            string `yaml:"job" default:"stock_screener"`
	} `yaml:"metrics"`

	Proxy string `yaml:"proxy"`

	// Start and End are the parsed [Start, End) fetch range, set by Validate.
	Start time.Time `yaml:"-"`
	End   time.Time `yaml:"-"`
}

// Load reads config from a YAML file, applies environment variable overrides,
// fills defaults and validates. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	cfg.Symbols = normalizeSymbols(cfg.Symbols)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variable overrides
func (c *Config) applyEnv() {
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("START_DATE"); v != "" {
		c.StartDate = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		c.EndDate = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.DataSource.SQLitePath = v
	}
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DataSource.Workers = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PUSHGATEWAY_URL"); v != "" {
		c.Metrics.PushgatewayURL = v
	}
}

func normalizeSymbols(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Validate checks field constraints and resolves the date range.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	start, err := time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date %q must be YYYY-MM-DD", ErrInvalid, c.StartDate)
	}
	var end time.Time
	if c.EndDate == "" {
		y, m, d := now().AddDate(0, 0, -1).Date()
		end = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else if end, err = time.Parse(DateLayout, c.EndDate); err != nil {
		return fmt.Errorf("%w: end_date %q must be YYYY-MM-DD", ErrInvalid, c.EndDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start_date %s is after end_date %s",
			ErrInvalid, start.Format(DateLayout), end.Format(DateLayout))
	}

	c.Start, c.End = start, end
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// Params returns the indicator parameters.
func (c *Config) Params() model.IndicatorParams {
	return model.IndicatorParams{
		SMAPeriod:    c.Indicators.SMAPeriod,
		RSIPeriod:    c.Indicators.RSIPeriod,
		BBPeriod:     c.Indicators.BBPeriod,
		BBMultiplier: c.Indicators.BBMultiplier,
	}
}

func (c *Config) Thresholds() model.Thresholds {
	return model.Thresholds{
		Overbought: c.Indicators.RSIOverbought,
		Oversold:   c.Indicators.RSIOversold,
	}
}
