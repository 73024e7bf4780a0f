// Package config reads the action inputs from the environment once, at
// process entry, into an explicit Config.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Environment variables read by Load.
const (
	EnvTargetURL      = "INPUT_TARGET_URL"
	EnvDelay          = "INPUT_DELAY"
	EnvMaxAttempts    = "INPUT_MAX_ATTEMPTS"
	EnvTimeout        = "INPUT_TIMEOUT"
	EnvExpectedStatus = "INPUT_EXPECTED_STATUS"
	EnvReportPath     = "INPUT_REPORT_PATH"
	EnvOutputPath     = "GITHUB_OUTPUT"
	EnvSummaryPath    = "GITHUB_STEP_SUMMARY"
	EnvRunnerDebug    = "RUNNER_DEBUG"
)

const (
	defaultDelaySeconds   = 5
	defaultMaxAttempts    = 10
	defaultTimeoutSeconds = 10
)

var keys = []string{
	EnvTargetURL, EnvDelay, EnvMaxAttempts, EnvTimeout, EnvExpectedStatus,
	EnvReportPath, EnvOutputPath, EnvSummaryPath, EnvRunnerDebug,
}

// Config holds the action configuration.
type Config struct {
	TargetURL        string
	Delay            time.Duration
	MaxAttempts      int
	Timeout          time.Duration
	ExpectedStatuses []int

	OutputPath  string
	SummaryPath string
	ReportPath  string

	Debug bool
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range keys {
		// AutomaticEnv only resolves keys viper already knows about.
		_ = v.BindEnv(key)
	}
	return LoadFrom(v)
}

// LoadFrom reads the configuration from v, applying defaults for unset
// inputs. Every invalid input is reported in the returned error.
func LoadFrom(v *viper.Viper) (*Config, error) {
	if v == nil {
		return Load()
	}
	v.SetDefault(EnvDelay, defaultDelaySeconds)
	v.SetDefault(EnvMaxAttempts, defaultMaxAttempts)
	v.SetDefault(EnvTimeout, defaultTimeoutSeconds)
	v.SetDefault(EnvExpectedStatus, fmt.Sprint(http.StatusOK))

	r := reader{v: v}
	cfg := &Config{
		TargetURL:        r.str(EnvTargetURL),
		Delay:            r.seconds(EnvDelay),
		MaxAttempts:      r.integer(EnvMaxAttempts),
		Timeout:          r.seconds(EnvTimeout),
		ExpectedStatuses: r.statuses(EnvExpectedStatus),
		OutputPath:       r.str(EnvOutputPath),
		SummaryPath:      r.str(EnvSummaryPath),
		ReportPath:       r.str(EnvReportPath),
		Debug:            r.str(EnvRunnerDebug) == "1",
	}

	if err := errors.Join(append(r.errs, cfg.Validate())...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges of the numeric inputs. The URL is not checked
// here: a blank or malformed URL is a probe outcome, reported as
// url-reachable=false, not a configuration error.
func (c *Config) Validate() error {
	var errs []error
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %s", EnvDelay, c.Delay))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxAttempts, c.MaxAttempts))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %s", EnvTimeout, c.Timeout))
	}
	if len(c.ExpectedStatuses) == 0 {
		errs = append(errs, fmt.Errorf("%s must list at least one status", EnvExpectedStatus))
	}
	return errors.Join(errs...)
}

type reader struct {
	v    *viper.Viper
	errs []error
}

func (r *reader) str(key string) string {
	return strings.TrimSpace(r.v.GetString(key))
}

func (r *reader) integer(key string) int {
	raw := r.str(key)
	value, err := cast.ToIntE(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not an integer", key, raw))
	}
	return value
}

func (r *reader) seconds(key string) time.Duration {
	return time.Duration(r.integer(key)) * time.Second
}

func (r *reader) statuses(key string) []int {
	var statuses []int
	for _, part := range strings.Split(r.str(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		status, err := cast.ToIntE(part)
		if err != nil || status < 100 || status > 599 {
			r.errs = append(r.errs, fmt.Errorf("%s: %q is not an HTTP status", key, part))
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses
}
