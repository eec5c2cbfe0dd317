// Package config loads thdn settings from defaults, a YAML file, THDN_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-thdn/dsp/core"
	"github.com/cwbudde/algo-thdn/dsp/signal"
	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/window"
	"github.com/cwbudde/algo-thdn/measure/thd"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// THDN_ANALYSIS_WINDOW.
const EnvPrefix = "THDN"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete thdn configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Output    string `mapstructure:"output"`

	Signal   SignalConfig   `mapstructure:"signal"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// SignalConfig describes the signal under test: either a generated tone or
// a WAV file.
type SignalConfig struct {
	// Frequency is the fundamental in Hz. Zero means unknown, in which case
	// window planning falls back to one decade below Carrier.
	Frequency  float64 `mapstructure:"frequency"`
	Carrier    float64 `mapstructure:"carrier"`
	SampleRate float64 `mapstructure:"sample_rate"`
	Amplitude  float64 `mapstructure:"amplitude"`
	// Harmonics maps harmonic order to level relative to the carrier.
	// Keys are strings because YAML and env sources produce them that way.
	Harmonics map[string]float64 `mapstructure:"harmonics"`
	Noise     float64            `mapstructure:"noise"`
	Seed      int64              `mapstructure:"seed"`
	// Samples fixes the analysis length. Zero plans it from the window
	// and error settings.
	Samples int    `mapstructure:"samples"`
	WAV     string `mapstructure:"wav"`

	// HarmonicOrders is Harmonics with parsed keys, set by Validate.
	HarmonicOrders map[int]float64 `mapstructure:"-"`
}

// AnalysisConfig holds analyzer settings.
type AnalysisConfig struct {
	Window      string  `mapstructure:"window"`
	Error       float64 `mapstructure:"error"`
	ErrorMode   string  `mapstructure:"error_mode"`
	HighPass    float64 `mapstructure:"hpf"`
	LowPass     float64 `mapstructure:"lpf"`
	Backend     string  `mapstructure:"backend"`
	Concurrency int     `mapstructure:"concurrency"`

	// Resolved by Validate.
	WindowKind  window.Kind          `mapstructure:"-"`
	Mode        window.ErrorMode     `mapstructure:"-"`
	BackendKind spectrum.BackendKind `mapstructure:"-"`
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file at path into v, decodes the result
// and validates it.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and resolves string settings into their typed
// forms.
func (c *Config) Validate() error {
	var err error

	if _, err = zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format must be console or json: %q", ErrInvalid, c.LogFormat)
	}

	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: output must be table, json or yaml: %q", ErrInvalid, c.Output)
	}

	if err = c.Signal.validate(); err != nil {
		return err
	}

	return c.Analysis.validate()
}

func (s *SignalConfig) validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: signal.sample_rate must be > 0: %g", ErrInvalid, s.SampleRate)
	}
	if s.Frequency < 0 || s.Frequency >= s.SampleRate/2 {
		return fmt.Errorf("%w: signal.frequency must be in [0, %g): %g", ErrInvalid, s.SampleRate/2, s.Frequency)
	}
	if s.Carrier < 0 || s.Carrier >= s.SampleRate/2 {
		return fmt.Errorf("%w: signal.carrier must be in [0, %g): %g", ErrInvalid, s.SampleRate/2, s.Carrier)
	}
	if s.Noise < 0 {
		return fmt.Errorf("%w: signal.noise must be >= 0: %g", ErrInvalid, s.Noise)
	}
	if s.Samples < 0 {
		return fmt.Errorf("%w: signal.samples must be >= 0: %d", ErrInvalid, s.Samples)
	}

	s.HarmonicOrders = make(map[int]float64, len(s.Harmonics))
	for key, level := range s.Harmonics {
		order, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || order < 2 {
			return fmt.Errorf("%w: signal.harmonics order must be an integer >= 2: %q", ErrInvalid, key)
		}
		s.HarmonicOrders[order] = level
	}

	return nil
}

func (a *AnalysisConfig) validate() error {
	var err error

	if a.WindowKind, err = window.ParseKind(a.Window); err != nil {
		return fmt.Errorf("%w: analysis.window: %w", ErrInvalid, err)
	}
	if a.Mode, err = window.ParseErrorMode(a.ErrorMode); err != nil {
		return fmt.Errorf("%w: analysis.error_mode: %w", ErrInvalid, err)
	}
	if a.BackendKind, err = spectrum.ParseBackend(a.Backend); err != nil {
		return fmt.Errorf("%w: analysis.backend: %w", ErrInvalid, err)
	}
	if a.Error <= 0 {
		return fmt.Errorf("%w: analysis.error must be > 0: %g", ErrInvalid, a.Error)
	}
	if a.HighPass < 0 {
		return fmt.Errorf("%w: analysis.hpf must be >= 0: %g", ErrInvalid, a.HighPass)
	}
	if a.Concurrency < 0 {
		return fmt.Errorf("%w: analysis.concurrency must be >= 0: %d", ErrInvalid, a.Concurrency)
	}

	return nil
}

// THD returns the distortion calculator settings.
func (c *Config) THD() thd.Config {
	return thd.Config{
		HighPass:    c.Analysis.HighPass,
		LowPass:     c.Analysis.LowPass,
		Concurrency: c.Analysis.Concurrency,
	}
}

// Generator returns a tone generator for the signal settings.
func (c *Config) Generator() *signal.Generator {
	return signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(c.Signal.SampleRate)},
		signal.WithSeed(c.Signal.Seed),
	)
}

// Tone returns the tone description for n samples.
func (c *Config) Tone(n int) signal.Tone {
	return signal.Tone{
		Frequency: c.Signal.Frequency,
		Amplitude: c.Signal.Amplitude,
		Harmonics: c.Signal.HarmonicOrders,
		Noise:     c.Signal.Noise,
		Samples:   n,
	}
}

// PlanFrequency is the fundamental the window length is planned for: the
// configured frequency, or the lowest detectable fundamental of the carrier
// when the frequency is unknown.
func (c *Config) PlanFrequency() float64 {
	if c.Signal.Frequency > 0 {
		return c.Signal.Frequency
	}
	return window.LowestDetectable(c.Signal.Carrier)
}

// PlanLength returns the configured sample count, or plans one for
// PlanFrequency, window and error.
func (c *Config) PlanLength() (int, error) {
	if c.Signal.Samples > 0 {
		return c.Signal.Samples, nil
	}

	return window.PlanLength(c.PlanFrequency(), c.Signal.SampleRate,
		c.Analysis.WindowKind, c.Analysis.Error, c.Analysis.Mode)
}

// HarmonicList returns the configured harmonic orders in ascending order.
func (c *Config) HarmonicList() []int {
	orders := make([]int, 0, len(c.Signal.HarmonicOrders))
	for o := range c.Signal.HarmonicOrders {
		orders = append(orders, o)
	}
	sort.Ints(orders)
	return orders
}
