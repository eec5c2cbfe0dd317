package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-thdn/diag"
	"github.com/cwbudde/algo-thdn/internal/config"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string

	cfg    *config.Config
	logger *zap.Logger
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"log-format":  "log_format",
	"output":      "output",
	"frequency":   "signal.frequency",
	"carrier":     "signal.carrier",
	"sample-rate": "signal.sample_rate",
	"amplitude":   "signal.amplitude",
	"harmonic":    "signal.harmonics",
	"noise":       "signal.noise",
	"seed":        "signal.seed",
	"samples":     "signal.samples",
	"wav":         "signal.wav",
	"window":      "analysis.window",
	"error":       "analysis.error",
	"error-mode":  "analysis.error_mode",
	"hpf":         "analysis.hpf",
	"lpf":         "analysis.lpf",
	"backend":     "analysis.backend",
	"concurrency": "analysis.concurrency",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "thdn",
		Short: "THD and THD+N measurement",
		Long: `thdn measures total harmonic distortion (THD) and total harmonic
distortion plus noise (THD+N) from the windowed spectrum of a sampled signal.

The signal is either a generated test tone (carrier, harmonics and white
noise) or channel 0 of a PCM WAV file. Settings come from flags, THDN_*
environment variables (e.g. THDN_ANALYSIS_WINDOW) and an optional YAML file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (YAML)")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", config.DefaultLogFormat, "log format (console, json)")
	pf.StringP("output", "o", config.DefaultOutput, "output format (table, json, yaml)")

	root.AddCommand(
		newAnalyzeCmd(a),
		newGenerateCmd(a),
		newPlanCmd(a),
		newWindowCmd(a),
	)

	return root
}

// initialize binds flags, loads the configuration and builds the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger.Named("thdn")

	if path := a.v.ConfigFileUsed(); path != "" {
		a.logger.Debug("using config file", zap.String("path", path))
	}

	return nil
}

// observer forwards analyzer diagnostics to the logger.
func (a *app) observer() diag.Observer {
	return diag.NewZapObserver(a.logger)
}

// bindFlags binds each known flag to its configuration key so that flags
// take precedence over environment, file and defaults.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})

	return lastErr
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
