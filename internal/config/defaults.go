package config

import "github.com/spf13/viper"

// Default values shared by the CLI flag definitions.
const (
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultOutput     = "table"
	DefaultFrequency  = 1000.0
	DefaultSampleRate = 48000.0
	DefaultAmplitude  = 1.0
	DefaultSeed       = 1
	DefaultWindow     = "blackman"
	DefaultError      = 0.01
	DefaultErrorMode  = "relative"
	DefaultLowPass    = 100e3
	DefaultBackend    = "auto"
)

// setDefaults registers default values for every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("output", DefaultOutput)

	v.SetDefault("signal.frequency", DefaultFrequency)
	v.SetDefault("signal.carrier", 0.0)
	v.SetDefault("signal.sample_rate", DefaultSampleRate)
	v.SetDefault("signal.amplitude", DefaultAmplitude)
	v.SetDefault("signal.noise", 0.0)
	v.SetDefault("signal.seed", DefaultSeed)
	v.SetDefault("signal.samples", 0)
	v.SetDefault("signal.wav", "")

	v.SetDefault("analysis.window", DefaultWindow)
	v.SetDefault("analysis.error", DefaultError)
	v.SetDefault("analysis.error_mode", DefaultErrorMode)
	v.SetDefault("analysis.hpf", 0.0)
	v.SetDefault("analysis.lpf", DefaultLowPass)
	v.SetDefault("analysis.backend", DefaultBackend)
	v.SetDefault("analysis.concurrency", 1)
}
