package main

import (
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-thdn/internal/config"
)

// addSignalFlags registers the test tone flags.
func addSignalFlags(fs *pflag.FlagSet) {
	fs.Float64P("frequency", "f", config.DefaultFrequency, "fundamental frequency in Hz")
	fs.Float64P("sample-rate", "r", config.DefaultSampleRate, "sample rate in Hz")
	fs.Float64("amplitude", config.DefaultAmplitude, "carrier peak amplitude")
	fs.StringToString("harmonic", nil, "harmonic levels relative to the carrier, e.g. 3=0.01,5=0.001")
	fs.Float64("noise", 0, "peak amplitude of added white noise")
	fs.Int64("seed", config.DefaultSeed, "noise seed")
	fs.IntP("samples", "n", 0, "signal length in samples (0 plans it from --window and --error)")
}

// addPlanFlags registers the window length planning flags.
func addPlanFlags(fs *pflag.FlagSet) {
	fs.StringP("window", "w", config.DefaultWindow, "window (rectangular, bartlett, hanning, hamming, blackman)")
	fs.Float64P("error", "e", config.DefaultError, "allowed main lobe width, relative to the fundamental or in Hz")
	fs.String("error-mode", config.DefaultErrorMode, "error mode (relative, absolute)")
	fs.Float64("carrier", 0, "with --frequency 0, plan for a fundamental one decade below this carrier")
}

// addAnalysisFlags registers the measurement flags.
func addAnalysisFlags(fs *pflag.FlagSet) {
	fs.Float64("hpf", 0, "high-pass limit in Hz (0 disables)")
	fs.Float64("lpf", config.DefaultLowPass, "low-pass limit in Hz (negative disables)")
	fs.String("backend", config.DefaultBackend, "FFT backend (auto, algofft, gonum, godsp)")
	fs.Int("concurrency", 1, "harmonics measured in parallel")
}
