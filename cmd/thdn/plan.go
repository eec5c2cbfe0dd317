package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/window"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the window length needed to resolve a fundamental",
		Long: `Print the shortest window length whose main lobe is no wider than the
allowed error, together with the resulting bin size and a suggested FFT
friendly length.

Examples:
  thdn plan --frequency 1000 --window blackman --error 0.01
  thdn plan --frequency 50 --window hann --error 0.5 --error-mode absolute
  thdn plan --frequency 0 --carrier 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newPlanReport(a)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, r)
		},
	}

	fs := cmd.Flags()
	fs.Float64P("frequency", "f", 1000, "fundamental frequency in Hz")
	fs.Float64P("sample-rate", "r", 48000, "sample rate in Hz")
	addPlanFlags(fs)

	return cmd
}

type planReport struct {
	Window        string  `json:"window" yaml:"window"`
	Frequency     float64 `json:"frequency_hz" yaml:"frequency_hz"`
	Carrier       float64 `json:"carrier_hz,omitempty" yaml:"carrier_hz,omitempty"`
	SampleRate    float64 `json:"sample_rate" yaml:"sample_rate"`
	ErrorMode     string  `json:"error_mode" yaml:"error_mode"`
	Error         float64 `json:"error" yaml:"error"`
	Samples       int     `json:"samples" yaml:"samples"`
	Duration      float64 `json:"duration_s" yaml:"duration_s"`
	BinSize       float64 `json:"bin_size_hz" yaml:"bin_size_hz"`
	MainLobeWidth float64 `json:"main_lobe_width_hz" yaml:"main_lobe_width_hz"`
	FastSize      int     `json:"fast_size" yaml:"fast_size"`
}

func newPlanReport(a *app) (planReport, error) {
	sig := a.cfg.Signal
	an := a.cfg.Analysis

	f0 := a.cfg.PlanFrequency()
	n, err := window.PlanLength(f0, sig.SampleRate, an.WindowKind, an.Error, an.Mode)
	if err != nil {
		return planReport{}, fmt.Errorf("plan: %w", err)
	}
	if n < 1 {
		return planReport{}, fmt.Errorf("plan: %w: no window fits, raise --error", window.ErrInvalidTolerance)
	}

	return planReport{
		Window:        an.WindowKind.String(),
		Frequency:     f0,
		Carrier:       carrierOf(sig.Frequency, sig.Carrier),
		SampleRate:    sig.SampleRate,
		ErrorMode:     an.Mode.String(),
		Error:         an.Error,
		Samples:       n,
		Duration:      float64(n) / sig.SampleRate,
		BinSize:       sig.SampleRate / float64(n),
		MainLobeWidth: an.WindowKind.MainLobeWidth(sig.SampleRate, n),
		FastSize:      spectrum.NextFastRealSize(n),
	}, nil
}

// carrierOf reports the carrier only when it drove the plan.
func carrierOf(frequency, carrier float64) float64 {
	if frequency > 0 {
		return 0
	}
	return carrier
}

func (r planReport) rows() [][]string {
	fundamental := fmt.Sprintf("%g Hz", r.Frequency)
	if r.Carrier > 0 {
		fundamental += fmt.Sprintf(" (lowest detectable for %g Hz carrier)", r.Carrier)
	}

	return [][]string{
		{"Window", r.Window},
		{"Fundamental", fundamental},
		{"Sample rate", fmt.Sprintf("%g Hz", r.SampleRate)},
		{"Error", fmt.Sprintf("%g (%s)", r.Error, r.ErrorMode)},
		{"Samples", fmt.Sprintf("%d", r.Samples)},
		{"Duration", fmt.Sprintf("%.4f s", r.Duration)},
		{"Bin size", fmt.Sprintf("%.4f Hz", r.BinSize)},
		{"Main lobe width", fmt.Sprintf("%.4f Hz", r.MainLobeWidth)},
		{"Fast FFT size", fmt.Sprintf("%d", r.FastSize)},
	}
}
