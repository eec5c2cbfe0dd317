package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/vector"
	"github.com/cwbudde/algo-thdn/internal/config"
	"github.com/cwbudde/algo-thdn/internal/wavfile"
	"github.com/cwbudde/algo-thdn/measure/thd"
	timestats "github.com/cwbudde/algo-thdn/stats/time"
)

// clipLevel is the magnitude at which an input sample counts as clipped.
const clipLevel = 0.999

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Measure THD and THD+N of a test tone or WAV file",
		Long: `Measure THD, THD+N referenced to the fundamental (F) and THD+N referenced
to the total RMS (R).

Without --wav a test tone is generated from the signal flags. Its length is
planned from --window and --error unless --samples is given.

Examples:
  thdn analyze --frequency 1000 --harmonic 3=0.01
  thdn analyze --wav capture.wav --samples 65536 --window hann -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAnalyze(cmd)
		},
	}

	fs := cmd.Flags()
	addSignalFlags(fs)
	addPlanFlags(fs)
	addAnalysisFlags(fs)
	fs.String("wav", "", "analyze channel 0 of this WAV file instead of a generated tone")

	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command) error {
	samples, sampleRate, err := a.loadSignal()
	if err != nil {
		return err
	}

	obs := a.observer()
	tc := a.cfg.THD()
	tc.Observer = obs

	res, err := thd.AnalyzeSignal(samples, sampleRate, a.cfg.Analysis.WindowKind, tc,
		spectrum.WithBackendKind(a.cfg.Analysis.BackendKind))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	level := timestats.Calculate(samples)
	clipped := timestats.Clipped(samples, clipLevel)
	if clipped > 0 {
		a.logger.Warn("input is clipped", zap.Int("samples", clipped))
	}

	if res.Harmonic.Partial {
		a.logger.Warn("harmonic search stopped early",
			zap.Int("orders", len(res.Harmonic.Amplitudes)))
	}

	return render(cmd.OutOrStdout(), a.cfg.Output, newAnalysisReport(res, level, clipped))
}

// loadSignal returns the configured WAV file or renders the test tone.
func (a *app) loadSignal() ([]float64, float64, error) {
	if path := a.cfg.Signal.WAV; path != "" {
		clip, err := wavfile.Read(path)
		if err != nil {
			return nil, 0, fmt.Errorf("read %s: %w", path, err)
		}

		samples := clip.Samples
		if n := a.cfg.Signal.Samples; n > 0 && n < len(samples) {
			samples = samples[:n]
		}

		a.logger.Info("loaded wav",
			zap.String("path", path),
			zap.Float64("sample_rate", clip.SampleRate),
			zap.Int("bit_depth", clip.BitDepth),
			zap.Int("channels", clip.Channels),
			zap.Int("samples", len(samples)))

		return samples, clip.SampleRate, nil
	}

	if a.cfg.Signal.Frequency == 0 {
		return nil, 0, fmt.Errorf("%w: a test tone needs --frequency > 0", config.ErrInvalid)
	}

	n, err := a.cfg.PlanLength()
	if err != nil {
		return nil, 0, fmt.Errorf("plan length: %w", err)
	}

	samples, err := a.cfg.Generator().Tone(a.cfg.Tone(n))
	if err != nil {
		return nil, 0, fmt.Errorf("generate tone: %w", err)
	}

	a.logger.Debug("generated tone",
		zap.Float64("frequency", a.cfg.Signal.Frequency),
		zap.Ints("harmonics", a.cfg.HarmonicList()),
		zap.Int("samples", n))

	return samples, a.cfg.Signal.SampleRate, nil
}

// analysisReport is the rendered form of a thd.Result.
type analysisReport struct {
	Window        string          `json:"window" yaml:"window"`
	SampleRate    float64         `json:"sample_rate" yaml:"sample_rate"`
	Samples       int             `json:"samples" yaml:"samples"`
	FFTLength     int             `json:"fft_length" yaml:"fft_length"`
	BinSize       float64         `json:"bin_size_hz" yaml:"bin_size_hz"`
	MainLobeWidth float64         `json:"main_lobe_width_hz" yaml:"main_lobe_width_hz"`
	Fundamental   float64         `json:"fundamental_hz" yaml:"fundamental_hz"`
	Input         inputSection    `json:"input" yaml:"input"`
	THD           harmonicSection `json:"thd" yaml:"thd"`
	THDNF         thdnSection     `json:"thdn_f" yaml:"thdn_f"`
	THDNR         thdnSection     `json:"thdn_r" yaml:"thdn_r"`
}

type inputSection struct {
	Peak          float64 `json:"peak" yaml:"peak"`
	PeakdB        float64 `json:"peak_db" yaml:"peak_db"`
	RMS           float64 `json:"rms" yaml:"rms"`
	DC            float64 `json:"dc" yaml:"dc"`
	CrestFactordB float64 `json:"crest_factor_db" yaml:"crest_factor_db"`
	Clipped       int     `json:"clipped" yaml:"clipped"`
}

type harmonicSection struct {
	Ratio      float64   `json:"ratio" yaml:"ratio"`
	Percent    float64   `json:"percent" yaml:"percent"`
	DB         float64   `json:"db" yaml:"db"`
	Odd        float64   `json:"odd" yaml:"odd"`
	Even       float64   `json:"even" yaml:"even"`
	Amplitudes []float64 `json:"amplitudes" yaml:"amplitudes"`
	Degenerate bool      `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`
	Partial    bool      `json:"partial,omitempty" yaml:"partial,omitempty"`
}

type thdnSection struct {
	Ratio   float64 `json:"ratio" yaml:"ratio"`
	Percent float64 `json:"percent" yaml:"percent"`
	DB      float64 `json:"db" yaml:"db"`
	// RMS is in micro-units.
	RMS float64 `json:"rms_micro" yaml:"rms_micro"`
}

func newAnalysisReport(res thd.Result, level timestats.Stats, clipped int) analysisReport {
	s := res.Spectrum
	h := res.Harmonic

	return analysisReport{
		Window:        s.Window.String(),
		SampleRate:    s.SampleRate,
		Samples:       s.Samples,
		FFTLength:     s.FFTLength,
		BinSize:       vector.Round(s.BinSpacing(), 4),
		MainLobeWidth: vector.Round(s.MainLobeWidth, 4),
		Fundamental:   res.THDNF.Fundamental,
		Input: inputSection{
			Peak:          level.Peak,
			PeakdB:        finiteDB(level.PeakdB),
			RMS:           level.RMS,
			DC:            level.DC,
			CrestFactordB: finiteDB(level.CrestFactordB),
			Clipped:       clipped,
		},
		THD: harmonicSection{
			Ratio:      h.THD,
			Percent:    h.Percent(),
			DB:         finiteDB(h.DB()),
			Odd:        h.Odd(),
			Even:       h.Even(),
			Amplitudes: h.Amplitudes,
			Degenerate: h.Degenerate,
			Partial:    h.Partial,
		},
		THDNF: newTHDNSection(res.THDNF),
		THDNR: newTHDNSection(res.THDNR),
	}
}

func newTHDNSection(r thd.Report) thdnSection {
	return thdnSection{Ratio: r.THDN, Percent: r.Percent(), DB: finiteDB(r.DB()), RMS: r.RMS}
}

// minDB stands in for -Inf, which JSON cannot encode.
const minDB = -400

func finiteDB(db float64) float64 {
	if math.IsInf(db, -1) || db < minDB {
		return minDB
	}
	return db
}

func (r analysisReport) rows() [][]string {
	return [][]string{
		{"Window", r.Window},
		{"Sample rate", fmt.Sprintf("%g Hz", r.SampleRate)},
		{"Samples", fmt.Sprintf("%d", r.Samples)},
		{"FFT length", fmt.Sprintf("%d", r.FFTLength)},
		{"Bin size", fmt.Sprintf("%.4f Hz", r.BinSize)},
		{"Main lobe width", fmt.Sprintf("%.4f Hz", r.MainLobeWidth)},
		{"Peak", fmt.Sprintf("%.6f (%.2f dBFS)", r.Input.Peak, r.Input.PeakdB)},
		{"Crest factor", fmt.Sprintf("%.2f dB", r.Input.CrestFactordB)},
		{"Clipped samples", fmt.Sprintf("%d", r.Input.Clipped)},
		{"Fundamental", fmt.Sprintf("%.2f Hz", r.Fundamental)},
		{"THD", fmt.Sprintf("%.4f %% (%.2f dB)", r.THD.Percent, r.THD.DB)},
		{"THD odd/even", fmt.Sprintf("%.6f / %.6f", r.THD.Odd, r.THD.Even)},
		{"Harmonics", fmt.Sprintf("%d", max(len(r.THD.Amplitudes)-1, 0))},
		{"THD+N (F)", fmt.Sprintf("%.4f %% (%.2f dB)", r.THDNF.Percent, r.THDNF.DB)},
		{"Noise RMS", fmt.Sprintf("%.2f u", r.THDNF.RMS)},
		{"THD+N (R)", fmt.Sprintf("%.4f %% (%.2f dB)", r.THDNR.Percent, r.THDNR.DB)},
		{"Total RMS", fmt.Sprintf("%.2f u", r.THDNR.RMS)},
	}
}
