package signal

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cwbudde/algo-thdn/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Sine generates a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %g", g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Tone describes a test tone: a carrier, optional harmonics and optional
// white noise.
type Tone struct {
	Frequency float64
	Amplitude float64
	// Harmonics maps order (2 = second harmonic) to amplitude relative to
	// the carrier. Orders at or above Nyquist are skipped.
	Harmonics map[int]float64
	// Noise is the peak amplitude of uniform white noise.
	Noise float64
	// Samples is the signal length. Zero uses the generator default.
	Samples int
}

// Tone renders t.
func (g *Generator) Tone(t Tone) ([]float64, error) {
	n := t.Samples
	if n == 0 {
		n = g.cfg.Length
	}

	out, err := g.Sine(t.Frequency, t.Amplitude, n)
	if err != nil {
		return nil, fmt.Errorf("carrier: %w", err)
	}

	orders := make([]int, 0, len(t.Harmonics))
	for order := range t.Harmonics {
		orders = append(orders, order)
	}
	sort.Ints(orders)

	for _, order := range orders {
		level := t.Harmonics[order]
		f := t.Frequency * float64(order)
		if order < 2 || level == 0 || f >= g.cfg.SampleRate/2 {
			continue
		}

		h, err := g.Sine(f, t.Amplitude*level, n)
		if err != nil {
			return nil, fmt.Errorf("harmonic %d: %w", order, err)
		}
		for i := range out {
			out[i] += h[i]
		}
	}

	if t.Noise > 0 {
		noise, err := g.WhiteNoise(t.Noise, n)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] += noise[i]
		}
	}

	return out, nil
}

// TimeAxis returns the sample instants i/fs for i in [0, samples).
func (g *Generator) TimeAxis(samples int) []float64 {
	out := make([]float64, max(samples, 0))
	for i := range out {
		out[i] = float64(i) / g.cfg.SampleRate
	}
	return out
}

// PeriodSamples returns the number of samples spanning periods cycles of
// freqHz, rounded to the nearest sample.
func (g *Generator) PeriodSamples(freqHz, periods float64) int {
	if freqHz <= 0 {
		return 0
	}
	return int(math.Round(periods * g.cfg.SampleRate / freqHz))
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
