// Package wavfile reads and writes PCM WAV files as normalised float
// samples.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidFile is returned for input that is not a PCM WAV stream.
var ErrInvalidFile = errors.New("wavfile: invalid WAV file")

const pcmFormat = 1

// Clip is a decoded WAV file. Samples holds the selected channel scaled to
// [-1, 1).
type Clip struct {
	Samples    []float64
	SampleRate float64
	BitDepth   int
	Channels   int
}

// Read decodes channel 0 of the WAV file at path.
func Read(path string) (Clip, error) {
	return ReadChannel(path, 0)
}

// ReadChannel decodes one channel of the WAV file at path.
func ReadChannel(path string, channel int) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	return Decode(f, channel)
}

// Decode reads one channel from a WAV stream.
func Decode(r io.ReadSeeker, channel int) (Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return Clip{}, ErrInvalidFile
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("could not read PCM buffer: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return Clip{}, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}
	if channel < 0 || channel >= channels {
		return Clip{}, fmt.Errorf("wavfile: channel %d out of range [0, %d)", channel, channels)
	}

	depth := buf.SourceBitDepth
	if depth < 1 {
		depth = int(decoder.BitDepth)
	}
	scale := fullScale(depth)
	if scale == 0 {
		return Clip{}, fmt.Errorf("%w: bit depth %d", ErrInvalidFile, depth)
	}

	offset := pcmOffset(depth)
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels+channel]-offset) / scale
	}

	return Clip{
		Samples:    samples,
		SampleRate: float64(buf.Format.SampleRate),
		BitDepth:   depth,
		Channels:   channels,
	}, nil
}

// Write encodes samples as a mono PCM WAV file at path. Samples outside
// [-1, 1] are clipped.
func Write(path string, samples []float64, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output file creation error: %w", err)
	}

	if err := Encode(f, samples, sampleRate, bitDepth); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Encode writes samples as a mono PCM WAV stream.
func Encode(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	scale := fullScale(bitDepth)
	if scale == 0 {
		return fmt.Errorf("wavfile: unsupported bit depth %d", bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wavfile: sample rate must be > 0: %d", sampleRate)
	}

	offset := pcmOffset(bitDepth)
	data := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(s * scale)
		data[i] = int(math.Max(-scale, math.Min(scale-1, v))) + offset
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	encoder := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("data writing error: %w", err)
	}

	return encoder.Close()
}

func fullScale(bitDepth int) float64 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return math.Ldexp(1, bitDepth-1)
	default:
		return 0
	}
}

// pcmOffset is the zero level of the stored samples. 8-bit PCM is unsigned
// around 128, wider depths are signed.
func pcmOffset(bitDepth int) int {
	if bitDepth == 8 {
		return 128
	}
	return 0
}
