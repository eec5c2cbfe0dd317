package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-thdn/internal/wavfile"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		out      string
		bitDepth int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a test tone to a mono WAV file",
		Long: `Render the configured test tone (carrier, harmonics and white noise) and
write it as a mono PCM WAV file. The length is planned from --window and
--error unless --samples is given.

Example:
  thdn generate --frequency 997 --harmonic 2=0.001,3=0.0005 --out tone.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return errors.New("--out is required")
			}

			samples, fs, err := a.loadSignal()
			if err != nil {
				return err
			}

			if err := wavfile.Write(out, samples, int(math.Round(fs)), bitDepth); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			a.logger.Info("wrote tone",
				zap.String("path", out),
				zap.Int("samples", len(samples)),
				zap.Int("bit_depth", bitDepth))

			return nil
		},
	}

	fs := cmd.Flags()
	addSignalFlags(fs)
	addPlanFlags(fs)
	fs.StringVar(&out, "out", "", "output WAV path")
	fs.IntVar(&bitDepth, "bit-depth", 24, "PCM bit depth (8, 16, 24, 32)")

	return cmd
}
