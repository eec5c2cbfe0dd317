package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-thdn/dsp/window"
)

func newWindowCmd(a *app) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "window [window-name ...]",
		Short: "Print spectral properties of the analysis windows",
		Long: `Print measured spectral properties of the analysis windows. Without
arguments every window is listed.

Examples:
  thdn window
  thdn window --size 4096 blackman hann`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := resolveKinds(args)
			if err != nil {
				return err
			}

			r, err := newWindowReport(kinds, size)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), a.cfg.Output, r)
		},
	}

	cmd.Flags().IntVar(&size, "size", 1024, "window length in samples")

	return cmd
}

func resolveKinds(names []string) ([]window.Kind, error) {
	if len(names) == 0 {
		return window.Kinds, nil
	}

	kinds := make([]window.Kind, 0, len(names))
	for _, name := range names {
		k, err := window.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}

	return kinds, nil
}

type windowReport struct {
	Size    int         `json:"size" yaml:"size"`
	Windows []windowRow `json:"windows" yaml:"windows"`
}

type windowRow struct {
	Name               string  `json:"name" yaml:"name"`
	MainLobeMultiplier float64 `json:"main_lobe_multiplier" yaml:"main_lobe_multiplier"`
	CoherentGain       float64 `json:"coherent_gain" yaml:"coherent_gain"`
	ENBW               float64 `json:"enbw_bins" yaml:"enbw_bins"`
	Bandwidth3dB       float64 `json:"bw_3db_bins" yaml:"bw_3db_bins"`
	HighestSidelobedB  float64 `json:"sidelobe_db" yaml:"sidelobe_db"`
	FirstMinimumBins   float64 `json:"first_min_bins" yaml:"first_min_bins"`
	ScallopLossdB      float64 `json:"scallop_db" yaml:"scallop_db"`
}

func newWindowReport(kinds []window.Kind, size int) (windowReport, error) {
	r := windowReport{Size: size}

	for _, k := range kinds {
		an, err := window.AnalyzeKind(k, size)
		if err != nil {
			return windowReport{}, fmt.Errorf("window %s: %w", k, err)
		}

		r.Windows = append(r.Windows, windowRow{
			Name:               k.String(),
			MainLobeMultiplier: k.MainLobeMultiplier(),
			CoherentGain:       an.CoherentGain,
			ENBW:               an.ENBW,
			Bandwidth3dB:       an.Bandwidth3dB,
			HighestSidelobedB:  an.HighestSidelobedB,
			FirstMinimumBins:   an.FirstMinimumBins,
			ScallopLossdB:      an.ScallopLossdB,
		})
	}

	return r, nil
}

func (r windowReport) rows() [][]string {
	out := [][]string{
		{"Window", "Size", "Main Lobe [fs/N]", "Coherent Gain", "ENBW [bins]", "BW 3dB [bins]", "Sidelobe [dB]", "1st Min [bins]", "Scallop [dB]"},
		{"------", "----", "----------------", "-------------", "-----------", "-------------", "-------------", "--------------", "------------"},
	}

	for _, w := range r.Windows {
		out = append(out, []string{
			w.Name,
			fmt.Sprintf("%d", r.Size),
			fmt.Sprintf("%g", w.MainLobeMultiplier),
			fmt.Sprintf("%.6f", w.CoherentGain),
			fmt.Sprintf("%.4f", w.ENBW),
			fmt.Sprintf("%.4f", w.Bandwidth3dB),
			fmt.Sprintf("%.2f", w.HighestSidelobedB),
			fmt.Sprintf("%.4f", w.FirstMinimumBins),
			fmt.Sprintf("%.4f", w.ScallopLossdB),
		})
	}

	return out
}
