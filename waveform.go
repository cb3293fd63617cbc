package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"neurowatch/internal/eeg"
	"neurowatch/internal/metrics"

	"github.com/spf13/cobra"
)

type waveformOptions struct {
	kind    string
	length  int
	format  string
	seed    uint64
	seeded  bool
	summary bool
}

func newWaveformCmd() *cobra.Command {
	var o waveformOptions
	cmd := &cobra.Command{
		Use:   "waveform",
		Short: "Print a synthetic EEG trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.seeded = cmd.Flags().Changed("seed")
			return runWaveform(cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().StringVar(&o.kind, "kind", string(eeg.Normal), "normal or abnormal")
	cmd.Flags().IntVar(&o.length, "length", eeg.DefaultLength, "number of samples")
	cmd.Flags().StringVar(&o.format, "format", "json", "json or csv")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "seed for a reproducible trace")
	cmd.Flags().BoolVar(&o.summary, "summary", false, "print the trace summary instead of the samples")
	return cmd
}

func runWaveform(w io.Writer, o waveformOptions) error {
	kind, err := eeg.ParseKind(o.kind)
	if err != nil {
		return err
	}

	gen := eeg.NewGenerator(nil)
	if o.seeded {
		gen = eeg.NewSeededGenerator(o.seed)
	}
	samples, err := gen.Generate(kind, o.length)
	if err != nil {
		return err
	}

	if o.summary {
		s := metrics.Summarize(samples)
		_, err := fmt.Fprintf(w, "samples=%d mean=%.4f stddev=%.4f rms=%.4f peak=%.4f flagged=%d\n",
			s.Count, s.Mean, s.StdDev, s.RMS, s.Peak, s.Flagged)
		return err
	}

	switch o.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(samples)
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"time", "amplitude", "isAbnormal"}); err != nil {
			return err
		}
		for _, s := range samples {
			row := []string{
				strconv.Itoa(s.Time),
				strconv.FormatFloat(s.Amplitude, 'f', 6, 64),
				strconv.FormatBool(s.IsAbnormal),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown format %q, want json or csv", o.format)
	}
}
