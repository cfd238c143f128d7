package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dm/filtro-go/internal/engine"
	"github.com/dm/filtro-go/internal/format"
	"github.com/dm/filtro-go/internal/model"
)

type classifyOptions struct {
	volume string
	length string
	width  string
	height string
	json   bool
}

func newClassifyCmd(c *cli) *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify (--volume L | --length cm --width cm --height cm)",
		Short: "Classify the catalog for a tank volume",
		Long: `Loads the catalog and prints the filters in each suitability tier.

The volume is given in litres, or as inner tank dimensions in centimetres
(length x width x height / 1000). Decimal commas are accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.volumeInput()
			if err != nil {
				return err
			}
			volume, err := engine.ResolveVolume(in)
			if err != nil {
				return err
			}

			sources, closeSources, err := c.catalogSources()
			if err != nil {
				return err
			}
			defer closeSources()

			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.UI.FetchTimeout)
			defer cancel()
			cat, err := loadCatalog(ctx, c.log, sources)
			if err != nil {
				return err
			}

			res := engine.Classify(volume, cat.Filters)
			c.log.Info("classified",
				zap.Float64("volume_l", volume),
				zap.Int("rows", res.SingleCount()),
				zap.Int("recommended", len(res.Recommended)),
				zap.Int("adequate", len(res.Adequate)),
				zap.Int("not_adequate", len(res.NotAdequate)),
				zap.Int("combinations", res.CombinationCount()))

			if opts.json {
				return writeClassificationJSON(cmd.OutOrStdout(), volume, cat.Filters, res)
			}
			writeClassification(cmd.OutOrStdout(), volume, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.volume, "volume", "", "tank volume in litres")
	cmd.Flags().StringVar(&opts.length, "length", "", "inner length in cm")
	cmd.Flags().StringVar(&opts.width, "width", "", "inner width in cm")
	cmd.Flags().StringVar(&opts.height, "height", "", "inner height in cm")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("volume", "length")
	cmd.MarkFlagsMutuallyExclusive("volume", "width")
	cmd.MarkFlagsMutuallyExclusive("volume", "height")
	return cmd
}

// volumeInput maps the flags onto a VolumeInput. No volume flag at all
// leaves the mode unselected so ResolveVolume reports it.
func (o *classifyOptions) volumeInput() (model.VolumeInput, error) {
	switch {
	case o.volume != "":
		l, err := engine.ParseNumber(o.volume)
		if err != nil {
			return model.VolumeInput{}, fmt.Errorf("--volume: %w", err)
		}
		return model.VolumeInput{Mode: model.ModeByVolume, Liters: l}, nil

	case o.length != "" || o.width != "" || o.height != "":
		var d model.Dimensions
		for _, f := range []struct {
			name string
			raw  string
			dst  *float64
		}{
			{"--length", o.length, &d.Length},
			{"--width", o.width, &d.Width},
			{"--height", o.height, &d.Height},
		} {
			v, err := engine.ParseNumber(f.raw)
			if err != nil {
				return model.VolumeInput{}, fmt.Errorf("%s: %w", f.name, err)
			}
			*f.dst = v
		}
		return model.VolumeInput{Mode: model.ModeByDimensions, Dimensions: d}, nil
	}
	return model.VolumeInput{Mode: model.ModeUnselected}, nil
}

func writeClassification(w io.Writer, volume float64, res model.ClassificationResult) {
	fmt.Fprintf(w, "Tank: %s  min flow: %s  media: %s adequate / %s recommended\n\n",
		format.FormatLiters(volume),
		format.FormatFlow(engine.MinFlowRate(volume)),
		format.FormatLiters(engine.MinMediaVolume(volume)),
		format.FormatLiters(engine.RecommendedMediaVolume(volume)))

	writeFilterSection(w, "Recommended", res.Recommended, false)
	writeFilterSection(w, "Adequate", res.Adequate, false)
	writeFilterSection(w, "Not adequate", res.NotAdequate, false)
	if res.CombinationCount() > 0 {
		writeFilterSection(w, "Recommended x2", records(res.RecommendedCombinations), true)
		writeFilterSection(w, "Adequate x2", records(res.AdequateCombinations), true)
	}
}

type classificationJSON struct {
	VolumeL           float64                    `json:"volume_l"`
	MinFlowLPH        float64                    `json:"min_flow_lph"`
	MinMediaL         float64                    `json:"min_media_l"`
	RecommendedMediaL float64                    `json:"recommended_media_l"`
	CombinationAboveL float64                    `json:"combination_above_l"`
	Result            model.ClassificationResult `json:"result"`
}

func writeClassificationJSON(w io.Writer, volume float64, catalog []model.FilterRecord, res model.ClassificationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(classificationJSON{
		VolumeL:           volume,
		MinFlowLPH:        engine.MinFlowRate(volume),
		MinMediaL:         engine.MinMediaVolume(volume),
		RecommendedMediaL: engine.RecommendedMediaVolume(volume),
		CombinationAboveL: engine.CombinationThreshold(catalog),
		Result:            res,
	})
}

func records(combos []model.CombinedFilter) []model.FilterRecord {
	out := make([]model.FilterRecord, len(combos))
	for i, c := range combos {
		out[i] = c.AsRecord()
	}
	return out
}
