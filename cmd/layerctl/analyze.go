package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"

	"terrimap/internal/analytics"
	"terrimap/internal/infra/tiles"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

type analysisFunc func(locations, boundaries *geojson.FeatureCollection) *geojson.FeatureCollection

var analyses = map[string]analysisFunc{
	"population": analytics.PopulationAnalysis,
	"expansion":  analytics.ExpansionAnalysis,
}

type analyzeFlags struct {
	locations  string
	boundaries string
	output     string
	pretty     bool
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	analysis, ok := analyses[args[0]]
	if !ok {
		printUsage()
		return errors.Errorf("unknown command: %s", args[0])
	}

	var flags analyzeFlags
	cmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	cmd.StringVar(&flags.locations, "locations", "", "Comma-separated GeoJSON sources of locations")
	cmd.StringVar(&flags.boundaries, "boundaries", "", "GeoJSON source of boundary polygons")
	cmd.StringVar(&flags.output, "output", "", "Output file (default stdout)")
	cmd.BoolVar(&flags.pretty, "pretty", false, "Indent the output")
	if err := cmd.Parse(args[1:]); err != nil {
		return errors.WithStack(err)
	}

	if flags.locations == "" || flags.boundaries == "" {
		return errors.New("-locations and -boundaries are required")
	}

	locations, err := readLocations(ctx, strings.Split(flags.locations, ","))
	if err != nil {
		return err
	}
	boundaries, err := tiles.ReadGeoJSON(ctx, flags.boundaries)
	if err != nil {
		return errors.Wrap(err, "read boundaries")
	}

	result := analysis(locations, boundaries)

	out := stdout
	if flags.output != "" {
		file, err := os.Create(flags.output)
		if err != nil {
			return errors.WithStack(err)
		}
		defer file.Close()
		out = file
	}

	return writeCollection(out, result, flags.pretty)
}

// readLocations merges every source into one collection.
func readLocations(ctx context.Context, sources []string) (*geojson.FeatureCollection, error) {
	merged := geojson.NewFeatureCollection()
	for _, source := range sources {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}

		fc, err := tiles.ReadGeoJSON(ctx, source)
		if err != nil {
			return nil, errors.Wrapf(err, "read locations %s", source)
		}
		merged.Features = append(merged.Features, fc.Features...)
	}

	return merged, nil
}

func writeCollection(w io.Writer, fc *geojson.FeatureCollection, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}

	return errors.WithStack(encoder.Encode(fc))
}
