// Package csvsource serves polygon geometries from a local CSV dataset with
// scale_of_polygon and geog columns.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/core/observability"
	"github.com/hexpanel/hexpanel/internal/source"
)

type Source struct {
	path string
	// scale -> geojson, loaded once; the dataset is read-only for the
	// process lifetime
	byScale map[string]string
}

func New(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", path)
	}

	scaleCol, geogCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "scale_of_polygon":
			scaleCol = i
		case "geog":
			geogCol = i
		}
	}
	if scaleCol < 0 || geogCol < 0 {
		return nil, fmt.Errorf("csv %s must contain columns scale_of_polygon and geog", path)
	}

	byScale := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= scaleCol || len(rec) <= geogCol {
			continue
		}
		scale := strings.TrimSpace(rec[scaleCol])
		if scale == "" {
			continue
		}
		// first record per scale wins, matching select-by-key semantics
		if _, ok := byScale[scale]; !ok {
			byScale[scale] = rec[geogCol]
		}
	}

	return &Source{path: path, byScale: byScale}, nil
}

func (s *Source) GeometryForScale(_ context.Context, scale model.Scale) (string, error) {
	start := time.Now()
	geog, ok := s.byScale[string(scale)]
	observability.ObserveSourceLatency("csv", time.Since(start).Seconds())
	if !ok {
		return "", &source.NoGeometryForScaleError{Scale: string(scale)}
	}
	return geog, nil
}
