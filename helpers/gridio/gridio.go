// Package gridio reads and writes sampled scalar grids as JSON. Samples are
// encoded as a 3D array with z on the outer dimension, then y, then x.
package gridio

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
)

// Config controls how decoded samples become a grid.
type Config struct {
	// Bounds spanned by the grid. The zero value is the unit cube.
	Bounds ms3.Box
	// Threshold is subtracted from every sample so the surface is
	// extracted at the threshold value.
	Threshold float32
	// Invert negates samples after thresholding, for data where values
	// above the threshold lie inside, such as occupancy probabilities.
	Invert bool
}

// Read decodes a JSON sample array from r into a grid.
func Read(r io.Reader, cfg Config) (*mcubes.Grid, error) {
	var object [][][]float32
	dec := json.NewDecoder(r)
	if err := dec.Decode(&object); err != nil {
		return nil, errors.Wrap(err, "read grid")
	}
	bounds := cfg.Bounds
	if bounds == (ms3.Box{}) {
		bounds.Max = ms3.Vec{X: 1, Y: 1, Z: 1}
	}
	if bounds.Min.X >= bounds.Max.X || bounds.Min.Y >= bounds.Max.Y || bounds.Min.Z >= bounds.Max.Z {
		return nil, errors.New("read grid: invalid bounds")
	}
	if cfg.Threshold != 0 || cfg.Invert {
		for _, plane := range object {
			for _, row := range plane {
				for i, v := range row {
					v -= cfg.Threshold
					if cfg.Invert {
						v = -v
					}
					row[i] = v
				}
			}
		}
	}
	g, err := mcubes.NewGridFromSamples(object, bounds)
	if err != nil {
		return nil, errors.Wrap(err, "read grid")
	}
	return g, nil
}

// ReadFile reads the grid stored at path.
func ReadFile(path string, cfg Config) (*mcubes.Grid, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open grid file")
	}
	defer fp.Close()
	return Read(fp, cfg)
}

// Write encodes the samples of g as JSON to w.
func Write(w io.Writer, g *mcubes.Grid) error {
	n := g.CornerCount()
	object := make([][][]float32, n[2])
	for z := range object {
		object[z] = make([][]float32, n[1])
		for y := range object[z] {
			row := make([]float32, n[0])
			for x := range row {
				row[x] = g.Sample(x, y, z)
			}
			object[z][y] = row
		}
	}
	if err := json.NewEncoder(w).Encode(object); err != nil {
		return errors.Wrap(err, "write grid")
	}
	return nil
}
