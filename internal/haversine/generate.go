package haversine

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"perflab/internal/clock"
)

const (
	lonMin = -180.0
	lonMax = 180.0
	latMin = -90.0
	latMax = 90.0
)

// GenerateOptions controls input generation.
type GenerateOptions struct {
	// Samples is the number of point pairs to write. Must be positive.
	Samples uint64
	// Cluster draws all pairs from one random sub-range of the coordinate
	// space instead of the full range.
	Cluster bool
	// Seed makes generation deterministic. Zero seeds from the clock.
	Seed uint64
}

// Generate writes a JSON document of point pairs to w and returns the
// reference average haversine distance over the generated pairs.
func Generate(w io.Writer, opts GenerateOptions) (float64, error) {
	if opts.Samples == 0 {
		return 0, fmt.Errorf("haversine: sample count must be positive")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = clock.Ticks()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	xa, xb := lonMin, lonMax
	ya, yb := latMin, latMax
	if opts.Cluster {
		xa, xb = orderedPair(rng, lonMin, lonMax)
		ya, yb = orderedPair(rng, latMin, latMax)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "{")
	fmt.Fprintln(bw, `    "pairs": [`)

	var sum float64
	for sample := uint64(0); sample < opts.Samples; sample++ {
		x0 := inRange(rng, xa, xb)
		x1 := inRange(rng, xa, xb)
		y0 := inRange(rng, ya, yb)
		y1 := inRange(rng, ya, yb)

		fmt.Fprintf(bw, `      {"x0": %s, "y0": %s, "x1": %s, "y1": %s}`,
			formatCoord(x0), formatCoord(y0), formatCoord(x1), formatCoord(y1))
		if sample < opts.Samples-1 {
			fmt.Fprintln(bw, ",")
		} else {
			fmt.Fprintln(bw)
		}

		sum += Distance(x0, y0, x1, y1)
	}

	fmt.Fprintln(bw, "    ]")
	fmt.Fprintln(bw, "}")

	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("haversine: writing input: %w", err)
	}
	return sum / float64(opts.Samples), nil
}

func orderedPair(rng *rand.Rand, lo, hi float64) (float64, float64) {
	a := inRange(rng, lo, hi)
	b := inRange(rng, lo, hi)
	if a > b {
		a, b = b, a
	}
	return a, b
}

func inRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// formatCoord renders without an exponent so the scanner's number grammar
// can read the value back.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
