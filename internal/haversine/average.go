package haversine

import (
	"fmt"
	"os"

	"perflab/internal/profiler"
)

// Average parses a generated document and returns the pair count and the
// average haversine distance over its pairs.
func Average(data []byte) (int, float64, error) {
	stopParse := profiler.Start("parse")
	doc, err := Parse(data)
	stopParse()
	if err != nil {
		return 0, 0, err
	}

	pairs, ok := doc.Member("pairs")
	if !ok || pairs.Kind != ArrayValue {
		return 0, 0, fmt.Errorf(`haversine: document has no "pairs" array`)
	}
	if len(pairs.Items) == 0 {
		return 0, 0, fmt.Errorf("haversine: document holds no pairs")
	}

	stopSum := profiler.Start("sum")
	defer stopSum()

	var sum float64
	for i, pair := range pairs.Items {
		x0, y0, x1, y1, err := pairCoords(pair)
		if err != nil {
			return 0, 0, fmt.Errorf("haversine: pair %d: %w", i, err)
		}
		sum += Distance(x0, y0, x1, y1)
	}

	return len(pairs.Items), sum / float64(len(pairs.Items)), nil
}

// AverageFile reads path and computes the average distance, timing the read
// as its own profiler block. It returns the input size in bytes, the pair
// count and the average.
func AverageFile(path string) (int, int, float64, error) {
	stopRead := profiler.Start("read")
	data, err := os.ReadFile(path)
	stopRead()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("haversine: reading input: %w", err)
	}

	count, avg, err := Average(data)
	return len(data), count, avg, err
}

func pairCoords(pair Value) (x0, y0, x1, y1 float64, err error) {
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"x0", &x0}, {"y0", &y0}, {"x1", &x1}, {"y1", &y1},
	} {
		v, ok := pair.Member(f.key)
		if !ok {
			return 0, 0, 0, 0, fmt.Errorf("missing %q", f.key)
		}
		*f.dst, err = v.Float()
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("field %q: %w", f.key, err)
		}
	}
	return x0, y0, x1, y1, nil
}
