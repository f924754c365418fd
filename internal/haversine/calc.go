// Package haversine generates, parses and evaluates the point-pair workload
// used to measure read and parse throughput.
package haversine

import "math"

// EarthRadius is the sphere radius, in kilometers, used by the reference
// computation.
const EarthRadius = 6372.8

// Distance returns the haversine distance between (x0, y0) and (x1, y1),
// where x is longitude and y is latitude, both in degrees.
func Distance(x0, y0, x1, y1 float64) float64 {
	dLat := radians(y1 - y0)
	dLon := radians(x1 - x0)
	lat1 := radians(y0)
	lat2 := radians(y1)

	a := square(math.Sin(dLat/2)) + math.Cos(lat1)*math.Cos(lat2)*square(math.Sin(dLon/2))
	c := 2 * math.Asin(math.Sqrt(a))

	return c * EarthRadius
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func square(x float64) float64 { return x * x }
