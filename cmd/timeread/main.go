// Command timeread reads the monotonic clock once and prints the raw tick
// value.
package main

import (
	"fmt"

	"perflab/internal/clock"
)

func main() {
	fmt.Printf("Time is %d\n", clock.Ticks())
}
