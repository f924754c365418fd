// Command bufferfill allocates a 1 MiB buffer and writes every byte of it.
// It prints nothing and exits 0 when the fill completes.
package main

import (
	"fmt"
	"os"

	"perflab/internal/membuf"
)

func main() {
	buf, err := membuf.Alloc(membuf.BufferSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bufferfill: %v\n", err)
		os.Exit(1)
	}
	membuf.Fill(buf)
}
