package reptest

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Strategy is one way of reading a file end to end. Run returns the number
// of bytes it processed. Strategies that take a scratch buffer require it to
// be at least as large as the file.
type Strategy struct {
	Name string
	Run  func(path string, scratch []byte) (uint64, error)
}

// ReadStrategies returns the file-read variants the repeat command measures.
func ReadStrategies() []Strategy {
	return []Strategy{
		{Name: "whole-file", Run: readWholeFile},
		{Name: "chunked", Run: readChunked},
		{Name: "buffered", Run: readBuffered},
	}
}

func readWholeFile(path string, _ []byte) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return uint64(len(data)), nil
}

func readChunked(path string, scratch []byte) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var pos int
	for {
		if pos == len(scratch) {
			break
		}
		n, err := f.Read(scratch[pos:])
		pos += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return uint64(pos), err
		}
	}
	return uint64(pos), nil
}

func readBuffered(path string, scratch []byte) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<16)
	var pos int
	for {
		if pos == len(scratch) {
			break
		}
		n, err := r.Read(scratch[pos:])
		pos += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return uint64(pos), err
		}
	}
	return uint64(pos), nil
}

// FileSize returns the size of path in bytes.
func FileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("reptest: %w", err)
	}
	if info.Size() < 0 {
		return 0, fmt.Errorf("reptest: %s has negative size", path)
	}
	return uint64(info.Size()), nil
}
