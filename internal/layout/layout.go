// Package layout reads board layouts: one row length per line.
package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineLength - longer lines are junk and are dropped without being buffered.
const maxLineLength = 4 << 10

// Parse - reads one row length per line. Lines that are not a count in [0, 255] are skipped.
func Parse(r io.Reader) ([]uint8, error) {
	lengths := make([]uint8, 0)

	reader := bufio.NewReader(r)
	for {
		line, err := readLine(reader)
		if line != "" {
			if length, parseErr := strconv.ParseUint(strings.TrimSpace(line), 10, 8); parseErr == nil {
				lengths = append(lengths, uint8(length))
			}
		}

		if errors.Is(err, io.EOF) {
			return lengths, nil
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read layout: %w", err)
		}
	}
}

// readLine - returns the next line without its terminator, or "" when it is longer than maxLineLength.
func readLine(reader *bufio.Reader) (string, error) {
	var line []byte
	tooLong := false

	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			return "", err
		}

		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineLength {
				tooLong, line = true, nil
			}
		}

		if !isPrefix {
			return string(line), nil
		}
	}
}

// Load - parses the layout file at path.
func Load(path string) ([]uint8, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open layout: %w", err)
	}
	defer file.Close()

	lengths, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}

	return lengths, nil
}
