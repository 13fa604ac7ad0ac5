package punch

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue parses a Fortran-style literal such as "5.26D3" or "-1.0D+2".
// Every 'D' is read as the exponent marker 'E'.
func ParseValue(tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, "D", "E"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value format: %s: %w", tok, ErrFormat)
	}
	return v, nil
}

// ParseID parses a node ID or local DOF number.
func ParseID(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid integer format: %s: %w", tok, ErrFormat)
	}
	return v, nil
}
