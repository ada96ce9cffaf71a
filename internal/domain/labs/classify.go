package labs

import (
	"strconv"
	"strings"
)

// Status is the clinical status of a lab value relative to its reference range.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusLow      Status = "low"
	StatusHigh     Status = "high"
	StatusCritical Status = "critical"
)

// Critical margins relative to the reference bounds. A value below 70% of the
// low bound or above 150% of the high bound is critical.
const (
	criticalLowFactor  = 0.7
	criticalHighFactor = 1.5
)

// Classify maps a lab value and a "low-high" reference range to a status.
// It is total: a missing or unparsable range yields normal, never an error,
// because a bad range must not block result entry.
func Classify(value float64, referenceRange string) Status {
	low, high, ok := parseRange(referenceRange)
	if !ok {
		return StatusNormal
	}
	switch {
	case value < low*criticalLowFactor || value > high*criticalHighFactor:
		return StatusCritical
	case value < low:
		return StatusLow
	case value > high:
		return StatusHigh
	default:
		return StatusNormal
	}
}

func parseRange(s string) (low, high float64, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	high, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return low, high, true
}
