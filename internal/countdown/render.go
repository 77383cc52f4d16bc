package countdown

import (
	"fmt"
	"strings"

	"intime-cli/internal/model"
)

// Compact renders the card form, e.g. "1y 12d 3h 04m 05s".
// Leading zero units are dropped; seconds are always present.
func Compact(r model.TimeRemaining) string {
	parts := make([]string, 0, 5)
	if r.Years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", r.Years))
	}
	if r.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", r.Days))
	}
	if r.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", r.Hours))
	}
	if r.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%02dm", r.Minutes))
	}
	parts = append(parts, fmt.Sprintf("%02ds", r.Seconds))
	return strings.Join(parts, " ")
}

type Block struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

func unitLabel(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// Detailed renders labelled blocks for the detail view. Years, days, hours and
// minutes appear only when non-zero.
func Detailed(r model.TimeRemaining) []Block {
	var out []Block
	if r.Years > 0 {
		out = append(out, Block{Value: fmt.Sprintf("%d", r.Years), Label: unitLabel(r.Years, "year")})
	}
	if r.Days > 0 {
		out = append(out, Block{Value: fmt.Sprintf("%02d", r.Days), Label: unitLabel(r.Days, "day")})
	}
	if r.Hours > 0 {
		out = append(out, Block{Value: fmt.Sprintf("%02d", r.Hours), Label: unitLabel(r.Hours, "hour")})
	}
	if r.Minutes > 0 {
		out = append(out, Block{Value: fmt.Sprintf("%02d", r.Minutes), Label: unitLabel(r.Minutes, "min")})
	}
	out = append(out, Block{Value: fmt.Sprintf("%02d", r.Seconds), Label: unitLabel(r.Seconds, "sec")})
	return out
}
