package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// Utilization colors a station load fraction: comfortable below 75%, tight
// below 100%, over capacity beyond that.
func Utilization(u float64) string {
	s := fmt.Sprintf("%.1f%%", u*100)
	switch {
	case u >= 1:
		return BoldRed(s)
	case u >= 0.75:
		return Yellow(s)
	default:
		return Green(s)
	}
}

// Risk colors an overrun probability: negligible below 0.5%, elevated below
// 5%, hot beyond that.
func Risk(r float64) string {
	s := fmt.Sprintf("%.4f", r)
	switch {
	case r >= 0.05:
		return BoldRed(s)
	case r >= 0.005:
		return Yellow(s)
	default:
		return Dim(s)
	}
}
