// Package core provides the core puzzle logic for the water sort game:
// bottles, pours, level generation and state evaluation.
// This package is UI-agnostic and deterministic given a random source.
package core

import "strings"

// Liquid represents one color of liquid. A bottle slot holds exactly one unit.
type Liquid uint8

const (
	LiquidNone Liquid = iota // Sentinel, never stored in a bottle
	LiquidRed
	LiquidBlue
	LiquidGreen
	LiquidYellow
	LiquidPurple
	LiquidOrange
	LiquidCount // Sentinel value for iteration
)

// String returns the string representation of a liquid.
func (l Liquid) String() string {
	switch l {
	case LiquidNone:
		return "none"
	case LiquidRed:
		return "red"
	case LiquidBlue:
		return "blue"
	case LiquidGreen:
		return "green"
	case LiquidYellow:
		return "yellow"
	case LiquidPurple:
		return "purple"
	case LiquidOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (l Liquid) Char() rune {
	switch l {
	case LiquidRed:
		return 'R'
	case LiquidBlue:
		return 'B'
	case LiquidGreen:
		return 'G'
	case LiquidYellow:
		return 'Y'
	case LiquidPurple:
		return 'P'
	case LiquidOrange:
		return 'O'
	default:
		return '.'
	}
}

// Valid reports whether l is a real color that may be stored in a bottle.
func (l Liquid) Valid() bool {
	return l > LiquidNone && l < LiquidCount
}

// ParseLiquid converts a string to a Liquid.
// Returns LiquidNone and false if the string is not recognized.
func ParseLiquid(s string) (Liquid, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return LiquidRed, true
	case "blue", "b":
		return LiquidBlue, true
	case "green", "g":
		return LiquidGreen, true
	case "yellow", "y":
		return LiquidYellow, true
	case "purple", "p":
		return LiquidPurple, true
	case "orange", "o":
		return LiquidOrange, true
	default:
		return LiquidNone, false
	}
}

// AllLiquids returns every storable color in declaration order.
func AllLiquids() []Liquid {
	return []Liquid{LiquidRed, LiquidBlue, LiquidGreen, LiquidYellow, LiquidPurple, LiquidOrange}
}
