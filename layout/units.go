package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths. Layout works in CSS pixels; the canvas
// renderer needs millimetres for the page and points for font sizes.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, treated as pixels
	UnitPX               // CSS pixels (1/96 in)
	UnitMM               // millimeters
	UnitPT               // points (1/72 in)
)

// Conversion constants between px, pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToMm = 25.4 / 96
	MmToPx = 1.0 / PxToMm
	PxToPt = 72.0 / 96
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPX converts the length to CSS pixels.
func (l Length) ToPX() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPx
	case UnitPT:
		return l.Value / PxToPt
	default:
		return l.Value
	}
}

func (l Length) ToMM() float64 { return l.ToPX() * PxToMm }
func (l Length) ToPT() float64 { return l.ToPX() * PxToPt }

// Px is shorthand for a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPX} }

// ParseLength parses "12", "12px", "3mm" or "9pt". Invalid input yields a zero length.
func ParseLength(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"mm", UnitMM}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
