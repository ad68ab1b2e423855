// Package geometry 实现双段环形图的纯几何计算：角度划分、弧线路径与引线位置。
// 包内函数都是无状态的纯函数，可在任意 goroutine 中重复调用。
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// FullTurn 一整圈的弧度。
const FullTurn = 2 * math.Pi

// ReferenceTop 是 12 点钟方向（屏幕坐标 y 轴向下）。
const ReferenceTop = -math.Pi / 2

var (
	// ErrInvalidValue is returned for negative, NaN or infinite magnitudes,
	// and when the two magnitudes overflow float64 once summed.
	ErrInvalidValue = errors.New("geometry: value must be a finite non-negative number")
	// ErrInvalidGap is returned when the gap is outside [0, π).
	ErrInvalidGap = errors.New("geometry: gap must be within [0, π)")
)

// Layout selects how the two spans are placed around the reference angle.
type Layout int

const (
	// LayoutGapCentered 在参考角两侧各留出 gap/2 的空隙，用于圆头描边弧线。
	LayoutGapCentered Layout = iota
	// LayoutContiguous 两段首尾相接，不留空隙，用于填充的环形扇区。
	LayoutContiguous
)

func (l Layout) String() string {
	switch l {
	case LayoutGapCentered:
		return "gap-centered"
	case LayoutContiguous:
		return "contiguous"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

func (l Layout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// ParseLayout accepts "gap-centered" (or "gap-centered-at-reference") and "contiguous".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "gap-centered", "gap-centered-at-reference", "gap":
		return LayoutGapCentered, nil
	case "contiguous":
		return LayoutContiguous, nil
	}
	return LayoutGapCentered, fmt.Errorf("geometry: unknown layout %q", s)
}

// Orientation decides on which side of the reference angle segment A sits.
type Orientation int

const (
	// ACounterClockwise 段 A 位于参考角逆时针一侧（屏幕上的左侧），段 B 顺时针。
	ACounterClockwise Orientation = iota
	// AClockwise 为镜像布局：段 A 顺时针，段 B 逆时针。
	AClockwise
)

func (o Orientation) String() string {
	if o == AClockwise {
		return "a-clockwise"
	}
	return "a-counter-clockwise"
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// ParseOrientation accepts "a-counter-clockwise"/"ccw" and "a-clockwise"/"cw".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "a-counter-clockwise", "ccw":
		return ACounterClockwise, nil
	case "a-clockwise", "cw":
		return AClockwise, nil
	}
	return ACounterClockwise, fmt.Errorf("geometry: unknown orientation %q", s)
}

// Span is an angular interval in radians. End is never smaller than Start.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Sweep returns the angular width of the span.
func (s Span) Sweep() float64 { return s.End - s.Start }

// Mid returns the angular midpoint.
func (s Span) Mid() float64 { return s.Start + (s.End-s.Start)/2 }

// Options configures Partition.
type Options struct {
	Layout      Layout
	Gap         float64 // 仅 LayoutGapCentered 使用
	Reference   float64
	Orientation Orientation
}

// DefaultOptions 对应描边样式：12 点钟方向、0.15 弧度空隙。
func DefaultOptions() Options {
	return Options{
		Layout:    LayoutGapCentered,
		Gap:       0.15,
		Reference: ReferenceTop,
	}
}

// Split is the outcome of splitting a full turn between two magnitudes.
type Split struct {
	Total  float64 `json:"total"`
	ShareA float64 `json:"shareA"`
	ShareB float64 `json:"shareB"`
	SweepA float64 `json:"sweepA"`
	SweepB float64 `json:"sweepB"`
	A      Span    `json:"a"`
	B      Span    `json:"b"`
}

// Partition 将两个非负数值按比例划分为两个角度区间，两段在 opts.Reference 处相接。
// total 为 0 时两段份额均为 0，区间塌缩为参考角上的一个点；两数之和溢出时返回 ErrInvalidValue。
func Partition(valueA, valueB float64, opts Options) (Split, error) {
	if !validValue(valueA) || !validValue(valueB) {
		return Split{}, ErrInvalidValue
	}
	gap := opts.Gap
	if opts.Layout == LayoutContiguous {
		gap = 0
	}
	if math.IsNaN(gap) || gap < 0 || gap >= math.Pi {
		return Split{}, ErrInvalidGap
	}

	p := Split{Total: valueA + valueB}
	if math.IsInf(p.Total, 0) {
		return Split{}, ErrInvalidValue
	}
	if p.Total > 0 {
		p.ShareA = valueA / p.Total
		p.ShareB = valueB / p.Total
	}
	p.SweepA = p.ShareA * FullTurn
	p.SweepB = p.ShareB * FullTurn

	ref := opts.Reference
	ccw := clampSpan(ref-p.SweepA+gap/2, ref-gap/2)
	cw := clampSpan(ref+gap/2, ref+p.SweepB-gap/2)
	if opts.Orientation == AClockwise {
		// 镜像：A 顺时针占用 SweepA，B 逆时针占用 SweepB
		ccw = clampSpan(ref-p.SweepB+gap/2, ref-gap/2)
		cw = clampSpan(ref+gap/2, ref+p.SweepA-gap/2)
		p.A, p.B = cw, ccw
		return p, nil
	}
	p.A, p.B = ccw, cw
	return p, nil
}

// clampSpan 当区间长度为负（段比空隙还窄）时塌缩到中点，避免弧线方向反转。
func clampSpan(start, end float64) Span {
	if end < start {
		mid := start + (end-start)/2
		return Span{Start: mid, End: mid}
	}
	return Span{Start: start, End: end}
}

func validValue(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
