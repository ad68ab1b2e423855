package geometry

import (
	"math"
	"strconv"
	"strings"
)

// coordPrecision 路径字符串中坐标保留的小数位数。
const coordPrecision = 4

// fullCircleEpsilon 跨度达到整圈时，单条 SVG 弧线的起止点重合会被渲染器丢弃。
const fullCircleEpsilon = 1e-9

// Point is a cartesian coordinate in screen space (y grows downwards).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PolarToCartesian converts (radius, angle) around (cx, cy) to screen coordinates.
func PolarToCartesian(cx, cy, radius, angle float64) Point {
	return Point{
		X: cx + radius*math.Cos(angle),
		Y: cy + radius*math.Sin(angle),
	}
}

// DescribeStrokedArc 生成半径恒定的开放弧线。
// 起点取 endAngle，弧线终点取 startAngle，sweep-flag 固定为 0，
// 跨度超过 π 时 large-arc-flag 为 1。零长度区间返回退化路径。
func DescribeStrokedArc(cx, cy, radius, startAngle, endAngle float64) string {
	var b pathBuilder
	from := PolarToCartesian(cx, cy, radius, endAngle)
	b.move(from)
	b.arcs(cx, cy, radius, endAngle, startAngle, 0)
	return b.String()
}

// DescribeAnnularWedge 生成由内外两条同心弧与两条径向线段围成的闭合区域。
// 外弧 end→start（sweep 0），直线到内半径 start 点，内弧 start→end（sweep 1），闭合。
func DescribeAnnularWedge(cx, cy, innerRadius, outerRadius, startAngle, endAngle float64) string {
	var b pathBuilder
	b.move(PolarToCartesian(cx, cy, outerRadius, endAngle))
	b.arcs(cx, cy, outerRadius, endAngle, startAngle, 0)
	b.line(PolarToCartesian(cx, cy, innerRadius, startAngle))
	b.arcs(cx, cy, innerRadius, startAngle, endAngle, 1)
	b.close()
	return b.String()
}

type pathBuilder struct {
	sb strings.Builder
}

func (b *pathBuilder) move(p Point) {
	b.cmd("M", p.X, p.Y)
}

func (b *pathBuilder) line(p Point) {
	b.cmd("L", p.X, p.Y)
}

func (b *pathBuilder) close() {
	b.sb.WriteString(" Z")
}

// arcs 从角度 from 画到 to。整圈时拆成两段半圆，保证终点与起点不重合。
func (b *pathBuilder) arcs(cx, cy, radius, from, to float64, sweep int) {
	span := math.Abs(to - from)
	if span >= FullTurn-fullCircleEpsilon {
		mid := from + (to-from)/2
		b.arc(radius, 0, sweep, PolarToCartesian(cx, cy, radius, mid))
		b.arc(radius, 0, sweep, PolarToCartesian(cx, cy, radius, to))
		return
	}
	large := 0
	if span > math.Pi {
		large = 1
	}
	b.arc(radius, large, sweep, PolarToCartesian(cx, cy, radius, to))
}

func (b *pathBuilder) arc(radius float64, large, sweep int, to Point) {
	b.cmd("A", radius, radius, 0, float64(large), float64(sweep), to.X, to.Y)
}

func (b *pathBuilder) cmd(name string, args ...float64) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(name)
	for _, a := range args {
		b.sb.WriteByte(' ')
		b.sb.WriteString(FormatCoord(a))
	}
}

func (b *pathBuilder) String() string { return b.sb.String() }

// FormatCoord 以固定精度输出坐标，去掉末尾的 0，并把 -0 规范为 0。
// 相同输入总是得到相同的字节序列。
func FormatCoord(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	scale := math.Pow10(coordPrecision)
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
