package geometry

import "math"

// Side is the horizontal direction a leader line runs after its elbow.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// MarshalText 调试 JSON 中输出 left/right。
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// TextAnchor returns the SVG text-anchor that makes a label read away from the ring.
func (s Side) TextAnchor() string {
	if s == SideLeft {
		return "end"
	}
	return "start"
}

// SideFor 中点角落在圆的左半边（cos < 0）时标签放在左侧。
func SideFor(midAngle float64) Side {
	if math.Cos(midAngle) < 0 {
		return SideLeft
	}
	return SideRight
}

// LeaderStyle 引线的固定长度参数（像素）。
// 长度与段的跨度无关，小扇区的标签不会挤在环上。
type LeaderStyle struct {
	Offset   float64 `json:"offset"`   // 起点距环的径向距离
	Radial   float64 `json:"radial"`   // 拐点距环的径向距离
	Run      float64 `json:"run"`      // 拐点之后的水平长度
	TextGap  float64 `json:"textGap"`  // 文本锚点与引线终点的水平距离
	TextRise float64 `json:"textRise"` // 文本锚点相对引线终点上移的距离
}

// DefaultLeaderStyle 10/35/15 与 5/15 的组合。
func DefaultLeaderStyle() LeaderStyle {
	return LeaderStyle{Offset: 10, Radial: 35, Run: 15, TextGap: 5, TextRise: 15}
}

// LeaderLine is the elbowed callout for one segment.
type LeaderLine struct {
	Points     [3]Point `json:"points"`
	Anchor     Point    `json:"anchor"`
	Side       Side     `json:"side"`
	TextAnchor string   `json:"textAnchor"`
	MidAngle   float64  `json:"midAngle"`
}

// ComputeLeaderLine 在段的角度中点处生成三点折线：环外起点、径向拐点、水平终点。
func ComputeLeaderLine(cx, cy, radius, startAngle, endAngle float64, side Side, style LeaderStyle) LeaderLine {
	mid := startAngle + (endAngle-startAngle)/2
	p1 := PolarToCartesian(cx, cy, radius+style.Offset, mid)
	p2 := PolarToCartesian(cx, cy, radius+style.Radial, mid)

	dir := 1.0
	if side == SideLeft {
		dir = -1
	}
	p3 := Point{X: p2.X + dir*style.Run, Y: p2.Y}

	return LeaderLine{
		Points:     [3]Point{p1, p2, p3},
		Anchor:     Point{X: p3.X + dir*style.TextGap, Y: p3.Y - style.TextRise},
		Side:       side,
		TextAnchor: side.TextAnchor(),
		MidAngle:   mid,
	}
}

// PointsAttr 以 SVG polyline points 属性的格式输出折线坐标。
func (l LeaderLine) PointsAttr() string {
	out := make([]byte, 0, 64)
	for i, p := range l.Points {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, FormatCoord(p.X)...)
		out = append(out, ',')
		out = append(out, FormatCoord(p.Y)...)
	}
	return string(out)
}
