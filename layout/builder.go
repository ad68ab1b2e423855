package layout

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ByLCY/ringchart/format"
	"github.com/ByLCY/ringchart/geometry"
)

const (
	titleX        = 10.0
	titleY        = 25.0
	centerLabelDY = -5.0
	centerValueDY = 20.0
	labelValueDY  = 16.0
	labelPctDY    = 14.0
)

// SegmentInput 是一段的输入。Value 为 nil 表示数据尚未提供。
type SegmentInput struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Color string   `json:"color"`
}

// Input 汇总一次布局的全部输入：文本、两段数据与容器尺寸（像素）。
type Input struct {
	Title       string          `json:"title"`
	CenterLabel string          `json:"centerLabel"`
	Segments    [2]SegmentInput `json:"segments"`
	Currency    string          `json:"currency"`
	Unit        string          `json:"unit"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
}

// Build 根据输入生成环形图的全部图元。
// 任一段缺少数值或容器没有面积时返回 StateNoData，不计算几何，也不返回错误。
func Build(in Input, opts BuildOptions) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	f := opts.Formatter
	if f == nil {
		f = format.Default()
	}
	style := opts.Style.normalized()

	res := &Result{
		Width:       in.Width,
		Height:      in.Height,
		Style:       style,
		Title:       in.Title,
		CenterLabel: in.CenterLabel,
	}

	if in.Segments[0].Value == nil || in.Segments[1].Value == nil {
		return noData(res), nil
	}
	if !(in.Width > 0) || !(in.Height > 0) {
		log.Debug("container has no area", zap.Float64("width", in.Width), zap.Float64("height", in.Height))
		return noData(res), nil
	}

	valA := sanitizeValue(*in.Segments[0].Value, in.Segments[0].Label, log)
	valB := sanitizeValue(*in.Segments[1].Value, in.Segments[1].Label, log)

	part, err := geometry.Partition(valA, valB, style.partitionOptions())
	if err != nil {
		return nil, fmt.Errorf("角度划分失败: %w", err)
	}

	res.State = StateReady
	res.Total = part.Total
	res.Ring = resolveRing(in.Width, in.Height, style)

	spans := [2]geometry.Span{part.A, part.B}
	shares := [2]float64{part.ShareA, part.ShareB}
	values := [2]float64{valA, valB}

	res.Texts = append(res.Texts,
		TextBox{X: titleX, Y: titleY, Anchor: "start", Class: ClassTitle,
			Lines: []TextLine{{Content: in.Title, Class: ClassTitle}}},
		TextBox{X: res.Ring.CX, Y: res.Ring.CY + centerLabelDY, Anchor: "middle", Class: ClassCenterLabel,
			Lines: []TextLine{{Content: in.CenterLabel, Class: ClassCenterLabel}}},
		TextBox{X: res.Ring.CX, Y: res.Ring.CY + centerValueDY, Anchor: "middle", Class: ClassCenterValue,
			Lines: []TextLine{{Content: f.Decorate(in.Currency, part.Total, in.Unit), Class: ClassCenterValue}}},
	)

	for i, seg := range in.Segments {
		color, err := ParseColor(seg.Color)
		if err != nil {
			log.Warn("invalid segment color, using fallback", zap.String("color", seg.Color), zap.Error(err))
			color = fallbackColors[i]
		}
		built := composeSegment(i, seg.Label, values[i], shares[i], color, spans[i], res.Ring, style)
		res.Segments = append(res.Segments, built)
		res.Texts = append(res.Texts, labelBlock(built, in.Currency, in.Unit, f))
	}
	return res, nil
}

var fallbackColors = [2]Color{{R: 0xed, G: 0x8b, B: 0x36}, {R: 0x44, G: 0x72, B: 0xc4}}

func noData(res *Result) *Result {
	res.State = StateNoData
	res.Message = NoDataMessage
	res.Segments = nil
	res.Texts = []TextBox{{
		X:      res.Width / 2,
		Y:      res.Height / 2,
		Anchor: "middle",
		Class:  ClassNoData,
		Lines:  []TextLine{{Content: NoDataMessage, Class: ClassNoData}},
	}}
	return res
}

// sanitizeValue 负数属于调用方违约，这里收敛到 0，保证路径中不出现 NaN/Inf。
func sanitizeValue(v float64, label string, log *zap.Logger) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		log.Warn("segment value clamped to zero", zap.String("segment", label), zap.Float64("value", v))
		return 0
	}
	return v
}

// resolveRing 由容器尺寸推导环心与半径：中心下移 CenterOffsetY 给标题留空间。
func resolveRing(width, height float64, style Style) Ring {
	radius := math.Min(width, height) / style.RadiusDivisor
	ring := Ring{
		CX:        width / 2,
		CY:        height/2 + style.CenterOffsetY,
		Radius:    radius,
		Thickness: style.Thickness,
	}
	ring.OuterRadius = radius + style.Thickness/2
	ring.InnerRadius = math.Max(radius-style.Thickness/2, 0)
	return ring
}

func composeSegment(idx int, label string, value, share float64, color Color, span geometry.Span, ring Ring, style Style) Segment {
	seg := Segment{
		ID:    fmt.Sprintf("seg%d", idx+1),
		Label: label,
		Value: value,
		Share: share,
		Color: color,
		Span:  span,
	}
	leaderRadius := ring.Radius
	switch style.Render {
	case StyleWedge:
		seg.Fill = true
		seg.Path = geometry.DescribeAnnularWedge(ring.CX, ring.CY, ring.InnerRadius, ring.OuterRadius, span.Start, span.End)
		leaderRadius = ring.OuterRadius
	default:
		seg.Path = geometry.DescribeStrokedArc(ring.CX, ring.CY, ring.Radius, span.Start, span.End)
	}
	side := geometry.SideFor(span.Mid())
	seg.Leader = geometry.ComputeLeaderLine(ring.CX, ring.CY, leaderRadius, span.Start, span.End, side, style.Leader)
	return seg
}

// labelBlock 三行标签：名称、带单位的数值、百分比。
func labelBlock(seg Segment, currency, unit string, f *format.Formatter) TextBox {
	return TextBox{
		X:      seg.Leader.Anchor.X,
		Y:      seg.Leader.Anchor.Y,
		Anchor: seg.Leader.TextAnchor,
		Class:  ClassLabelText,
		Lines: []TextLine{
			{Content: seg.Label, DY: 0, Class: ClassLabelText},
			{Content: f.Decorate(currency, seg.Value, unit), DY: labelValueDY, Class: ClassLabelValue},
			{Content: f.Percent(seg.Share), DY: labelPctDY, Class: ClassLabelPct},
		},
	}
}
