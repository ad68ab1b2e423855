package layout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ByLCY/ringchart/format"
	"github.com/ByLCY/ringchart/geometry"
)

// BuildOptions 配置布局阶段所需的依赖。
type BuildOptions struct {
	Style     Style             // 零值时使用 DefaultStyle
	Formatter *format.Formatter // 为空时使用英文格式
	Logger    *zap.Logger       // 为空时不输出日志
}

// RenderStyle 选择环的绘制方式。
type RenderStyle string

const (
	// StyleStroked 以线宽描边的圆头弧线绘制每一段。
	StyleStroked RenderStyle = "stroked"
	// StyleWedge 以内外半径围成的填充扇区绘制每一段。
	StyleWedge RenderStyle = "wedge"
)

// ParseRenderStyle accepts "stroked" and "wedge" (alias "filled").
func ParseRenderStyle(s string) (RenderStyle, error) {
	switch s {
	case "", "stroked", "stroke":
		return StyleStroked, nil
	case "wedge", "filled":
		return StyleWedge, nil
	}
	return StyleStroked, fmt.Errorf("layout: 未知的绘制样式 %q", s)
}

// Style 是与数据无关的视觉参数，单位为像素。
type Style struct {
	Render         RenderStyle          `json:"render"`
	Layout         geometry.Layout      `json:"layout"`
	Gap            float64              `json:"gap"`
	Reference      float64              `json:"reference"`
	Orientation    geometry.Orientation `json:"orientation"`
	Thickness      float64              `json:"thickness"`
	HoverThickness float64              `json:"hoverThickness"`
	RadiusDivisor  float64              `json:"radiusDivisor"` // radius = min(w,h) / RadiusDivisor
	CenterOffsetY  float64              `json:"centerOffsetY"`
	Leader         geometry.LeaderStyle `json:"leader"`
}

// DefaultStyle 描边圆头弧线，参考角两侧留 0.15 弧度空隙。
func DefaultStyle() Style {
	return Style{
		Render:         StyleStroked,
		Layout:         geometry.LayoutGapCentered,
		Gap:            0.15,
		Reference:      geometry.ReferenceTop,
		Orientation:    geometry.ACounterClockwise,
		Thickness:      12,
		HoverThickness: 16,
		RadiusDivisor:  3.2,
		CenterOffsetY:  10,
		Leader:         geometry.DefaultLeaderStyle(),
	}
}

// WedgeStyle 填充扇区，两段首尾相接不留缝。
func WedgeStyle() Style {
	s := DefaultStyle()
	s.Render = StyleWedge
	s.Layout = geometry.LayoutContiguous
	s.Gap = 0
	return s
}

func (s Style) partitionOptions() geometry.Options {
	return geometry.Options{
		Layout:      s.Layout,
		Gap:         s.Gap,
		Reference:   s.Reference,
		Orientation: s.Orientation,
	}
}

// normalized 用默认值补齐未设置（<=0）的尺寸参数；零值 Style 等同于 DefaultStyle。
func (s Style) normalized() Style {
	def := DefaultStyle()
	if s == (Style{}) {
		return def
	}
	if s.Render == "" {
		s.Render = def.Render
	}
	if s.Thickness <= 0 {
		s.Thickness = def.Thickness
	}
	if s.HoverThickness <= 0 {
		s.HoverThickness = s.Thickness + (def.HoverThickness - def.Thickness)
	}
	if s.RadiusDivisor <= 0 {
		s.RadiusDivisor = def.RadiusDivisor
	}
	if s.Leader == (geometry.LeaderStyle{}) {
		s.Leader = def.Leader
	}
	return s
}
