package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ByLCY/ringchart/layout"
)

// FontFamily is the CSS font stack shared by every surface.
const FontFamily = `"72", "Segoe UI", Arial, sans-serif`

// 引导线与无数据提示的固定样式。
const (
	LeaderColor = "#bbb"
	LeaderWidth = 1.0
	NoDataColor = "#999"
)

// TextStyle 描述一个文本类的字号（像素）、字重与颜色。
type TextStyle struct {
	Size   float64
	Bold   bool
	Italic bool
	Color  string
}

var textStyles = map[string]TextStyle{
	layout.ClassTitle:       {Size: 18, Bold: true, Color: "#444"},
	layout.ClassCenterLabel: {Size: 14, Color: "#555"},
	layout.ClassCenterValue: {Size: 18, Bold: true, Color: "#333"},
	layout.ClassLabelText:   {Size: 12, Color: "#666"},
	layout.ClassLabelValue:  {Size: 14, Bold: true, Color: "#333"},
	layout.ClassLabelPct:    {Size: 12, Color: "#888"},
	layout.ClassNoData:      {Size: 14, Italic: true, Color: NoDataColor},
}

// TextStyleFor returns the style of a text class; unknown classes get the label style.
func TextStyleFor(class string) TextStyle {
	if s, ok := textStyles[class]; ok {
		return s
	}
	return textStyles[layout.ClassLabelText]
}

// Stylesheet 生成内嵌 CSS：文本类、描边段（圆头、悬停加粗）、填充段与引导线。
func Stylesheet(style layout.Style) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "svg{font-family:%s}", FontFamily)

	classes := make([]string, 0, len(textStyles))
	for class := range textStyles {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		ts := textStyles[class]
		fmt.Fprintf(&sb, ".%s{font-size:%gpx;fill:%s", class, ts.Size, ts.Color)
		if ts.Bold {
			sb.WriteString(";font-weight:bold")
		}
		if ts.Italic {
			sb.WriteString(";font-style:italic")
		}
		sb.WriteString("}")
	}

	fmt.Fprintf(&sb, "path.segment{fill:none;stroke-width:%g;stroke-linecap:round;cursor:pointer;transition:stroke-width .3s,opacity .3s}", style.Thickness)
	fmt.Fprintf(&sb, "path.segment:hover{stroke-width:%g;opacity:.9}", style.HoverThickness)
	sb.WriteString("path.wedge{stroke:#fff;stroke-width:1;cursor:pointer;transition:opacity .3s}")
	sb.WriteString("path.wedge:hover{opacity:.85}")
	fmt.Fprintf(&sb, "polyline{fill:none;stroke:%s;stroke-width:%g}", LeaderColor, LeaderWidth)
	return sb.String()
}
