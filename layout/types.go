package layout

import "github.com/ByLCY/ringchart/geometry"

// 该文件定义布局结果，供布局计算、渲染与调试 JSON 共用。

// State 标记一次布局是否产生了几何。
type State string

const (
	StateReady  State = "ready"
	StateNoData State = "no-data"
)

// NoDataMessage 是无数据时显示的提示。
const NoDataMessage = "No Data Available"

// Result 保存一次渲染所需的全部图元。每次数据或尺寸变化都会重新生成，不做增量修改。
type Result struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	State   State   `json:"state"`
	Message string  `json:"message,omitempty"`
	Style   Style   `json:"style"`

	Title       string    `json:"title"`
	CenterLabel string    `json:"centerLabel"`
	Total       float64   `json:"total"`
	Ring        Ring      `json:"ring"`
	Segments    []Segment `json:"segments"`
	// Texts 包含标题、中心文本与两段的标签块。
	Texts []TextBox `json:"texts"`
}

// Ready reports whether geometry was computed.
func (r *Result) Ready() bool { return r != nil && r.State == StateReady }

// Ring 环的中心与半径（像素）。
// 描边样式只使用 Radius（线宽中心）；填充样式使用 InnerRadius/OuterRadius。
type Ring struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	Radius      float64 `json:"radius"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
	Thickness   float64 `json:"thickness"`
}

// Segment 是一段已计算好几何的环。
type Segment struct {
	ID     string              `json:"id"`
	Label  string              `json:"label"`
	Value  float64             `json:"value"`
	Share  float64             `json:"share"`
	Color  Color               `json:"color"`
	Span   geometry.Span       `json:"span"`
	Path   string              `json:"path"`
	Fill   bool                `json:"fill"` // true 为环形扇区填充，false 为圆头描边
	Leader geometry.LeaderLine `json:"leader"`
}

// TextBox 表示一个已经排好坐标的文本块，Lines 依次以 DY 相对上一行偏移。
type TextBox struct {
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Anchor string     `json:"anchor"` // start/middle/end
	Class  string     `json:"class"`
	Lines  []TextLine `json:"lines"`
}

// TextLine 表示文本块中的一行。
type TextLine struct {
	Content string  `json:"content"`
	DY      float64 `json:"dy"`
	Class   string  `json:"class"`
}

// Text classes shared by the renderers.
const (
	ClassTitle       = "chart-title"
	ClassCenterLabel = "center-label"
	ClassCenterValue = "center-value"
	ClassLabelText   = "label-text"
	ClassLabelValue  = "label-val"
	ClassLabelPct    = "label-pct"
	ClassNoData      = "no-data"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}
