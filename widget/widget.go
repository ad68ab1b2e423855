// Package widget is the stateful presentation shell around the layout engine.
// It keeps the last host-supplied properties, data and container size, and on
// every change rebuilds the whole chart and replaces the rendered surface.
package widget

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ByLCY/ringchart/format"
	"github.com/ByLCY/ringchart/layout"
	"github.com/ByLCY/ringchart/renderer"
)

// defaultSize 宿主尚未通知尺寸时使用的容器边长。
const defaultSize = 300.0

// Options configures a Widget.
type Options struct {
	Properties Properties
	Style      layout.Style
	Formatter  *format.Formatter
	Renderer   renderer.Renderer // 为空时只计算几何，不生成表面
	Logger     *zap.Logger
	Width      float64
	Height     float64
}

// Frame is the output of one render pass.
type Frame struct {
	Result  *layout.Result
	Surface []byte
}

// Widget is safe for concurrent use; overlapping updates are last-write-wins.
type Widget struct {
	mu       sync.Mutex
	props    Properties
	data     Data
	tooltips []TooltipItem
	width    float64
	height   float64
	style    layout.Style
	format   *format.Formatter
	renderer renderer.Renderer
	log      *zap.Logger
	last     Frame
}

// New creates a widget with no data; its first render is the no-data state.
func New(opts Options) *Widget {
	w := &Widget{
		props:    DefaultProperties().Merge(opts.Properties),
		width:    opts.Width,
		height:   opts.Height,
		style:    opts.Style,
		format:   opts.Formatter,
		renderer: opts.Renderer,
		log:      opts.Logger,
	}
	if w.width == 0 && w.height == 0 {
		w.width, w.height = defaultSize, defaultSize
	}
	if w.style == (layout.Style{}) {
		w.style = layout.DefaultStyle()
	}
	if w.format == nil {
		w.format = format.Default()
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}
	return w
}

// SetAssetData supplies both values (nil means "not available") and the
// optional currency/unit decoration, then re-renders.
func (w *Widget) SetAssetData(value1, value2 *float64, currency, unit string) (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = Data{Value1: copyFloat(value1), Value2: copyFloat(value2), Currency: currency, Unit: unit}
	return w.renderLocked()
}

// Resize records the new container size and re-renders with the previous data.
func (w *Widget) Resize(width, height float64) (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
	return w.renderLocked()
}

// UpdateProperties replaces the style-only properties and re-renders.
func (w *Widget) UpdateProperties(p Properties) (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.props = p
	return w.renderLocked()
}

// SetStyle switches the rendering variant and re-renders.
func (w *Widget) SetStyle(style layout.Style) (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.style = style
	return w.renderLocked()
}

// SetTooltipData 解析 JSON 数组形式的明细。解析失败时保留原有明细，记录日志并返回错误。
func (w *Widget) SetTooltipData(raw []byte) error {
	var items []TooltipItem
	if err := json.Unmarshal(raw, &items); err != nil {
		w.log.Warn("invalid tooltip JSON, keeping previous data", zap.Error(err))
		return fmt.Errorf("解析 tooltip 数据失败: %w", err)
	}
	w.mu.Lock()
	w.tooltips = items
	w.mu.Unlock()
	return nil
}

// SetTooltipItems replaces the tooltip rows directly.
func (w *Widget) SetTooltipItems(items []TooltipItem) {
	w.mu.Lock()
	w.tooltips = append([]TooltipItem(nil), items...)
	w.mu.Unlock()
}

// Tooltip returns the hover content for segment 0 or 1.
func (w *Widget) Tooltip(segment int) (Tooltip, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var label string
	switch segment {
	case 0:
		label = w.props.Label1
	case 1:
		label = w.props.Label2
	default:
		return Tooltip{}, fmt.Errorf("widget: segment index %d out of range", segment)
	}
	return buildTooltip(label, w.tooltips, w.format), nil
}

// Attach subscribes the widget to a builder so every property change re-renders.
func (w *Widget) Attach(b *Builder) {
	b.OnPropertiesChanged(func(evt PropertiesChanged) {
		if _, err := w.UpdateProperties(evt.Properties); err != nil {
			w.log.Error("render after property change failed", zap.Error(err))
		}
	})
}

// Apply loads a compiled chart description in one step.
func (w *Widget) Apply(cfg Config) (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.props = DefaultProperties().Merge(cfg.Properties)
	w.data = cfg.Data
	w.style = cfg.Style
	w.tooltips = append([]TooltipItem(nil), cfg.Tooltips...)
	if cfg.Locale != "" {
		w.format = format.New(cfg.Locale)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		w.width, w.height = cfg.Width, cfg.Height
	}
	return w.renderLocked()
}

// Render recomputes the chart with the current state.
func (w *Widget) Render() (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.renderLocked()
}

// Last returns the most recent frame.
func (w *Widget) Last() Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *Widget) renderLocked() (Frame, error) {
	in := layout.Input{
		Title:       w.props.ChartTitle,
		CenterLabel: w.props.CenterLabel,
		Segments: [2]layout.SegmentInput{
			{Label: w.props.Label1, Value: w.data.Value1, Color: w.props.Color1},
			{Label: w.props.Label2, Value: w.data.Value2, Color: w.props.Color2},
		},
		Currency: w.data.Currency,
		Unit:     w.data.Unit,
		Width:    w.width,
		Height:   w.height,
	}
	res, err := layout.Build(in, layout.BuildOptions{Style: w.style, Formatter: w.format, Logger: w.log})
	if err != nil {
		return Frame{}, err
	}
	frame := Frame{Result: res}
	if w.renderer != nil {
		surface, err := w.renderer.Render(res)
		if err != nil {
			return Frame{}, fmt.Errorf("渲染失败: %w", err)
		}
		frame.Surface = surface
	}
	w.last = frame
	w.log.Debug("chart rendered",
		zap.String("state", string(res.State)),
		zap.Float64("width", w.width),
		zap.Float64("height", w.height),
		zap.Int("surfaceBytes", len(frame.Surface)))
	return frame, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
