package widget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/ringchart/binding"
	"github.com/ByLCY/ringchart/dsl"
	"github.com/ByLCY/ringchart/geometry"
	"github.com/ByLCY/ringchart/layout"
)

// Config is a chart description compiled against a data payload.
type Config struct {
	Name       string
	Properties Properties
	Data       Data
	Style      layout.Style
	Tooltips   []TooltipItem
	Width      float64
	Height     float64
	Locale     string
}

// FromDocument 将 DSL 文档与数据绑定，生成 Widget 可直接应用的配置。
func FromDocument(doc *dsl.Document, data any) (Config, error) {
	return Compile(doc, data, layout.DefaultStyle())
}

// Compile is FromDocument with a caller-supplied base style that the
// document's style block overrides field by field.
func Compile(doc *dsl.Document, data any, base layout.Style) (Config, error) {
	if doc == nil || doc.Body == nil {
		return Config{}, fmt.Errorf("widget: 空文档")
	}
	cfg := Config{
		Name:       doc.Name,
		Properties: DefaultProperties(),
		Style:      base,
	}
	segments := 0
	for _, stmt := range doc.Body.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := cfg.assign(stmt.Assignment, data); err != nil {
				return Config{}, err
			}
		case stmt.Command != nil:
			cmd := stmt.Command
			switch cmd.Name {
			case "style":
				if err := cfg.applyStyle(cmd, data); err != nil {
					return Config{}, err
				}
			case "segment":
				if segments >= 2 {
					return Config{}, fmt.Errorf("第 %d 行: 环形图只支持两个分段", cmd.Pos.Line)
				}
				if err := cfg.applySegment(segments, cmd, data); err != nil {
					return Config{}, err
				}
				segments++
			case "tooltip":
				item, err := tooltipItem(cmd, data)
				if err != nil {
					return Config{}, err
				}
				cfg.Tooltips = append(cfg.Tooltips, item)
			default:
				return Config{}, fmt.Errorf("第 %d 行: 未知的指令 %q", cmd.Pos.Line, cmd.Name)
			}
		}
	}
	return cfg, nil
}

func (c *Config) assign(a *dsl.Assignment, data any) error {
	raw := a.Value.Raw()
	text := binding.Interpolate(raw, data)
	switch a.Key {
	case "title":
		c.Properties.ChartTitle = text
	case "center":
		c.Properties.CenterLabel = text
	case "currency":
		c.Data.Currency = text
	case "unit":
		c.Data.Unit = text
	case "locale":
		c.Locale = text
	case "width", "height":
		l := layout.ParseLength(text)
		if l.Value <= 0 {
			return fmt.Errorf("第 %d 行: %s 需要正数，得到 %q", a.Pos.Line, a.Key, raw)
		}
		if a.Key == "width" {
			c.Width = l.ToPX()
		} else {
			c.Height = l.ToPX()
		}
	default:
		return fmt.Errorf("第 %d 行: 未知的属性 %q", a.Pos.Line, a.Key)
	}
	return nil
}

func (c *Config) applyStyle(cmd *dsl.Command, data any) error {
	if cmd.Block == nil {
		return nil
	}
	for _, stmt := range cmd.Block.Statements {
		a := stmt.Assignment
		if a == nil {
			return fmt.Errorf("第 %d 行: style 中只允许 key: value", cmd.Pos.Line)
		}
		text := binding.Interpolate(a.Value.Raw(), data)
		var err error
		switch a.Key {
		case "render":
			c.Style.Render, err = layout.ParseRenderStyle(text)
		case "layout":
			c.Style.Layout, err = geometry.ParseLayout(text)
		case "orientation":
			c.Style.Orientation, err = geometry.ParseOrientation(text)
		case "gap":
			c.Style.Gap, err = parseFloat(text)
		case "thickness":
			c.Style.Thickness = layout.ParseLength(text).ToPX()
		case "hover-thickness":
			c.Style.HoverThickness = layout.ParseLength(text).ToPX()
		case "radius-divisor":
			c.Style.RadiusDivisor, err = parseFloat(text)
		default:
			err = fmt.Errorf("未知的样式 %q", a.Key)
		}
		if err != nil {
			return fmt.Errorf("第 %d 行: %w", a.Pos.Line, err)
		}
	}
	return nil
}

func (c *Config) applySegment(idx int, cmd *dsl.Command, data any) error {
	label, color := "", ""
	var value *float64
	if len(cmd.Args) > 0 {
		label = cmd.Args[0].Value
	}
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			a := stmt.Assignment
			if a == nil {
				continue
			}
			raw := a.Value.Raw()
			switch a.Key {
			case "label":
				label = binding.Interpolate(raw, data)
			case "color":
				color = binding.Interpolate(raw, data)
			case "value":
				v, err := segmentValue(raw, data)
				if err != nil {
					return fmt.Errorf("第 %d 行: %w", a.Pos.Line, err)
				}
				value = v
			default:
				return fmt.Errorf("第 %d 行: segment 不支持属性 %q", a.Pos.Line, a.Key)
			}
		}
	}
	if idx == 0 {
		c.Properties.Label1 = nonEmpty(label, c.Properties.Label1)
		c.Properties.Color1 = nonEmpty(color, c.Properties.Color1)
		c.Data.Value1 = value
	} else {
		c.Properties.Label2 = nonEmpty(label, c.Properties.Label2)
		c.Properties.Color2 = nonEmpty(color, c.Properties.Color2)
		c.Data.Value2 = value
	}
	return nil
}

// segmentValue 绑定表达式取不到值时视为缺失数据；字面量无法解析则报错。
func segmentValue(raw string, data any) (*float64, error) {
	if binding.IsExpression(raw) {
		v, ok := binding.Number(raw, data)
		if !ok {
			return nil, nil
		}
		return &v, nil
	}
	v, err := parseFloat(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func tooltipItem(cmd *dsl.Command, data any) (TooltipItem, error) {
	var item TooltipItem
	if len(cmd.Args) > 0 {
		item.Group = binding.Interpolate(cmd.Args[0].Value, data)
	}
	if cmd.Block == nil {
		return item, fmt.Errorf("第 %d 行: tooltip 需要属性块", cmd.Pos.Line)
	}
	for _, stmt := range cmd.Block.Statements {
		a := stmt.Assignment
		if a == nil {
			continue
		}
		raw := a.Value.Raw()
		switch a.Key {
		case "group":
			item.Group = binding.Interpolate(raw, data)
		case "label":
			item.Label = binding.Interpolate(raw, data)
		case "value":
			v, ok := binding.Number(raw, data)
			if !ok {
				return item, fmt.Errorf("第 %d 行: tooltip 数值 %q 无法解析", a.Pos.Line, raw)
			}
			item.Value = v
		case "currency":
			item.Currency = binding.Interpolate(raw, data)
		case "unit":
			item.Unit = binding.Interpolate(raw, data)
		default:
			return item, fmt.Errorf("第 %d 行: tooltip 不支持属性 %q", a.Pos.Line, a.Key)
		}
	}
	return item, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("数值 %q 无法解析", s)
	}
	return v, nil
}

func nonEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
