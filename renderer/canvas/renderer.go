package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"go.uber.org/zap"

	"github.com/ByLCY/ringchart/layout"
	"github.com/ByLCY/ringchart/renderer"
)

// Format 输出格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts "pdf" and "png".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	}
	return FormatPDF, fmt.Errorf("canvas: 不支持的输出格式 %q", s)
}

// 系统字体候选，按顺序尝试。
var systemFonts = []string{"Arial", "Helvetica", "DejaVu Sans", "Liberation Sans", "Noto Sans"}

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	format   Format
	scale    float64 // PNG 每像素的采样倍数
	fontFile string
	fontName string
	log      *zap.Logger

	fontMu     sync.Mutex
	fontLoaded bool
	family     *canvas.FontFamily
	styles     map[canvas.FontStyle]bool
	fontErr    error
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Format   Format
	Scale    float64 // PNG 放大倍数，默认 2
	FontFile string  // 指定 TTF/OTF 文件时不再查找系统字体
	FontName string  // 系统字体名，优先于内置候选
	Logger   *zap.Logger
}

// NewRenderer creates a PDF renderer with system fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer for the given format.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:   opts.Format,
		scale:    opts.Scale,
		fontFile: opts.FontFile,
		fontName: opts.FontName,
		log:      opts.Logger,
		styles:   map[canvas.FontStyle]bool{},
	}
	if r.format == "" {
		r.format = FormatPDF
	}
	if r.scale <= 0 {
		r.scale = 2
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Render 将结果绘制为 PDF 或 PNG。布局坐标为像素，画布单位为毫米。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if !(result.Width > 0) || !(result.Height > 0) {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", result.Width, result.Height)
	}

	width, height := toMm(result.Width), toMm(result.Height)
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if err := r.drawChart(ctx, result); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch r.format {
	case FormatPNG:
		dpmm := r.scale / layout.PxToMm
		img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		writer := pdf.New(&buf, width, height, nil)
		writer.SetInfo(result.Title, result.CenterLabel, "", "", "ringchart")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawChart(ctx *canvas.Context, result *layout.Result) error {
	// 白色背景
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(toMm(result.Width), toMm(result.Height)))

	if result.Ready() {
		if err := r.drawSegments(ctx, result); err != nil {
			return err
		}
		r.drawLeaders(ctx, result.Segments)
	}
	return r.drawTexts(ctx, result.Texts)
}

// drawSegments 重新解析布局生成的 SVG 路径，保证与 SVG 输出几何一致。
func (r *Renderer) drawSegments(ctx *canvas.Context, result *layout.Result) error {
	for _, seg := range result.Segments {
		path, err := canvas.ParseSVGPath(seg.Path)
		if err != nil {
			return fmt.Errorf("解析 %s 路径失败: %w", seg.ID, err)
		}
		path = path.Scale(layout.PxToMm, layout.PxToMm)
		col := colorFromLayout(seg.Color)
		if seg.Fill {
			ctx.SetFillColor(col)
			ctx.SetStrokeColor(canvas.White)
			ctx.SetStrokeWidth(toMm(1))
		} else {
			ctx.SetFillColor(canvas.Transparent)
			ctx.SetStrokeColor(col)
			ctx.SetStrokeWidth(toMm(result.Ring.Thickness))
			ctx.SetStrokeCapper(canvas.RoundCap)
		}
		ctx.DrawPath(0, 0, path)
	}
	ctx.SetStrokeCapper(canvas.ButtCap)
	return nil
}

// drawLeaders 绘制三点折线。
func (r *Renderer) drawLeaders(ctx *canvas.Context, segments []layout.Segment) {
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(canvas.Hex(renderer.LeaderColor))
	ctx.SetStrokeWidth(toMm(renderer.LeaderWidth))
	for _, seg := range segments {
		pts := seg.Leader.Points
		p := &canvas.Path{}
		p.MoveTo(toMm(pts[0].X), toMm(pts[0].Y))
		for _, pt := range pts[1:] {
			p.LineTo(toMm(pt.X), toMm(pt.Y))
		}
		ctx.DrawPath(0, 0, p)
	}
}

// drawTexts 文本坐标为基线位置；字体不可用时只记录日志，图形照常输出。
func (r *Renderer) drawTexts(ctx *canvas.Context, texts []layout.TextBox) error {
	if len(texts) == 0 {
		return nil
	}
	family, err := r.ensureFontFamily()
	if err != nil {
		r.log.Warn("no usable font, text skipped", zap.Error(err))
		return nil
	}
	for _, tb := range texts {
		align := textAlign(tb.Anchor)
		x := toMm(tb.X)
		y := tb.Y
		for _, line := range tb.Lines {
			y += line.DY
			if line.Content == "" {
				continue
			}
			face := r.fontFace(family, renderer.TextStyleFor(line.Class))
			ctx.DrawText(x, toMm(y), canvas.NewTextLine(face, line.Content, align))
		}
	}
	return nil
}

func textAlign(anchor string) canvas.TextAlign {
	switch anchor {
	case "middle":
		return canvas.Center
	case "end":
		return canvas.Right
	default:
		return canvas.Left
	}
}

func (r *Renderer) fontFace(family *canvas.FontFamily, ts renderer.TextStyle) *canvas.FontFace {
	style := canvas.FontRegular
	if ts.Bold && r.hasStyle(canvas.FontBold) {
		style = canvas.FontBold
	}
	// CSS 像素字号转换为 pt
	return family.Face(ts.Size*layout.PxToPt, canvas.Hex(ts.Color), style, canvas.FontNormal)
}

func (r *Renderer) hasStyle(style canvas.FontStyle) bool {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	return r.styles[style]
}

// ensureFontFamily 只加载一次；常规字重必须可用，粗体缺失时退回常规字重。
func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.fontLoaded {
		return r.family, r.fontErr
	}
	r.fontLoaded = true

	family := canvas.NewFontFamily("ringchart")
	if r.fontFile != "" {
		if err := family.LoadFontFile(r.fontFile, canvas.FontRegular); err != nil {
			r.fontErr = fmt.Errorf("加载字体文件 %s 失败: %w", r.fontFile, err)
			return nil, r.fontErr
		}
		r.styles[canvas.FontRegular] = true
		r.family = family
		return family, nil
	}

	candidates := systemFonts
	if r.fontName != "" {
		candidates = append([]string{r.fontName}, systemFonts...)
	}
	var lastErr error
	for _, name := range candidates {
		if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
			lastErr = err
			continue
		}
		r.styles[canvas.FontRegular] = true
		if err := family.LoadSystemFont(name, canvas.FontBold); err == nil {
			r.styles[canvas.FontBold] = true
		}
		r.family = family
		r.log.Debug("system font loaded", zap.String("font", name))
		return family, nil
	}
	r.fontErr = fmt.Errorf("找不到可用的系统字体: %w", lastErr)
	return nil, r.fontErr
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toMm 将像素(px)转换为毫米(mm)。
func toMm(px float64) float64 { return px * layout.PxToMm }
