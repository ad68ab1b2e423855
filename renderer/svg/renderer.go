// Package svgrenderer draws a layout result as a standalone SVG document.
package svgrenderer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/tdewolff/minify/v2"
	minsvg "github.com/tdewolff/minify/v2/svg"

	"github.com/ByLCY/ringchart/geometry"
	"github.com/ByLCY/ringchart/layout"
	"github.com/ByLCY/ringchart/renderer"
)

const mediaType = "image/svg+xml"

// Options configures the SVG renderer.
type Options struct {
	Minify bool
}

// Renderer writes SVG via github.com/ajstarks/svgo.
type Renderer struct {
	minifier *minify.M
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates an SVG renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{}
	if opts.Minify {
		r.minifier = minify.New()
		r.minifier.AddFunc(mediaType, minsvg.Minify)
	}
	return r
}

// Render 生成完整的 SVG 文档；无数据状态只输出提示文本。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var buf bytes.Buffer
	doc := svg.New(&buf)
	w, h := pixels(result.Width), pixels(result.Height)
	doc.Startview(w, h, 0, 0, w, h)
	doc.Style("text/css", renderer.Stylesheet(result.Style))
	if result.Title != "" {
		doc.Title(result.Title)
	}

	if result.Ready() {
		doc.Gid("ring")
		for _, seg := range result.Segments {
			drawSegment(doc, seg)
		}
		doc.Gend()
		doc.Gid("leaders")
		for _, seg := range result.Segments {
			fmt.Fprintf(doc.Writer, `<polyline id="%s-leader" points="%s"/>`+"\n", seg.ID, seg.Leader.PointsAttr())
		}
		doc.Gend()
	}
	for _, tb := range result.Texts {
		if err := writeText(doc.Writer, tb); err != nil {
			return nil, err
		}
	}
	doc.End()

	if r.minifier == nil {
		return buf.Bytes(), nil
	}
	out, err := r.minifier.Bytes(mediaType, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("压缩 SVG 失败: %w", err)
	}
	return out, nil
}

func drawSegment(doc *svg.SVG, seg layout.Segment) {
	attrs := []string{fmt.Sprintf(`id="%s"`, seg.ID)}
	if seg.Fill {
		attrs = append(attrs, `class="wedge"`, fmt.Sprintf(`fill="%s"`, seg.Color.Hex()))
	} else {
		attrs = append(attrs, `class="segment"`, fmt.Sprintf(`stroke="%s"`, seg.Color.Hex()))
	}
	attrs = append(attrs, fmt.Sprintf(`data-label="%s"`, escape(seg.Label)))
	doc.Path(seg.Path, attrs...)
}

// writeText 输出 <text>，多行时每行一个 tspan，x 与文本块一致，dy 为相对偏移。
func writeText(w io.Writer, tb layout.TextBox) error {
	x, y := geometry.FormatCoord(tb.X), geometry.FormatCoord(tb.Y)
	anchor := tb.Anchor
	if anchor == "" {
		anchor = "start"
	}
	if len(tb.Lines) == 1 && tb.Lines[0].DY == 0 {
		_, err := fmt.Fprintf(w, `<text x="%s" y="%s" text-anchor="%s" class="%s">%s</text>`+"\n",
			x, y, anchor, tb.Class, escape(tb.Lines[0].Content))
		return err
	}
	if _, err := fmt.Fprintf(w, `<text x="%s" y="%s" text-anchor="%s">`, x, y, anchor); err != nil {
		return err
	}
	for _, line := range tb.Lines {
		if _, err := fmt.Fprintf(w, `<tspan x="%s" dy="%s" class="%s">%s</tspan>`,
			x, geometry.FormatCoord(line.DY), line.Class, escape(line.Content)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</text>\n")
	return err
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func pixels(v float64) int {
	if !(v > 0) {
		return 0
	}
	return int(math.Ceil(v))
}
