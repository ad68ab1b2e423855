package renderer

import "github.com/ByLCY/ringchart/layout"

// Renderer 将布局结果输出为最终表面，例如 SVG、PDF 或 PNG。
// 每次调用都生成完整的新表面，不依赖上一次的输出。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Func adapts a plain function to Renderer.
type Func func(result *layout.Result) ([]byte, error)

// Render calls f.
func (f Func) Render(result *layout.Result) ([]byte, error) { return f(result) }
