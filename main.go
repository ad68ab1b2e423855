package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/ringchart/config"
	"github.com/ByLCY/ringchart/dsl"
	"github.com/ByLCY/ringchart/format"
	"github.com/ByLCY/ringchart/geometry"
	"github.com/ByLCY/ringchart/layout"
	"github.com/ByLCY/ringchart/logger"
	"github.com/ByLCY/ringchart/renderer"
	canvasrenderer "github.com/ByLCY/ringchart/renderer/canvas"
	svgrenderer "github.com/ByLCY/ringchart/renderer/svg"
	"github.com/ByLCY/ringchart/widget"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg *config.Config
	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ringchart",
	Short:         "两段环形图渲染工具",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		log, err = logger.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ringchart %s (%s)\n", version, commit)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a chart description to SVG, PDF or PNG",
	Example: `  ringchart render --in chart.ring --data '{"assets":{"liabilities":8371}}' --out out/chart.svg
  ringchart render --value1 8371 --value2 12356 --format png --out chart.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := renderOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := run(opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已生成 %s：%s\n", strings.ToUpper(opts.Format), opts.Output)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "配置文件路径（默认查找 ./ringchart.yaml）")
	rootCmd.PersistentFlags().String("log-level", "", "日志级别 (debug, info, warn, error)")

	f := renderCmd.Flags()
	f.String("in", "", "DSL 文件路径；为空时使用默认属性")
	f.String("data", "", "绑定到 DSL 的 JSON 数据，@path 表示从文件读取")
	f.String("tooltips", "", "tooltip 明细 JSON 数组，@path 表示从文件读取")
	f.String("out", "output/chart.svg", "输出路径")
	f.String("format", "", "输出格式 svg/pdf/png（默认由配置或输出扩展名决定）")
	f.Float64("width", 0, "容器宽度（像素）")
	f.Float64("height", 0, "容器高度（像素）")
	f.Float64("value1", -1, "第一段数值（未指定 DSL 时使用）")
	f.Float64("value2", -1, "第二段数值（未指定 DSL 时使用）")
	f.String("currency", "", "货币前缀")
	f.String("debug", "", "布局调试 JSON 输出路径")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
}

// renderOptions 汇总一次渲染的全部输入。
type renderOptions struct {
	Input    string
	Output   string
	Debug    string
	Format   string
	Width    float64
	Height   float64
	Data     any
	Tooltips []byte
	Value1   *float64
	Value2   *float64
	Currency string
}

func renderOptionsFromFlags(cmd *cobra.Command) (renderOptions, error) {
	f := cmd.Flags()
	var opts renderOptions
	opts.Input, _ = f.GetString("in")
	opts.Output, _ = f.GetString("out")
	opts.Debug, _ = f.GetString("debug")
	opts.Format, _ = f.GetString("format")
	opts.Width, _ = f.GetFloat64("width")
	opts.Height, _ = f.GetFloat64("height")
	opts.Currency, _ = f.GetString("currency")

	if opts.Format == "" {
		opts.Format = formatFromPath(opts.Output, cfg.Render.Format)
	}
	if f.Changed("value1") {
		v, _ := f.GetFloat64("value1")
		opts.Value1 = &v
	}
	if f.Changed("value2") {
		v, _ := f.GetFloat64("value2")
		opts.Value2 = &v
	}

	dataArg, _ := f.GetString("data")
	raw, err := readArg(dataArg)
	if err != nil {
		return opts, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &opts.Data); err != nil {
			return opts, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}
	tipArg, _ := f.GetString("tooltips")
	if opts.Tooltips, err = readArg(tipArg); err != nil {
		return opts, err
	}
	return opts, nil
}

// run 串联解析、布局与渲染。
func run(opts renderOptions) error {
	r, err := newRenderer(opts.Format)
	if err != nil {
		return err
	}
	style, err := baseStyle(cfg.Style)
	if err != nil {
		return err
	}

	w := widget.New(widget.Options{
		Style:     style,
		Formatter: format.New(cfg.Locale),
		Renderer:  r,
		Logger:    log,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
	})

	if opts.Input != "" {
		file, err := os.Open(opts.Input)
		if err != nil {
			return fmt.Errorf("无法打开 DSL 文件 %s: %w", opts.Input, err)
		}
		defer file.Close()

		doc, err := dsl.Parse(file)
		if err != nil {
			return fmt.Errorf("解析 DSL 失败: %w", err)
		}
		chart, err := widget.Compile(doc, opts.Data, style)
		if err != nil {
			return fmt.Errorf("编译图表失败: %w", err)
		}
		if _, err := w.Apply(chart); err != nil {
			return fmt.Errorf("布局计算失败: %w", err)
		}
	} else if _, err := w.SetAssetData(opts.Value1, opts.Value2, opts.Currency, ""); err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if len(opts.Tooltips) > 0 {
		if err := w.SetTooltipData(opts.Tooltips); err != nil {
			return err
		}
	}

	var frame widget.Frame
	if opts.Width > 0 || opts.Height > 0 {
		width, height := opts.Width, opts.Height
		last := w.Last().Result
		if width <= 0 && last != nil {
			width = last.Width
		}
		if height <= 0 && last != nil {
			height = last.Height
		}
		frame, err = w.Resize(width, height)
	} else {
		frame, err = w.Render()
	}
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	log.Info("chart rendered",
		zap.String("state", string(frame.Result.State)),
		zap.Float64("total", frame.Result.Total),
		zap.String("format", opts.Format))

	if opts.Debug != "" {
		if err := writeDebug(frame.Result, opts.Debug); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(opts.Output, frame.Surface, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func newRenderer(name string) (renderer.Renderer, error) {
	switch strings.ToLower(name) {
	case "svg":
		return svgrenderer.NewRenderer(svgrenderer.Options{Minify: cfg.Render.Minify}), nil
	case "pdf", "png":
		f, err := canvasrenderer.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
			Format:   f,
			Scale:    cfg.Render.Scale,
			FontFile: cfg.Render.FontFile,
			Logger:   log,
		}), nil
	}
	return nil, fmt.Errorf("不支持的输出格式 %q", name)
}

// baseStyle 以描边样式为基础，应用配置文件中的覆盖项。
func baseStyle(sc config.StyleConfig) (layout.Style, error) {
	render, err := layout.ParseRenderStyle(sc.Render)
	if err != nil {
		return layout.Style{}, err
	}
	style := layout.DefaultStyle()
	if render == layout.StyleWedge {
		style = layout.WedgeStyle()
	}
	if sc.Layout != "" {
		if style.Layout, err = geometry.ParseLayout(sc.Layout); err != nil {
			return layout.Style{}, err
		}
	}
	if style.Orientation, err = geometry.ParseOrientation(sc.Orientation); err != nil {
		return layout.Style{}, err
	}
	if sc.Gap > 0 {
		style.Gap = sc.Gap
	}
	if sc.Thickness > 0 {
		style.Thickness = sc.Thickness
		style.HoverThickness = sc.Thickness + 4
	}
	return style, nil
}

func formatFromPath(path, fallback string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "svg", "pdf", "png":
		return ext
	}
	return fallback
}

func readArg(arg string) ([]byte, error) {
	if arg == "" {
		return nil, nil
	}
	if strings.HasPrefix(arg, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return nil, fmt.Errorf("读取 %s 失败: %w", arg, err)
		}
		return data, nil
	}
	return []byte(arg), nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
