package layout

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/ringchart/geometry"
)

const eps = 1e-9

func f64(v float64) *float64 { return &v }

func balanceInput(a, b *float64) Input {
	return Input{
		Title:       "Asset Breakdown",
		CenterLabel: "Asset",
		Segments: [2]SegmentInput{
			{Label: "Liabilities", Value: a, Color: "#ed8b36"},
			{Label: "Equities", Value: b, Color: "#4472c4"},
		},
		Currency: "$",
		Width:    400,
		Height:   300,
	}
}

func TestBuildNoDataWhenValueMissing(t *testing.T) {
	for _, in := range []Input{
		balanceInput(nil, f64(1)),
		balanceInput(f64(1), nil),
		balanceInput(nil, nil),
	} {
		res, err := Build(in, BuildOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.State != StateNoData || res.Message != NoDataMessage {
			t.Fatalf("expected no-data state, got %q", res.State)
		}
		if len(res.Segments) != 0 {
			t.Fatalf("no-data result must not carry segments")
		}
		if len(res.Texts) != 1 || res.Texts[0].Lines[0].Content != NoDataMessage {
			t.Fatalf("no-data result must only show the message, got %+v", res.Texts)
		}
	}
}

func TestBuildZeroContainer(t *testing.T) {
	in := balanceInput(f64(1), f64(2))
	in.Width = 0
	res, err := Build(in, BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Ready() {
		t.Fatalf("zero-width container must not produce geometry")
	}
}

func TestBuildConcreteScenario(t *testing.T) {
	res, err := Build(balanceInput(f64(8371), f64(12356)), BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !res.Ready() {
		t.Fatalf("expected ready state")
	}
	if res.Total != 20727 {
		t.Fatalf("total: got %g want 20727", res.Total)
	}
	if math.Abs(res.Segments[0].Share-0.4039) > 1e-3 {
		t.Fatalf("shareA: got %g", res.Segments[0].Share)
	}

	ring := res.Ring
	if ring.CX != 200 || ring.CY != 160 {
		t.Fatalf("ring center: got (%g,%g)", ring.CX, ring.CY)
	}
	if math.Abs(ring.Radius-300/3.2) > eps {
		t.Fatalf("radius: got %g", ring.Radius)
	}

	// A 在参考角左侧（逆时针），B 在右侧
	if res.Segments[0].Leader.Side != geometry.SideLeft || res.Segments[1].Leader.Side != geometry.SideRight {
		t.Fatalf("unexpected label sides: %v %v", res.Segments[0].Leader.Side, res.Segments[1].Leader.Side)
	}
	if res.Segments[0].Leader.TextAnchor != "end" || res.Segments[1].Leader.TextAnchor != "start" {
		t.Fatalf("unexpected text anchors")
	}

	texts := map[string]string{}
	for _, tb := range res.Texts {
		for _, ln := range tb.Lines {
			texts[ln.Content] = ln.Class
		}
	}
	for content, class := range map[string]string{
		"Asset Breakdown": ClassTitle,
		"Asset":           ClassCenterLabel,
		"$20,727":         ClassCenterValue,
		"$8,371":          ClassLabelValue,
		"$12,356":         ClassLabelValue,
		"40%":             ClassLabelPct,
		"60%":             ClassLabelPct,
	} {
		if texts[content] != class {
			t.Fatalf("text %q: got class %q want %q (all: %v)", content, texts[content], class, texts)
		}
	}
}

func TestBuildZeroStyleMeetsAtTop(t *testing.T) {
	res, err := Build(balanceInput(f64(8371), f64(12356)), BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if res.Style != DefaultStyle() {
		t.Fatalf("zero style must resolve to the default, got %+v", res.Style)
	}
	a, b := res.Segments[0].Span, res.Segments[1].Span
	gap := DefaultStyle().Gap
	if math.Abs(a.End-(geometry.ReferenceTop-gap/2)) > eps || math.Abs(b.Start-(geometry.ReferenceTop+gap/2)) > eps {
		t.Fatalf("segments must meet at 12 o'clock: A=%v B=%v", a, b)
	}
	if math.Abs(a.Sweep()-(2.5376-gap)) > 1e-3 {
		t.Fatalf("sweepA: got %g", a.Sweep()+gap)
	}
}

func TestBuildTextPositions(t *testing.T) {
	res, err := Build(balanceInput(f64(1), f64(1)), BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	var title, center, value TextBox
	for _, tb := range res.Texts {
		switch tb.Class {
		case ClassTitle:
			title = tb
		case ClassCenterLabel:
			center = tb
		case ClassCenterValue:
			value = tb
		}
	}
	if title.X != 10 || title.Y != 25 || title.Anchor != "start" {
		t.Fatalf("title position: %+v", title)
	}
	if center.Y != res.Ring.CY-5 || value.Y != res.Ring.CY+20 || center.Anchor != "middle" {
		t.Fatalf("center text positions: %+v %+v", center, value)
	}
	for _, seg := range res.Segments {
		found := false
		for _, tb := range res.Texts {
			if tb.Class != ClassLabelText || tb.X != seg.Leader.Anchor.X || tb.Y != seg.Leader.Anchor.Y {
				continue
			}
			found = true
			if len(tb.Lines) != 3 || tb.Lines[1].DY != 16 || tb.Lines[2].DY != 14 {
				t.Fatalf("label block layout: %+v", tb.Lines)
			}
		}
		if !found {
			t.Fatalf("label block for %s missing", seg.ID)
		}
	}
}

func TestBuildStrokedVersusWedge(t *testing.T) {
	stroked, err := Build(balanceInput(f64(1), f64(3)), BuildOptions{Style: DefaultStyle()})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	wedge, err := Build(balanceInput(f64(1), f64(3)), BuildOptions{Style: WedgeStyle()})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, seg := range stroked.Segments {
		if seg.Fill || strings.Contains(seg.Path, "Z") || strings.Contains(seg.Path, " L ") {
			t.Fatalf("stroked segment must be an open arc: %s", seg.Path)
		}
	}
	for _, seg := range wedge.Segments {
		if !seg.Fill || !strings.HasSuffix(seg.Path, "Z") {
			t.Fatalf("wedge segment must be closed: %s", seg.Path)
		}
	}
	// 填充样式两段首尾相接
	a, b := wedge.Segments[0].Span, wedge.Segments[1].Span
	if math.Abs(a.End-b.Start) > eps {
		t.Fatalf("contiguous spans must meet at the reference: %v %v", a, b)
	}
	if math.Abs((a.Sweep()+b.Sweep())-geometry.FullTurn) > 1e-9 {
		t.Fatalf("contiguous spans must cover the full turn")
	}
	// 引线从外半径起算
	lead := wedge.Segments[1].Leader
	dist := math.Hypot(lead.Points[0].X-wedge.Ring.CX, lead.Points[0].Y-wedge.Ring.CY)
	if math.Abs(dist-(wedge.Ring.OuterRadius+10)) > 1e-9 {
		t.Fatalf("wedge leader must start 10px outside the outer radius, got %g", dist)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	in := balanceInput(f64(8371), f64(12356))
	a, err := Build(in, BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	b, err := Build(in, BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated builds differ")
	}
}

func TestBuildClampsNegativeValues(t *testing.T) {
	res, err := Build(balanceInput(f64(-5), f64(10)), BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if res.Segments[0].Value != 0 || res.Total != 10 {
		t.Fatalf("negative value must be clamped to zero, got %g total %g", res.Segments[0].Value, res.Total)
	}
	for _, seg := range res.Segments {
		if strings.Contains(seg.Path, "NaN") || strings.Contains(seg.Path, "Inf") {
			t.Fatalf("path contains invalid number: %s", seg.Path)
		}
	}
}

func TestBuildZeroTotal(t *testing.T) {
	res, err := Build(balanceInput(f64(0), f64(0)), BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !res.Ready() || res.Total != 0 {
		t.Fatalf("0/0 is a ready chart with zero total")
	}
	for _, seg := range res.Segments {
		if seg.Share != 0 {
			t.Fatalf("shares must be zero, got %g", seg.Share)
		}
	}
}

func TestBuildInvalidColorFallsBack(t *testing.T) {
	in := balanceInput(f64(1), f64(1))
	in.Segments[0].Color = "orange"
	res, err := Build(in, BuildOptions{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := res.Segments[0].Color.Hex(); got != "#ed8b36" {
		t.Fatalf("fallback color: got %s", got)
	}
}

func TestBuildInvalidGap(t *testing.T) {
	style := DefaultStyle()
	style.Gap = 4
	if _, err := Build(balanceInput(f64(1), f64(1)), BuildOptions{Style: style}); err == nil {
		t.Fatalf("expected error for gap >= π")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]string{"#abc": "#aabbcc", "#4472C4": "#4472c4", " #000 ": "#000000"}
	for in, want := range cases {
		c, err := ParseColor(in)
		if err != nil || c.Hex() != want {
			t.Fatalf("ParseColor(%q): got %s, %v", in, c.Hex(), err)
		}
	}
	for _, bad := range []string{"#12", "#11223344", "#ggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q): expected error", bad)
		}
	}
}

func TestParseRenderStyle(t *testing.T) {
	for in, want := range map[string]RenderStyle{"": StyleStroked, "stroked": StyleStroked, "filled": StyleWedge, "wedge": StyleWedge} {
		got, err := ParseRenderStyle(in)
		if err != nil || got != want {
			t.Fatalf("ParseRenderStyle(%q): got %q, %v", in, got, err)
		}
	}
	if _, err := ParseRenderStyle("pie"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMarshalDebugIncludesDegrees(t *testing.T) {
	res, err := Build(balanceInput(f64(1), f64(1)), BuildOptions{Style: WedgeStyle()})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	data, err := MarshalDebug(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"degrees"`) || !strings.Contains(out, `"sweep": 180`) {
		t.Fatalf("debug json missing degree spans:\n%s", out)
	}
	if !strings.Contains(out, `"state": "ready"`) {
		t.Fatalf("debug json must embed the result")
	}
}
