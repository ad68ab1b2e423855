package geometry

import (
	"math"
	"strings"
	"testing"
)

func TestPolarToCartesian(t *testing.T) {
	cases := []struct {
		angle float64
		wantX float64
		wantY float64
	}{
		{0, 110, 50},
		{math.Pi / 2, 100, 60},
		{math.Pi, 90, 50},
		{-math.Pi / 2, 100, 40},
	}
	for _, c := range cases {
		p := PolarToCartesian(100, 50, 10, c.angle)
		if math.Abs(p.X-c.wantX) > eps || math.Abs(p.Y-c.wantY) > eps {
			t.Fatalf("angle %g: got (%g,%g) want (%g,%g)", c.angle, p.X, p.Y, c.wantX, c.wantY)
		}
	}
}

func TestDescribeStrokedArcFlags(t *testing.T) {
	// 四分之一圆：起点在 end（3 点钟），终点在 start（12 点钟），small arc，sweep 0
	got := DescribeStrokedArc(100, 100, 50, -math.Pi/2, 0)
	want := "M 150 100 A 50 50 0 0 0 100 50"
	if got != want {
		t.Fatalf("quarter arc:\n got  %q\n want %q", got, want)
	}

	large := DescribeStrokedArc(100, 100, 50, -math.Pi/2, math.Pi)
	fields := strings.Fields(large)
	// M x y A rx ry rot large sweep x y
	if len(fields) != 11 || fields[7] != "1" || fields[8] != "0" {
		t.Fatalf("three-quarter arc must set large-arc=1 sweep=0, got %q", large)
	}
}

func TestDescribeStrokedArcZeroLength(t *testing.T) {
	got := DescribeStrokedArc(10, 10, 5, 1, 1)
	fields := strings.Fields(got)
	if len(fields) != 11 {
		t.Fatalf("degenerate arc must still be a single M/A path, got %q", got)
	}
	if fields[1] != fields[9] || fields[2] != fields[10] {
		t.Fatalf("degenerate arc must start and end at the same point, got %q", got)
	}
	if strings.Contains(got, "NaN") || strings.Contains(got, "Inf") {
		t.Fatalf("path must not contain NaN/Inf: %q", got)
	}
}

// 整圈不能用单条弧线表示（起终点重合会被丢弃），需要拆成两段。
func TestDescribeStrokedArcFullCircle(t *testing.T) {
	got := DescribeStrokedArc(0, 0, 10, -math.Pi/2, 3*math.Pi/2)
	if n := strings.Count(got, "A"); n != 2 {
		t.Fatalf("full circle must be split into 2 arcs, got %d in %q", n, got)
	}
}

func TestDescribeAnnularWedgeStructure(t *testing.T) {
	got := DescribeAnnularWedge(100, 100, 30, 50, -math.Pi/2, 0)
	want := "M 150 100 A 50 50 0 0 0 100 50 L 100 70 A 30 30 0 0 1 130 100 Z"
	if got != want {
		t.Fatalf("wedge:\n got  %q\n want %q", got, want)
	}
}

func TestDescribeAnnularWedgeFullRing(t *testing.T) {
	got := DescribeAnnularWedge(0, 0, 20, 40, -math.Pi/2, 3*math.Pi/2)
	if n := strings.Count(got, "A"); n != 4 {
		t.Fatalf("full ring must use 4 half arcs, got %d in %q", n, got)
	}
	if !strings.HasSuffix(got, "Z") {
		t.Fatalf("wedge must be closed: %q", got)
	}
	// 零内径也是合法输入
	zero := DescribeAnnularWedge(0, 0, 0, 40, 0, 1)
	if !strings.Contains(zero, "L 0 0") {
		t.Fatalf("zero inner radius should collapse to the center, got %q", zero)
	}
}

func TestDescribeIsIdempotent(t *testing.T) {
	a := DescribeAnnularWedge(123.456, 78.9, 12, 40, -2.1, 1.3)
	b := DescribeAnnularWedge(123.456, 78.9, 12, 40, -2.1, 1.3)
	if a != b {
		t.Fatalf("identical inputs must produce identical paths")
	}
}

func TestFormatCoord(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-0.00001, "0"},
		{1.5, "1.5"},
		{2.123456, "2.1235"},
		{100, "100"},
		{math.NaN(), "0"},
	}
	for _, c := range cases {
		if got := FormatCoord(c.in); got != c.want {
			t.Fatalf("FormatCoord(%g): got %q want %q", c.in, got, c.want)
		}
	}
}
