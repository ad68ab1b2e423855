package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor 解析 #rgb 与 #rrggbb；环形图不支持透明度，#rrggbbaa 视为无效。
func ParseColor(value string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(raw) {
	case 3:
		r, err1 := parseHex(strings.Repeat(raw[0:1], 2))
		g, err2 := parseHex(strings.Repeat(raw[1:2], 2))
		b, err3 := parseHex(strings.Repeat(raw[2:3], 2))
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		return Color{R: r, G: g, B: b}, nil
	case 6:
		r, err1 := parseHex(raw[0:2])
		g, err2 := parseHex(raw[2:4])
		b, err3 := parseHex(raw[4:6])
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		return Color{R: r, G: g, B: b}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

// Hex 输出 #rrggbb。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func parseHex(s string) (int, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	return int(v), err
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
