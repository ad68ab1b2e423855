package layout

import (
	"encoding/json"
	"math"
	"os"
)

// debugDump 在结果之外附带角度制的区间，便于人工核对。
type debugDump struct {
	*Result
	Degrees []debugSpan `json:"degrees,omitempty"`
}

type debugSpan struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Sweep float64 `json:"sweep"`
}

// MarshalDebug 输出带缩进的调试 JSON。
func MarshalDebug(res *Result) ([]byte, error) {
	dump := debugDump{Result: res}
	for _, seg := range res.Segments {
		dump.Degrees = append(dump.Degrees, debugSpan{
			ID:    seg.ID,
			Start: toDegrees(seg.Span.Start),
			End:   toDegrees(seg.Span.End),
			Sweep: toDegrees(seg.Span.Sweep()),
		})
	}
	return json.MarshalIndent(dump, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebug(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func toDegrees(rad float64) float64 {
	return math.Round(rad*180/math.Pi*1e4) / 1e4
}
