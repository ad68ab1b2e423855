package widget

import (
	"github.com/ByLCY/ringchart/format"
)

const noDetailsText = "No details available"

// TooltipItem is one breakdown row supplied by the host. Group must equal a
// segment's display label for the row to show up on that segment.
type TooltipItem struct {
	Group    string  `json:"group"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// Tooltip is the hover content for one segment.
type Tooltip struct {
	Title string       `json:"title"`
	Rows  []TooltipRow `json:"rows"`
	Empty string       `json:"empty,omitempty"` // 无明细时的提示
}

// TooltipRow is a formatted label/value pair.
type TooltipRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// buildTooltip 按 group 与段名精确匹配筛选明细。
func buildTooltip(segment string, items []TooltipItem, f *format.Formatter) Tooltip {
	tip := Tooltip{Title: segment + " Breakdown"}
	for _, item := range items {
		if item.Group != segment {
			continue
		}
		tip.Rows = append(tip.Rows, TooltipRow{
			Label: item.Label,
			Value: f.Decorate(item.Currency, item.Value, item.Unit),
		})
	}
	if len(tip.Rows) == 0 {
		tip.Empty = noDetailsText
	}
	return tip
}
