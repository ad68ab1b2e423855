package widget

// Properties are the style-only fields edited through the builder panel.
// JSON names match the dashboard's property payload.
type Properties struct {
	ChartTitle  string `json:"chartTitle"`
	CenterLabel string `json:"centerLabel"`
	Label1      string `json:"label1"`
	Color1      string `json:"color1"`
	Label2      string `json:"label2"`
	Color2      string `json:"color2"`
}

// DefaultProperties 资产负债默认配置。
func DefaultProperties() Properties {
	return Properties{
		ChartTitle:  "Asset Breakdown",
		CenterLabel: "Asset",
		Label1:      "Liabilities",
		Color1:      "#ed8b36",
		Label2:      "Equities",
		Color2:      "#4472c4",
	}
}

// Merge 用 patch 中的非空字段覆盖 p。
func (p Properties) Merge(patch Properties) Properties {
	if patch.ChartTitle != "" {
		p.ChartTitle = patch.ChartTitle
	}
	if patch.CenterLabel != "" {
		p.CenterLabel = patch.CenterLabel
	}
	if patch.Label1 != "" {
		p.Label1 = patch.Label1
	}
	if patch.Color1 != "" {
		p.Color1 = patch.Color1
	}
	if patch.Label2 != "" {
		p.Label2 = patch.Label2
	}
	if patch.Color2 != "" {
		p.Color2 = patch.Color2
	}
	return p
}

// Data is the value payload supplied by the host.
type Data struct {
	Value1   *float64 `json:"val1"`
	Value2   *float64 `json:"val2"`
	Currency string   `json:"currency"`
	Unit     string   `json:"unit"`
}

// Float returns a pointer to v, for building Data literals.
func Float(v float64) *float64 { return &v }
