package widget

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/ringchart/layout"
	"github.com/ByLCY/ringchart/renderer"
)

func TestNewWidgetRendersNoData(t *testing.T) {
	w := New(Options{})
	frame, err := w.Render()
	require.NoError(t, err)
	assert.Equal(t, layout.StateNoData, frame.Result.State)
	assert.Equal(t, 300.0, frame.Result.Width)
	assert.Equal(t, 300.0, frame.Result.Height)
	assert.Equal(t, "Asset Breakdown", frame.Result.Title)
}

func TestSetAssetDataBuildsSegments(t *testing.T) {
	w := New(Options{Width: 400, Height: 300})
	frame, err := w.SetAssetData(Float(8371), Float(12356), "$", "")
	require.NoError(t, err)
	res := frame.Result
	require.True(t, res.Ready())
	assert.Equal(t, 20727.0, res.Total)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "Liabilities", res.Segments[0].Label)
	assert.Equal(t, "Equities", res.Segments[1].Label)
	assert.Equal(t, "#ed8b36", res.Segments[0].Color.Hex())
}

func TestSetAssetDataMissingValue(t *testing.T) {
	w := New(Options{})
	frame, err := w.SetAssetData(Float(10), nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, layout.StateNoData, frame.Result.State)
	assert.Empty(t, frame.Result.Segments)
}

func TestResizeKeepsData(t *testing.T) {
	w := New(Options{})
	_, err := w.SetAssetData(Float(1), Float(3), "", "")
	require.NoError(t, err)

	frame, err := w.Resize(640, 480)
	require.NoError(t, err)
	require.True(t, frame.Result.Ready())
	assert.Equal(t, 320.0, frame.Result.Ring.CX)
	assert.Equal(t, 250.0, frame.Result.Ring.CY)
	assert.InDelta(t, 480/3.2, frame.Result.Ring.Radius, 1e-9)

	frame, err = w.Resize(0, 480)
	require.NoError(t, err)
	assert.Equal(t, layout.StateNoData, frame.Result.State)
}

func TestRenderIsIdempotent(t *testing.T) {
	w := New(Options{})
	_, err := w.SetAssetData(Float(8371), Float(12356), "$", "")
	require.NoError(t, err)
	a, err := w.Render()
	require.NoError(t, err)
	b, err := w.Render()
	require.NoError(t, err)
	assert.Equal(t, a.Result, b.Result)
}

func TestRendererReceivesResult(t *testing.T) {
	var calls int
	r := renderer.Func(func(res *layout.Result) ([]byte, error) {
		calls++
		return []byte(res.State), nil
	})
	w := New(Options{Renderer: r})
	frame, err := w.SetAssetData(Float(1), Float(1), "", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("ready"), frame.Surface)
	assert.Equal(t, 1, calls)
	assert.Equal(t, frame, w.Last())
}

func TestRendererErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	w := New(Options{Renderer: renderer.Func(func(*layout.Result) ([]byte, error) { return nil, boom })})
	_, err := w.Render()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestTooltipFiltersByGroup(t *testing.T) {
	w := New(Options{})
	err := w.SetTooltipData([]byte(`[
		{"group":"Liabilities","label":"Loans","value":5000,"currency":"$"},
		{"group":"Liabilities","label":"Payables","value":3371,"currency":"$"},
		{"group":"Equities","label":"Stock","value":12356,"unit":"k"}
	]`))
	require.NoError(t, err)

	tip, err := w.Tooltip(0)
	require.NoError(t, err)
	assert.Equal(t, "Liabilities Breakdown", tip.Title)
	assert.Equal(t, []TooltipRow{{Label: "Loans", Value: "$5,000"}, {Label: "Payables", Value: "$3,371"}}, tip.Rows)
	assert.Empty(t, tip.Empty)

	tip, err = w.Tooltip(1)
	require.NoError(t, err)
	assert.Equal(t, []TooltipRow{{Label: "Stock", Value: "12,356k"}}, tip.Rows)

	_, err = w.Tooltip(2)
	assert.Error(t, err)
}

func TestTooltipEmptyGroup(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.SetTooltipData([]byte(`[{"group":"Other","label":"x","value":1}]`)))
	tip, err := w.Tooltip(0)
	require.NoError(t, err)
	assert.Empty(t, tip.Rows)
	assert.Equal(t, "No details available", tip.Empty)
}

func TestMalformedTooltipKeepsPrevious(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.SetTooltipData([]byte(`[{"group":"Liabilities","label":"Loans","value":1}]`)))

	err := w.SetTooltipData([]byte(`{not json`))
	require.Error(t, err)

	tip, err := w.Tooltip(0)
	require.NoError(t, err)
	require.Len(t, tip.Rows, 1)
	assert.Equal(t, "Loans", tip.Rows[0].Label)
}

func TestBuilderEventsReachWidget(t *testing.T) {
	w := New(Options{})
	_, err := w.SetAssetData(Float(2), Float(3), "", "")
	require.NoError(t, err)

	b := NewBuilder(DefaultProperties())
	var events []PropertiesChanged
	b.OnPropertiesChanged(func(evt PropertiesChanged) { events = append(events, evt) })
	w.Attach(b)

	require.NoError(t, b.Set(FieldLabel1, "Debt"))
	require.NoError(t, b.Set(FieldColor2, "#00ff00"))
	require.Len(t, events, 2)
	assert.Equal(t, "Debt", events[1].Properties.Label1)
	assert.Equal(t, "#00ff00", events[1].Properties.Color2)

	res := w.Last().Result
	require.True(t, res.Ready())
	assert.Equal(t, "Debt", res.Segments[0].Label)
	assert.Equal(t, "#00ff00", res.Segments[1].Color.Hex())

	assert.Error(t, b.Set("bogus", "x"))
	assert.Len(t, events, 2)
}

func TestConcurrentUpdates(t *testing.T) {
	w := New(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = w.SetAssetData(Float(float64(i)), Float(1), "", "")
			_, _ = w.Resize(float64(200+i), 200)
		}(i)
	}
	wg.Wait()
	frame, err := w.Render()
	require.NoError(t, err)
	assert.True(t, frame.Result.Ready())
}

func TestPropertiesMerge(t *testing.T) {
	p := DefaultProperties().Merge(Properties{ChartTitle: "Funding"})
	assert.Equal(t, "Funding", p.ChartTitle)
	assert.Equal(t, "Liabilities", p.Label1)
}
