package widget

import (
	"fmt"
	"sync"
)

// Field names accepted by Builder.Set.
const (
	FieldChartTitle  = "chartTitle"
	FieldCenterLabel = "centerLabel"
	FieldLabel1      = "label1"
	FieldColor1      = "color1"
	FieldLabel2      = "label2"
	FieldColor2      = "color2"
)

// PropertiesChanged is emitted once per builder input change and always
// carries the full property set.
type PropertiesChanged struct {
	Properties Properties `json:"properties"`
}

// Builder models the configuration panel. It owns the edited properties and
// notifies subscribers synchronously after every change.
type Builder struct {
	mu        sync.Mutex
	props     Properties
	listeners []func(PropertiesChanged)
}

// NewBuilder starts from the given properties.
func NewBuilder(initial Properties) *Builder {
	return &Builder{props: initial}
}

// OnPropertiesChanged registers a listener.
func (b *Builder) OnPropertiesChanged(fn func(PropertiesChanged)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Properties returns the current snapshot.
func (b *Builder) Properties() Properties {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.props
}

// Set 修改单个字段并立即派发一次事件（不合并、不节流）。
func (b *Builder) Set(field, value string) error {
	b.mu.Lock()
	switch field {
	case FieldChartTitle:
		b.props.ChartTitle = value
	case FieldCenterLabel:
		b.props.CenterLabel = value
	case FieldLabel1:
		b.props.Label1 = value
	case FieldColor1:
		b.props.Color1 = value
	case FieldLabel2:
		b.props.Label2 = value
	case FieldColor2:
		b.props.Color2 = value
	default:
		b.mu.Unlock()
		return fmt.Errorf("widget: unknown builder field %q", field)
	}
	evt := PropertiesChanged{Properties: b.props}
	listeners := append([]func(PropertiesChanged){}, b.listeners...)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(evt)
	}
	return nil
}
