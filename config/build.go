package config

import (
	"fmt"

	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/metrics"
)

// Placeholder text shown by metric widgets before their first sample.
const (
	placeholderClock   = "--:--"
	placeholderPercent = "---%"
)

// Binding connects a metric key to the widget that displays it. Feed
// each one to Bar.Bind after constructing the bar over the built tree.
type Binding struct {
	Key    string
	ID     statusbar.WidgetID
	Format statusbar.Formatter
}

// Build realizes the configured widget row. It returns the tree and
// the metric bindings, and registers a poll source on the bridge for
// every metric widget. The bridge may be nil when no polling is wanted
// (bindings are still returned so a caller can feed samples manually).
func Build(cfg *Config, bridge *metrics.Bridge) (*statusbar.Tree, []Binding, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	barFG := statusbar.Hex(orDefault(cfg.Bar.Foreground, "#ffffff"))
	tree := statusbar.NewTree(statusbar.Style{
		Background: statusbar.Hex(orDefault(cfg.Bar.Background, "#000000")),
		Foreground: barFG,
		Padding:    cfg.Bar.Padding,
		Axis:       statusbar.AxisRow,
	})
	root := tree.Root()

	var bindings []Binding
	for i, w := range cfg.Widgets {
		style := statusbar.Style{
			Foreground: barFG,
			Width:      w.Width,
			FontSize:   w.FontSize,
		}
		if w.Foreground != "" {
			style.Foreground = statusbar.Hex(w.Foreground)
		}
		if w.Background != "" {
			style.Background = statusbar.Hex(w.Background)
		}

		var (
			id  statusbar.WidgetID
			err error
		)
		switch w.Kind {
		case KindText:
			id, err = tree.AddText(root, w.Text, style)
		case KindSpacer:
			id, err = tree.AddContainer(root, style)
		case KindClock:
			id, err = tree.AddText(root, placeholderClock, style)
			if err == nil {
				layout := orDefault(w.Format, "15:04:05")
				bindings = append(bindings, Binding{
					Key: metrics.KeyClock,
					ID:  id,
					Format: func(s metrics.Sample) string {
						return s.Time.Format(layout)
					},
				})
				if bridge != nil {
					bridge.AddAligned(metrics.ClockSource{}, w.Interval)
				}
			}
		case KindCPU:
			id, err = tree.AddText(root, placeholderPercent, style)
			if err == nil {
				bindings = append(bindings, percentBinding(id, metrics.KeyCPU, w.Format))
				if bridge != nil {
					bridge.Add(metrics.CPUSource{}, w.Interval)
				}
			}
		case KindMemory:
			id, err = tree.AddText(root, placeholderPercent, style)
			if err == nil {
				bindings = append(bindings, percentBinding(id, metrics.KeyMemory, w.Format))
				if bridge != nil {
					bridge.Add(metrics.MemorySource{}, w.Interval)
				}
			}
		}
		if err != nil {
			return nil, nil, fmt.Errorf("config: widgets[%d]: %w", i, err)
		}
	}
	return tree, bindings, nil
}

// percentBinding formats a percentage sample with the widget's verb
// string.
func percentBinding(id statusbar.WidgetID, key, format string) Binding {
	verb := orDefault(format, "%.0f%%")
	return Binding{
		Key: key,
		ID:  id,
		Format: func(s metrics.Sample) string {
			return fmt.Sprintf(verb, s.Value)
		},
	}
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
