// Package monitor turns a layout config into a live statusboard.
//
// New creates one dashboard.Window per configured window and registers its
// fields with the value type the config names. Fields with a metric are
// bound to it: on every periodic tick the Monitor takes a probe.Sample and
// pushes each bound metric through dashboard.UpdateField, converting the
// reading to the field's type. String fields show byte counts and rates in
// human units. Fields bound to the "status" metric show when the last
// sample was taken, or why it failed.
//
// # Keyboard Shortcuts
//
//	r        - Sample now
//	p, space - Pause / resume periodic sampling
//	Ctrl+L   - Redraw every window
//
// The shutdown key (F1 unless configured) is handled by the dashboard.
package monitor
