package dashboard

import (
	"fmt"
	"strings"
)

// VerticalAlign positions a window title vertically.
type VerticalAlign int

const (
	AlignTop VerticalAlign = iota
	AlignMiddle
	AlignBottom
)

// HorizontalAlign positions a window title horizontally.
type HorizontalAlign int

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

var (
	verticalNames   = [...]string{AlignTop: "top", AlignMiddle: "middle", AlignBottom: "bottom"}
	horizontalNames = [...]string{AlignLeft: "left", AlignCenter: "center", AlignRight: "right"}
)

func (v VerticalAlign) String() string {
	if v < AlignTop || v > AlignBottom {
		return fmt.Sprintf("valign(%d)", int(v))
	}
	return verticalNames[v]
}

func (h HorizontalAlign) String() string {
	if h < AlignLeft || h > AlignRight {
		return fmt.Sprintf("halign(%d)", int(h))
	}
	return horizontalNames[h]
}

// ParseVerticalAlign accepts top, middle or bottom. Empty means top.
func ParseVerticalAlign(name string) (VerticalAlign, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AlignTop, nil
	}
	for i, n := range verticalNames {
		if n == name {
			return VerticalAlign(i), nil
		}
	}
	return AlignTop, fmt.Errorf("unknown vertical alignment %q (want top, middle or bottom)", name)
}

// ParseHorizontalAlign accepts left, center or right. Empty means left.
func ParseHorizontalAlign(name string) (HorizontalAlign, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AlignLeft, nil
	}
	for i, n := range horizontalNames {
		if n == name {
			return HorizontalAlign(i), nil
		}
	}
	return AlignLeft, fmt.Errorf("unknown horizontal alignment %q (want left, center or right)", name)
}
