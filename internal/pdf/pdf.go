// Package pdf defines the value objects shared by annotations, widgets, and
// pages: geometry, timestamps, text attributes, and the small closed
// enumerations used across the native payloads.
package pdf

// Rect is a bounding box in page coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	if r.Right < r.Left {
		return r.Left - r.Right
	}
	return r.Right - r.Left
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	if r.Top < r.Bottom {
		return r.Bottom - r.Top
	}
	return r.Top - r.Bottom
}

// TextAttribute describes the font used by free text annotations and form fields.
type TextAttribute struct {
	Color      string  `json:"color,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FamilyName string  `json:"familyName,omitempty"`
	StyleName  string  `json:"styleName,omitempty"`
}

// PageSize is the size of a page in points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Name   string  `json:"name,omitempty"`
}

// Standard page sizes.
var (
	PageA3     = PageSize{Width: 842, Height: 1191, Name: "A3"}
	PageA4     = PageSize{Width: 595, Height: 842, Name: "A4"}
	PageA5     = PageSize{Width: 420, Height: 595, Name: "A5"}
	PageB5     = PageSize{Width: 499, Height: 709, Name: "B5"}
	PageLetter = PageSize{Width: 612, Height: 792, Name: "Letter"}
	PageLegal  = PageSize{Width: 612, Height: 1008, Name: "Legal"}
)
