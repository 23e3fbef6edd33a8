package annotations

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/pdfbridge/internal/actions"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
)

// Note is a sticky note.
type Note struct {
	Common
	Color string `json:"color"`
	Alpha int    `json:"alpha"`
}

// Markup is shared by highlight, underline, squiggly, and strikeout: the
// native payloads are identical and only the discriminator differs.
type Markup struct {
	Common
	MarkedText string `json:"markedText"`
	Color      string `json:"color"`
	Alpha      int    `json:"alpha"`
}

// Ink is a freehand drawing.
type Ink struct {
	Common
	Color       string  `json:"color"`
	Alpha       int     `json:"alpha"`
	BorderWidth float64 `json:"borderWidth"`
}

// ShapeStyle is the stroke and fill shared by line and square annotations.
type ShapeStyle struct {
	BorderColor string  `json:"borderColor"`
	BorderAlpha int     `json:"borderAlpha"`
	FillColor   string  `json:"fillColor"`
	FillAlpha   int     `json:"fillAlpha"`
	BorderWidth float64 `json:"borderWidth"`
}

// Line covers line and arrow annotations.
type Line struct {
	Common
	ShapeStyle
	LineHeadType pdf.LineType `json:"lineHeadType"`
	LineTailType pdf.LineType `json:"lineTailType"`
}

// Square covers square and circle annotations.
type Square struct {
	Common
	ShapeStyle
	BordEffectType pdf.BorderEffect `json:"bordEffectType"`
}

// FreeText is a text box drawn directly on the page.
type FreeText struct {
	Common
	Alignment     pdf.Alignment      `json:"alignment"`
	TextAttribute *pdf.TextAttribute `json:"textAttribute"`
	Alpha         int                `json:"alpha"`
}

// Link triggers an action when activated.
type Link struct {
	Common
	Action actions.Action `json:"action"`
}

// UnmarshalJSON decodes the polymorphic action alongside the common fields.
func (l *Link) UnmarshalJSON(data []byte) error {
	type alias Link
	var aux struct {
		alias
		Action json.RawMessage `json:"action"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	action, err := actions.Decode(aux.Action)
	if err != nil {
		return fmt.Errorf("link %s: %w", aux.UUID, err)
	}

	*l = Link(aux.alias)
	l.Action = action
	return nil
}

var (
	_ Annotation = (*Common)(nil)
	_ Annotation = (*Note)(nil)
	_ Annotation = (*Markup)(nil)
	_ Annotation = (*Ink)(nil)
	_ Annotation = (*Line)(nil)
	_ Annotation = (*Square)(nil)
	_ Annotation = (*FreeText)(nil)
	_ Annotation = (*Link)(nil)
)
