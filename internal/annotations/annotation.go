// Package annotations provides the typed annotation model decoded from native
// payloads. A Common base carries the fields every annotation shares; each
// specialized kind embeds it and adds its own attributes. Kinds without a
// specialized shape decode to *Common.
package annotations

import (
	"context"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/pkg/enum"
)

// Type discriminates annotation payloads.
type Type string

const (
	TypeNote      Type = "note"
	TypeHighlight Type = "highlight"
	TypeUnderline Type = "underline"
	TypeSquiggly  Type = "squiggly"
	TypeStrikeout Type = "strikeout"
	TypeInk       Type = "ink"
	TypeCircle    Type = "circle"
	TypeSquare    Type = "square"
	TypeArrow     Type = "arrow"
	TypeLine      Type = "line"
	TypeFreeText  Type = "freetext"
	TypeSignature Type = "signature"
	TypeStamp     Type = "stamp"
	TypePictures  Type = "pictures"
	TypeLink      Type = "link"
	TypeSound     Type = "sound"
	TypeUnknown   Type = "unknown"
)

// Types lists every known annotation type.
var Types = []Type{
	TypeNote, TypeHighlight, TypeUnderline, TypeSquiggly, TypeStrikeout, TypeInk,
	TypeCircle, TypeSquare, TypeArrow, TypeLine, TypeFreeText, TypeSignature,
	TypeStamp, TypePictures, TypeLink, TypeSound, TypeUnknown,
}

// ParseType never fails; unknown values map to TypeUnknown.
func ParseType(s string) Type {
	return enum.Parse(s, Types, TypeUnknown)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	*t = enum.Unmarshal(data, Types, TypeUnknown)
	return nil
}

// Annotation is implemented by *Common and every specialized annotation.
type Annotation interface {
	AnnotationType() Type
	Base() *Common
}

// Common holds the fields shared by all annotations.
// Page and UUID identify the annotation on the native side and are never
// changed after decoding.
type Common struct {
	Type       Type           `json:"type"`
	Title      string         `json:"title"`
	Page       int            `json:"page"`
	Content    string         `json:"content"`
	UUID       string         `json:"uuid"`
	CreateDate *pdf.Timestamp `json:"createDate"`
	Rect       *pdf.Rect      `json:"rect"`

	view *bridge.View
}

// AnnotationType returns the discriminator.
func (c *Common) AnnotationType() Type { return c.Type }

// Base returns the shared fields.
func (c *Common) Base() *Common { return c }

// View returns the native view the annotation was read from.
func (c *Common) View() *bridge.View { return c.view }

// Remove deletes the annotation from its page in the native document.
func (c *Common) Remove(ctx context.Context) error {
	return c.view.Exec(ctx, "removeAnnotation", c.Page, c.UUID)
}
