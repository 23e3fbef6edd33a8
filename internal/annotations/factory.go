package annotations

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
)

type decoder func(raw json.RawMessage) (Annotation, error)

func decodeAs[T any, P interface {
	*T
	Annotation
}](raw json.RawMessage) (Annotation, error) {
	p := P(new(T))
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

// decoders maps each specialized type to its shape. Types absent here
// (signature, stamp, pictures, sound, unknown) decode to *Common.
var decoders = map[Type]decoder{
	TypeNote:      decodeAs[Note, *Note],
	TypeHighlight: decodeAs[Markup, *Markup],
	TypeUnderline: decodeAs[Markup, *Markup],
	TypeSquiggly:  decodeAs[Markup, *Markup],
	TypeStrikeout: decodeAs[Markup, *Markup],
	TypeInk:       decodeAs[Ink, *Ink],
	TypeLine:      decodeAs[Line, *Line],
	TypeArrow:     decodeAs[Line, *Line],
	TypeSquare:    decodeAs[Square, *Square],
	TypeCircle:    decodeAs[Square, *Square],
	TypeFreeText:  decodeAs[FreeText, *FreeText],
	TypeLink:      decodeAs[Link, *Link],
}

// Decode builds the annotation selected by the type discriminator of raw and
// binds it to view. Unrecognized discriminators decode to *Common with
// TypeUnknown; only malformed JSON fails.
func Decode(raw json.RawMessage, view *bridge.View) (Annotation, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode annotation: %w", err)
	}

	dec, ok := decoders[head.Type]
	if !ok {
		dec = decodeAs[Common, *Common]
	}

	a, err := dec(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s annotation: %w", head.Type, err)
	}

	base := a.Base()
	if base.Type == "" {
		base.Type = TypeUnknown
	}
	base.view = view
	return a, nil
}

// DecodeArray decodes a JSON array of annotations, preserving order.
func DecodeArray(raw json.RawMessage, view *bridge.View) ([]Annotation, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Annotation{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode annotation list: %w", err)
	}

	out := make([]Annotation, 0, len(items))
	for i, item := range items {
		a, err := Decode(item, view)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
