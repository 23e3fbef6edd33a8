package widgets

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
)

type decoder func(raw json.RawMessage) (Widget, error)

func decodeAs[T any, P interface {
	*T
	Widget
}](raw json.RawMessage) (Widget, error) {
	p := P(new(T))
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

// decoders covers every known widget type; *Common is reached only for
// discriminators this package does not know.
var decoders = map[Type]decoder{
	TypeTextField:        decodeAs[TextField, *TextField],
	TypeCheckBox:         decodeAs[CheckBox, *CheckBox],
	TypeRadioButton:      decodeAs[RadioButton, *RadioButton],
	TypeListBox:          decodeAs[ListBox, *ListBox],
	TypeComboBox:         decodeAs[ComboBox, *ComboBox],
	TypePushButton:       decodeAs[PushButton, *PushButton],
	TypeSignaturesFields: decodeAs[Signature, *Signature],
}

// Decode builds the widget selected by the type discriminator of raw and
// binds it to view. Only malformed JSON fails.
func Decode(raw json.RawMessage, view *bridge.View) (Widget, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode widget: %w", err)
	}

	dec, ok := decoders[head.Type]
	if !ok {
		dec = decodeAs[Common, *Common]
	}

	w, err := dec(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s widget: %w", head.Type, err)
	}

	base := w.Base()
	if base.Type == "" {
		base.Type = TypeUnknown
	}
	base.view = view
	return w, nil
}

// DecodeArray decodes a JSON array of widgets, preserving order.
func DecodeArray(raw json.RawMessage, view *bridge.View) ([]Widget, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Widget{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode widget list: %w", err)
	}

	out := make([]Widget, 0, len(items))
	for i, item := range items {
		w, err := Decode(item, view)
		if err != nil {
			return nil, fmt.Errorf("widget %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}
