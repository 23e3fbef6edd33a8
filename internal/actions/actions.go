// Package actions models the PDF actions attached to link annotations and
// push button widgets. Only navigation actions carry typed payloads; every
// other action kind passes through with its discriminator alone.
package actions

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/pdfbridge/pkg/enum"
)

// Type discriminates action payloads.
type Type string

const (
	TypeUnknown     Type = "unknown"
	TypeGoTo        Type = "goTo"
	TypeGoToR       Type = "goToR"
	TypeGoToE       Type = "goToE"
	TypeLaunch      Type = "launch"
	TypeThread      Type = "thread"
	TypeURI         Type = "uri"
	TypeSound       Type = "sound"
	TypeMovie       Type = "movie"
	TypeHide        Type = "hide"
	TypeNamed       Type = "named"
	TypeSubmitForm  Type = "submitForm"
	TypeResetForm   Type = "resetForm"
	TypeImportData  Type = "importData"
	TypeJavaScript  Type = "javaScript"
	TypeSetOCGState Type = "setOCGState"
	TypeRendition   Type = "rendition"
	TypeTrans       Type = "trans"
	TypeGoTo3DView  Type = "goTo3DView"
	TypeUOP         Type = "uop"
	TypeError       Type = "error"
)

// Types lists every known action type.
var Types = []Type{
	TypeUnknown, TypeGoTo, TypeGoToR, TypeGoToE, TypeLaunch, TypeThread, TypeURI,
	TypeSound, TypeMovie, TypeHide, TypeNamed, TypeSubmitForm, TypeResetForm,
	TypeImportData, TypeJavaScript, TypeSetOCGState, TypeRendition, TypeTrans,
	TypeGoTo3DView, TypeUOP, TypeError,
}

// ParseType never fails; unknown values map to TypeUnknown.
func ParseType(s string) Type {
	return enum.Parse(s, Types, TypeUnknown)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	*t = enum.Unmarshal(data, Types, TypeUnknown)
	return nil
}

// Action is implemented by every action variant.
type Action interface {
	ActionType() Type
}

// GoTo navigates to a page of the same document.
type GoTo struct {
	Type      Type `json:"actionType"`
	PageIndex int  `json:"pageIndex"`
}

func (a *GoTo) ActionType() Type { return TypeGoTo }

// MarshalJSON always writes the goTo discriminator.
func (a GoTo) MarshalJSON() ([]byte, error) {
	type alias GoTo
	a.Type = TypeGoTo
	return json.Marshal(alias(a))
}

// URI opens an external resource.
type URI struct {
	Type Type   `json:"actionType"`
	URI  string `json:"uri"`
}

func (a *URI) ActionType() Type { return TypeURI }

// MarshalJSON always writes the uri discriminator.
func (a URI) MarshalJSON() ([]byte, error) {
	type alias URI
	a.Type = TypeURI
	return json.Marshal(alias(a))
}

// Generic carries any action kind without a specialized payload.
type Generic struct {
	Type Type `json:"actionType"`
}

func (a *Generic) ActionType() Type { return a.Type }

func (a Generic) MarshalJSON() ([]byte, error) {
	type alias Generic
	if a.Type == "" {
		a.Type = TypeUnknown
	}
	return json.Marshal(alias(a))
}

var (
	_ Action = (*GoTo)(nil)
	_ Action = (*URI)(nil)
	_ Action = (*Generic)(nil)
)

type decoder func(raw json.RawMessage) (Action, error)

var decoders = map[Type]decoder{
	TypeGoTo: func(raw json.RawMessage) (Action, error) {
		a := &GoTo{}
		if err := json.Unmarshal(raw, a); err != nil {
			return nil, err
		}
		a.Type = TypeGoTo
		return a, nil
	},
	TypeURI: func(raw json.RawMessage) (Action, error) {
		a := &URI{}
		if err := json.Unmarshal(raw, a); err != nil {
			return nil, err
		}
		a.Type = TypeURI
		return a, nil
	},
}

// Decode builds the Action variant selected by the actionType discriminator.
// A null or empty payload decodes to a nil Action.
func Decode(raw json.RawMessage) (Action, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var head struct {
		Type Type `json:"actionType"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	if head.Type == "" {
		head.Type = TypeUnknown
	}

	if dec, ok := decoders[head.Type]; ok {
		a, err := dec(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s action: %w", head.Type, err)
		}
		return a, nil
	}

	return &Generic{Type: head.Type}, nil
}

// Encode serializes a for the native side. A nil Action encodes to null.
func Encode(a Action) (json.RawMessage, error) {
	if a == nil {
		return json.RawMessage("null"), nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode %s action: %w", a.ActionType(), err)
	}
	return raw, nil
}
