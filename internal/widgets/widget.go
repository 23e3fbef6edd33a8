// Package widgets provides the typed form field model decoded from native
// payloads, together with the mutations that round-trip through the bridge.
//
// Mutations follow one protocol: the call is issued with the widget's page
// index and uuid, and the local field is patched only after the native side
// accepts the change. A rejected call leaves the widget untouched. Content
// mutations do not refresh the rendered appearance; call UpdateAp afterwards.
package widgets

import (
	"context"
	"errors"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/pkg/enum"
)

// ErrInvalidSelection indicates a choice index outside the widget's options.
var ErrInvalidSelection = errors.New("selection index out of range")

// Type discriminates widget payloads.
type Type string

const (
	TypeTextField        Type = "textField"
	TypeCheckBox         Type = "checkBox"
	TypeRadioButton      Type = "radioButton"
	TypeListBox          Type = "listBox"
	TypeComboBox         Type = "comboBox"
	TypePushButton       Type = "pushButton"
	TypeSignaturesFields Type = "signaturesFields"
	TypeUnknown          Type = "unknown"
)

// Types lists every known widget type.
var Types = []Type{
	TypeTextField, TypeCheckBox, TypeRadioButton, TypeListBox, TypeComboBox,
	TypePushButton, TypeSignaturesFields, TypeUnknown,
}

// ParseType never fails; unknown values map to TypeUnknown.
func ParseType(s string) Type {
	return enum.Parse(s, Types, TypeUnknown)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	*t = enum.Unmarshal(data, Types, TypeUnknown)
	return nil
}

// Widget is implemented by *Common and every specialized form field.
type Widget interface {
	WidgetType() Type
	Base() *Common
}

// Common holds the fields shared by all widgets.
// Page and UUID identify the widget on the native side and are never changed
// after decoding.
type Common struct {
	Type        Type           `json:"type"`
	Title       string         `json:"title"`
	Page        int            `json:"page"`
	UUID        string         `json:"uuid"`
	CreateDate  *pdf.Timestamp `json:"createDate"`
	Rect        *pdf.Rect      `json:"rect"`
	BorderColor string         `json:"borderColor"`
	FillColor   string         `json:"fillColor"`
	BorderWidth float64        `json:"borderWidth"`

	view *bridge.View
}

// WidgetType returns the discriminator.
func (c *Common) WidgetType() Type { return c.Type }

// Base returns the shared fields.
func (c *Common) Base() *Common { return c }

// View returns the native view the widget was read from.
func (c *Common) View() *bridge.View { return c.view }

// UpdateAp regenerates the widget's appearance stream from its current content.
func (c *Common) UpdateAp(ctx context.Context) error {
	return c.view.Exec(ctx, "updateAp", c.Page, c.UUID)
}

// Remove deletes the widget from its page in the native document.
func (c *Common) Remove(ctx context.Context) error {
	return c.view.Exec(ctx, "removeWidget", c.Page, c.UUID)
}

// commit issues method for this widget and runs patch only once the native
// side has accepted value.
func (c *Common) commit(ctx context.Context, method string, value any, patch func()) error {
	if err := c.view.Exec(ctx, method, c.Page, c.UUID, value); err != nil {
		return err
	}
	patch()
	return nil
}
