package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/JaimeStill/pdfbridge/internal/actions"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/pkg/enum"
)

// Font is the text styling carried by text-bearing widgets.
type Font struct {
	FontColor  string  `json:"fontColor"`
	FontSize   float64 `json:"fontSize"`
	FamilyName string  `json:"familyName"`
	StyleName  string  `json:"styleName"`
}

// TextField is a single or multi line text input.
type TextField struct {
	Common
	Font
	Text        string        `json:"text"`
	Alignment   pdf.Alignment `json:"alignment"`
	IsMultiline bool          `json:"isMultiline"`
}

// SetText replaces the field's content.
func (w *TextField) SetText(ctx context.Context, text string) error {
	return w.commit(ctx, "setTextWidgetText", text, func() { w.Text = text })
}

// CheckStyle is the glyph drawn inside a checked box or radio button.
type CheckStyle string

const (
	CheckStyleCheck   CheckStyle = "check"
	CheckStyleCircle  CheckStyle = "circle"
	CheckStyleCross   CheckStyle = "cross"
	CheckStyleDiamond CheckStyle = "diamond"
	CheckStyleSquare  CheckStyle = "square"
	CheckStyleStar    CheckStyle = "star"
	CheckStyleUnknown CheckStyle = "unknown"
)

var checkStyles = []CheckStyle{
	CheckStyleCheck, CheckStyleCircle, CheckStyleCross, CheckStyleDiamond,
	CheckStyleSquare, CheckStyleStar, CheckStyleUnknown,
}

func (s *CheckStyle) UnmarshalJSON(data []byte) error {
	*s = enum.Unmarshal(data, checkStyles, CheckStyleUnknown)
	return nil
}

// Checkable is the state shared by check boxes and radio buttons.
type Checkable struct {
	IsChecked  bool       `json:"isChecked"`
	CheckColor string     `json:"checkColor"`
	CheckStyle CheckStyle `json:"checkStyle"`
}

// CheckBox is a toggle field.
type CheckBox struct {
	Common
	Checkable
}

// SetChecked toggles the box.
func (w *CheckBox) SetChecked(ctx context.Context, checked bool) error {
	return w.commit(ctx, "setWidgetIsChecked", checked, func() { w.IsChecked = checked })
}

// RadioButton is one option of an exclusive group.
type RadioButton struct {
	Common
	Checkable
}

// SetChecked selects or clears the button.
func (w *RadioButton) SetChecked(ctx context.Context, checked bool) error {
	return w.commit(ctx, "setWidgetIsChecked", checked, func() { w.IsChecked = checked })
}

// Option is one entry of a list or combo box.
type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Choice is the state shared by list and combo boxes.
type Choice struct {
	Font
	Options         []Option `json:"options"`
	SelectedIndexes []int    `json:"selectedIndexes"`
}

// Selected returns the currently selected options in index order.
func (c *Choice) Selected() []Option {
	var out []Option
	for _, i := range c.SelectedIndexes {
		if i >= 0 && i < len(c.Options) {
			out = append(out, c.Options[i])
		}
	}
	return out
}

func (c *Choice) normalize(indexes []int) ([]int, error) {
	out := slices.Clone(indexes)
	slices.Sort(out)
	out = slices.Compact(out)
	for _, i := range out {
		if i < 0 || i >= len(c.Options) {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidSelection, i, len(c.Options))
		}
	}
	return out, nil
}

// ListBox shows all options at once.
type ListBox struct {
	Common
	Choice
}

// SetSelectedIndexes replaces the selection. Indexes form a set: duplicates
// collapse and order is not significant.
func (w *ListBox) SetSelectedIndexes(ctx context.Context, indexes []int) error {
	return setSelected(ctx, &w.Common, &w.Choice, indexes)
}

// ComboBox shows a single selected option with a drop-down.
type ComboBox struct {
	Common
	Choice
}

// SetSelectedIndexes replaces the selection.
func (w *ComboBox) SetSelectedIndexes(ctx context.Context, indexes []int) error {
	return setSelected(ctx, &w.Common, &w.Choice, indexes)
}

func setSelected(ctx context.Context, c *Common, choice *Choice, indexes []int) error {
	normalized, err := choice.normalize(indexes)
	if err != nil {
		return err
	}
	return c.commit(ctx, "setWidgetSelectedIndexes", normalized, func() {
		choice.SelectedIndexes = normalized
	})
}

// PushButton triggers an action.
type PushButton struct {
	Common
	Font
	ButtonTitle string         `json:"buttonTitle"`
	Action      actions.Action `json:"action"`
}

// UnmarshalJSON decodes the polymorphic action alongside the other fields.
func (w *PushButton) UnmarshalJSON(data []byte) error {
	type alias PushButton
	var aux struct {
		alias
		Action json.RawMessage `json:"action"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	action, err := actions.Decode(aux.Action)
	if err != nil {
		return fmt.Errorf("push button %s: %w", aux.UUID, err)
	}

	*w = PushButton(aux.alias)
	w.Action = action
	return nil
}

// Signature is a signature field.
type Signature struct {
	Common
}

// AddImageSignature stamps the image at imagePath into the field.
func (w *Signature) AddImageSignature(ctx context.Context, imagePath string) error {
	return w.view.Exec(ctx, "addWidgetImageSignature", w.Page, w.UUID, imagePath)
}

var (
	_ Widget = (*Common)(nil)
	_ Widget = (*TextField)(nil)
	_ Widget = (*CheckBox)(nil)
	_ Widget = (*RadioButton)(nil)
	_ Widget = (*ListBox)(nil)
	_ Widget = (*ComboBox)(nil)
	_ Widget = (*PushButton)(nil)
	_ Widget = (*Signature)(nil)
)
