package pdf

import "github.com/JaimeStill/pdfbridge/pkg/enum"

// Alignment is the horizontal alignment of text.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignUnknown Alignment = "unknown"
)

var alignments = []Alignment{AlignLeft, AlignCenter, AlignRight, AlignUnknown}

// ParseAlignment never fails; unknown values map to AlignUnknown.
func ParseAlignment(s string) Alignment {
	return enum.Parse(s, alignments, AlignUnknown)
}

func (a *Alignment) UnmarshalJSON(data []byte) error {
	*a = enum.Unmarshal(data, alignments, AlignUnknown)
	return nil
}

// LineType is the decoration drawn at either end of a line annotation.
type LineType string

const (
	LineNone         LineType = "none"
	LineOpenArrow    LineType = "openArrow"
	LineClosedArrow  LineType = "closedArrow"
	LineSquare       LineType = "square"
	LineCircle       LineType = "circle"
	LineDiamond      LineType = "diamond"
	LineButt         LineType = "butt"
	LineROpenArrow   LineType = "rOpenArrow"
	LineRClosedArrow LineType = "rClosedArrow"
	LineSlash        LineType = "slash"
	LineUnknown      LineType = "unknown"
)

var lineTypes = []LineType{
	LineNone, LineOpenArrow, LineClosedArrow, LineSquare, LineCircle, LineDiamond,
	LineButt, LineROpenArrow, LineRClosedArrow, LineSlash, LineUnknown,
}

// ParseLineType never fails; unknown values map to LineUnknown.
func ParseLineType(s string) LineType {
	return enum.Parse(s, lineTypes, LineUnknown)
}

func (l *LineType) UnmarshalJSON(data []byte) error {
	*l = enum.Unmarshal(data, lineTypes, LineUnknown)
	return nil
}

// BorderEffect is the effect applied to shape borders.
type BorderEffect string

const (
	BorderEffectSolid   BorderEffect = "solid"
	BorderEffectCloudy  BorderEffect = "cloudy"
	BorderEffectUnknown BorderEffect = "unknown"
)

var borderEffects = []BorderEffect{BorderEffectSolid, BorderEffectCloudy, BorderEffectUnknown}

// ParseBorderEffect never fails; unknown values map to BorderEffectUnknown.
func ParseBorderEffect(s string) BorderEffect {
	return enum.Parse(s, borderEffects, BorderEffectUnknown)
}

func (b *BorderEffect) UnmarshalJSON(data []byte) error {
	*b = enum.Unmarshal(data, borderEffects, BorderEffectUnknown)
	return nil
}

// BorderStyle is the stroke style of a widget or shape border.
type BorderStyle string

const (
	BorderSolid     BorderStyle = "solid"
	BorderDashed    BorderStyle = "dashed"
	BorderBeveled   BorderStyle = "beveled"
	BorderInset     BorderStyle = "inset"
	BorderUnderline BorderStyle = "underline"
	BorderUnknown   BorderStyle = "unknown"
)

var borderStyles = []BorderStyle{
	BorderSolid, BorderDashed, BorderBeveled, BorderInset, BorderUnderline, BorderUnknown,
}

// ParseBorderStyle never fails; unknown values map to BorderUnknown.
func ParseBorderStyle(s string) BorderStyle {
	return enum.Parse(s, borderStyles, BorderUnknown)
}

func (b *BorderStyle) UnmarshalJSON(data []byte) error {
	*b = enum.Unmarshal(data, borderStyles, BorderUnknown)
	return nil
}
