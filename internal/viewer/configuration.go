package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/JaimeStill/pdfbridge/internal/annotations"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/internal/widgets"
)

// ErrInvalidConfiguration is returned by Configuration.Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Configuration is handed to the native view when a document is opened.
// It is built once and serialized as a whole; the native side never returns it.
type Configuration struct {
	ModeConfig          ModeConfig          `json:"modeConfig"`
	ToolbarConfig       ToolbarConfig       `json:"toolbarConfig"`
	AnnotationsConfig   AnnotationsConfig   `json:"annotationsConfig"`
	ContentEditorConfig ContentEditorConfig `json:"contentEditorConfig"`
	FormsConfig         FormsConfig         `json:"formsConfig"`
	ReaderViewConfig    ReaderViewConfig    `json:"readerViewConfig"`
	Global              GlobalConfig        `json:"global"`
	ContextMenuConfig   ContextMenuConfig   `json:"contextMenuConfig"`
}

// ModeConfig selects the initial and reachable view modes.
type ModeConfig struct {
	InitialViewMode    ViewMode   `json:"initialViewMode"`
	AvailableViewModes []ViewMode `json:"availableViewModes"`
	ReadOnly           bool       `json:"readOnly"`
}

// ToolbarConfig controls the main toolbar.
type ToolbarConfig struct {
	MainToolbarVisible bool            `json:"mainToolbarVisible"`
	ToolbarLeftItems   []ToolbarAction `json:"toolbarLeftItems"`
	ToolbarRightItems  []ToolbarAction `json:"toolbarRightItems"`
	AvailableMenus     []MenuAction    `json:"availableMenus"`
}

// AnnotationDefaults are the initial attributes of newly created annotations.
type AnnotationDefaults struct {
	Color         string             `json:"color,omitempty"`
	Alpha         int                `json:"alpha,omitempty"`
	BorderWidth   float64            `json:"borderWidth,omitempty"`
	TextAttribute *pdf.TextAttribute `json:"textAttribute,omitempty"`
}

// AnnotationsConfig controls annotation mode.
type AnnotationsConfig struct {
	AnnotationAuthor string                                  `json:"annotationAuthor"`
	AvailableTypes   []annotations.Type                      `json:"availableTypes"`
	AvailableTools   []string                                `json:"availableTools"`
	InitAttribute    map[annotations.Type]AnnotationDefaults `json:"initAttribute,omitempty"`
}

// ContentEditorConfig controls content editing mode.
type ContentEditorConfig struct {
	AvailableTypes []string          `json:"availableTypes"`
	AvailableTools []string          `json:"availableTools"`
	TextAttribute  pdf.TextAttribute `json:"textAttribute"`
}

// WidgetDefaults are the initial attributes of newly created form fields.
type WidgetDefaults struct {
	FillColor   string  `json:"fillColor,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
	BorderWidth float64 `json:"borderWidth,omitempty"`
	FontColor   string  `json:"fontColor,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
}

// FormsConfig controls form editing mode.
type FormsConfig struct {
	AvailableTypes []widgets.Type                  `json:"availableTypes"`
	AvailableTools []string                        `json:"availableTools"`
	InitAttribute  map[widgets.Type]WidgetDefaults `json:"initAttribute,omitempty"`
}

// Margins are page insets in points.
type Margins struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// ReaderViewConfig controls page display.
type ReaderViewConfig struct {
	LinkHighlight       bool        `json:"linkHighlight"`
	FormFieldHighlight  bool        `json:"formFieldHighlight"`
	DisplayMode         DisplayMode `json:"displayMode"`
	ContinueMode        bool        `json:"continueMode"`
	VerticalMode        bool        `json:"verticalMode"`
	CropMode            bool        `json:"cropMode"`
	Themes              Theme       `json:"themes"`
	EnableSliderBar     bool        `json:"enableSliderBar"`
	EnablePageIndicator bool        `json:"enablePageIndicator"`
	PageSpacing         int         `json:"pageSpacing"`
	Margins             Margins     `json:"margins"`
	PageSameWidth       bool        `json:"pageSameWidth"`
}

// SignatureConfig controls how signature fields are filled.
type SignatureConfig struct {
	Type SignatureType `json:"type"`
}

// GlobalConfig holds settings that apply across modes.
type GlobalConfig struct {
	ThemeMode               ThemeMode       `json:"themeMode"`
	FileSaveExtraFontSubset bool            `json:"fileSaveExtraFontSubset"`
	EnableExitSaveTips      bool            `json:"enableExitSaveTips"`
	Signatures              SignatureConfig `json:"signatures"`
}

// ContextMenuItem is one entry of a long-press menu.
type ContextMenuItem struct {
	Key      string   `json:"key"`
	SubItems []string `json:"subItems,omitempty"`
}

// ContextMenuConfig customizes long-press menus per mode. Each map is keyed
// by the selection kind the menu applies to.
type ContextMenuConfig struct {
	Global            map[string][]ContextMenuItem `json:"global,omitempty"`
	ViewMode          map[string][]ContextMenuItem `json:"viewMode,omitempty"`
	AnnotationMode    map[string][]ContextMenuItem `json:"annotationMode,omitempty"`
	ContentEditorMode map[string][]ContextMenuItem `json:"contentEditorMode,omitempty"`
	FormMode          map[string][]ContextMenuItem `json:"formMode,omitempty"`
}

// DefaultConfiguration returns a configuration with every mode and tool enabled.
func DefaultConfiguration() Configuration {
	return Configuration{
		ModeConfig: ModeConfig{
			InitialViewMode:    ModeViewer,
			AvailableViewModes: slices.Clone(viewModes),
		},
		ToolbarConfig: ToolbarConfig{
			MainToolbarVisible: true,
			ToolbarLeftItems:   []ToolbarAction{ToolbarBack},
			ToolbarRightItems:  []ToolbarAction{ToolbarThumbnail, ToolbarSearch, ToolbarBota, ToolbarMenu},
			AvailableMenus:     slices.Clone(menuActions),
		},
		AnnotationsConfig: AnnotationsConfig{
			AnnotationAuthor: "Guest",
			AvailableTypes: []annotations.Type{
				annotations.TypeNote, annotations.TypeHighlight, annotations.TypeUnderline,
				annotations.TypeSquiggly, annotations.TypeStrikeout, annotations.TypeInk,
				annotations.TypeCircle, annotations.TypeSquare, annotations.TypeArrow,
				annotations.TypeLine, annotations.TypeFreeText, annotations.TypeSignature,
				annotations.TypeStamp, annotations.TypePictures, annotations.TypeLink,
				annotations.TypeSound,
			},
			AvailableTools: []string{"setting", "undo", "redo"},
		},
		ContentEditorConfig: ContentEditorConfig{
			AvailableTypes: []string{"editorText", "editorImage"},
			AvailableTools: []string{"setting", "undo", "redo"},
			TextAttribute:  pdf.TextAttribute{Color: "#000000", FontSize: 30, FamilyName: "Helvetica"},
		},
		FormsConfig: FormsConfig{
			AvailableTypes: []widgets.Type{
				widgets.TypeTextField, widgets.TypeCheckBox, widgets.TypeRadioButton,
				widgets.TypeListBox, widgets.TypeComboBox, widgets.TypePushButton,
				widgets.TypeSignaturesFields,
			},
			AvailableTools: []string{"undo", "redo"},
		},
		ReaderViewConfig: ReaderViewConfig{
			LinkHighlight:       true,
			FormFieldHighlight:  true,
			DisplayMode:         DisplaySinglePage,
			ContinueMode:        true,
			VerticalMode:        true,
			Themes:              ThemeLight,
			EnableSliderBar:     true,
			EnablePageIndicator: true,
		},
		Global: GlobalConfig{
			ThemeMode:          ThemeModeSystem,
			EnableExitSaveTips: true,
			Signatures:         SignatureConfig{Type: SignatureManual},
		},
	}
}

// Validate checks that every enumerated value is known and that the initial
// view mode is reachable.
func (c Configuration) Validate() error {
	var errs []error

	if !slices.Contains(viewModes, c.ModeConfig.InitialViewMode) {
		errs = append(errs, fmt.Errorf("initialViewMode %q unknown", c.ModeConfig.InitialViewMode))
	}
	for _, m := range c.ModeConfig.AvailableViewModes {
		if !slices.Contains(viewModes, m) {
			errs = append(errs, fmt.Errorf("availableViewModes: %q unknown", m))
		}
	}
	if len(c.ModeConfig.AvailableViewModes) > 0 && !slices.Contains(c.ModeConfig.AvailableViewModes, c.ModeConfig.InitialViewMode) {
		errs = append(errs, fmt.Errorf("initialViewMode %q not in availableViewModes", c.ModeConfig.InitialViewMode))
	}
	for _, a := range append(slices.Clone(c.ToolbarConfig.ToolbarLeftItems), c.ToolbarConfig.ToolbarRightItems...) {
		if !slices.Contains(toolbarActions, a) {
			errs = append(errs, fmt.Errorf("toolbar item %q unknown", a))
		}
	}
	for _, m := range c.ToolbarConfig.AvailableMenus {
		if !slices.Contains(menuActions, m) {
			errs = append(errs, fmt.Errorf("availableMenus: %q unknown", m))
		}
	}
	if d := c.ReaderViewConfig.DisplayMode; d != "" && !slices.Contains(displayModes, d) {
		errs = append(errs, fmt.Errorf("displayMode %q unknown", d))
	}
	if th := c.ReaderViewConfig.Themes; th != "" && !slices.Contains(themes, th) {
		errs = append(errs, fmt.Errorf("themes %q unknown", th))
	}
	if tm := c.Global.ThemeMode; tm != "" && !slices.Contains(themeModes, tm) {
		errs = append(errs, fmt.Errorf("themeMode %q unknown", tm))
	}
	if st := c.Global.Signatures.Type; st != "" && !slices.Contains(signatureTypes, st) {
		errs = append(errs, fmt.Errorf("signatures.type %q unknown", st))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

// JSON serializes the configuration for the native view.
func (c Configuration) JSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal configuration: %w", err)
	}
	return string(data), nil
}
