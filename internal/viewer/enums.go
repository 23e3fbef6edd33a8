package viewer

import "github.com/JaimeStill/pdfbridge/pkg/enum"

// ViewMode is the interaction mode of the reader.
type ViewMode string

const (
	ModeViewer        ViewMode = "viewer"
	ModeAnnotations   ViewMode = "annotations"
	ModeContentEditor ViewMode = "contentEditor"
	ModeForms         ViewMode = "forms"
	ModeSignatures    ViewMode = "signatures"
)

var viewModes = []ViewMode{ModeViewer, ModeAnnotations, ModeContentEditor, ModeForms, ModeSignatures}

// ParseViewMode maps s to a known mode, defaulting to ModeViewer.
func ParseViewMode(s string) ViewMode {
	return enum.Parse(s, viewModes, ModeViewer)
}

func (m *ViewMode) UnmarshalJSON(data []byte) error {
	*m = enum.Unmarshal(data, viewModes, ModeViewer)
	return nil
}

// ToolbarAction is a button of the main toolbar.
type ToolbarAction string

const (
	ToolbarBack      ToolbarAction = "back"
	ToolbarThumbnail ToolbarAction = "thumbnail"
	ToolbarSearch    ToolbarAction = "search"
	ToolbarBota      ToolbarAction = "bota"
	ToolbarMenu      ToolbarAction = "menu"
)

var toolbarActions = []ToolbarAction{ToolbarBack, ToolbarThumbnail, ToolbarSearch, ToolbarBota, ToolbarMenu}

// MenuAction is an entry of the toolbar overflow menu.
type MenuAction string

const (
	MenuViewSettings   MenuAction = "viewSettings"
	MenuDocumentEditor MenuAction = "documentEditor"
	MenuSecurity       MenuAction = "security"
	MenuWatermark      MenuAction = "watermark"
	MenuDocumentInfo   MenuAction = "documentInfo"
	MenuSave           MenuAction = "save"
	MenuShare          MenuAction = "share"
	MenuOpenDocument   MenuAction = "openDocument"
	MenuFlattened      MenuAction = "flattened"
)

var menuActions = []MenuAction{
	MenuViewSettings, MenuDocumentEditor, MenuSecurity, MenuWatermark, MenuDocumentInfo,
	MenuSave, MenuShare, MenuOpenDocument, MenuFlattened,
}

// DisplayMode is the page layout of the reader.
type DisplayMode string

const (
	DisplaySinglePage DisplayMode = "singlePage"
	DisplayDoublePage DisplayMode = "doublePage"
	DisplayCoverPage  DisplayMode = "coverPage"
)

var displayModes = []DisplayMode{DisplaySinglePage, DisplayDoublePage, DisplayCoverPage}

// Theme is the page background tint.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSepia  Theme = "sepia"
	ThemeReseda Theme = "reseda"
)

var themes = []Theme{ThemeLight, ThemeDark, ThemeSepia, ThemeReseda}

// ThemeMode is the application chrome theme.
type ThemeMode string

const (
	ThemeModeLight  ThemeMode = "light"
	ThemeModeDark   ThemeMode = "dark"
	ThemeModeSystem ThemeMode = "system"
)

var themeModes = []ThemeMode{ThemeModeLight, ThemeModeDark, ThemeModeSystem}

// SignatureType selects how signature fields are filled.
type SignatureType string

const (
	SignatureManual     SignatureType = "manual"
	SignatureDigital    SignatureType = "digital"
	SignatureElectronic SignatureType = "electronic"
)

var signatureTypes = []SignatureType{SignatureManual, SignatureDigital, SignatureElectronic}
