package viewer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/pdfbridge/internal/annotations"
	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/bridge/bridgetest"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/internal/viewer"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestDefaultConfiguration_Valid(t *testing.T) {
	if err := viewer.DefaultConfiguration().Validate(); err != nil {
		t.Errorf("DefaultConfiguration().Validate() error = %v", err)
	}
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*viewer.Configuration)
	}{
		{"unknown initial mode", func(c *viewer.Configuration) { c.ModeConfig.InitialViewMode = "slideshow" }},
		{"initial mode unreachable", func(c *viewer.Configuration) {
			c.ModeConfig.InitialViewMode = viewer.ModeForms
			c.ModeConfig.AvailableViewModes = []viewer.ViewMode{viewer.ModeViewer}
		}},
		{"unknown toolbar item", func(c *viewer.Configuration) {
			c.ToolbarConfig.ToolbarRightItems = append(c.ToolbarConfig.ToolbarRightItems, "print")
		}},
		{"unknown menu", func(c *viewer.Configuration) { c.ToolbarConfig.AvailableMenus = []viewer.MenuAction{"export"} }},
		{"unknown display mode", func(c *viewer.Configuration) { c.ReaderViewConfig.DisplayMode = "triplePage" }},
		{"unknown theme", func(c *viewer.Configuration) { c.ReaderViewConfig.Themes = "neon" }},
		{"unknown theme mode", func(c *viewer.Configuration) { c.Global.ThemeMode = "auto" }},
		{"unknown signature type", func(c *viewer.Configuration) { c.Global.Signatures.Type = "biometric" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := viewer.DefaultConfiguration()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, viewer.ErrInvalidConfiguration) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestConfiguration_JSON(t *testing.T) {
	cfg := viewer.DefaultConfiguration()
	cfg.AnnotationsConfig.InitAttribute = map[annotations.Type]viewer.AnnotationDefaults{
		annotations.TypeHighlight: {Color: "#FFFF00", Alpha: 128},
		annotations.TypeFreeText:  {TextAttribute: &pdf.TextAttribute{FontSize: 12}},
	}

	s, err := cfg.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(s), &got); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}

	for _, key := range []string{
		"modeConfig", "toolbarConfig", "annotationsConfig", "contentEditorConfig",
		"formsConfig", "readerViewConfig", "global", "contextMenuConfig",
	} {
		if _, ok := got[key]; !ok {
			t.Errorf("JSON() missing section %q", key)
		}
	}

	mode := got["modeConfig"].(map[string]any)
	if mode["initialViewMode"] != "viewer" {
		t.Errorf("initialViewMode = %v, want viewer", mode["initialViewMode"])
	}

	init := got["annotationsConfig"].(map[string]any)["initAttribute"].(map[string]any)
	want := map[string]any{"color": "#FFFF00", "alpha": float64(128)}
	if diff := cmp.Diff(want, init["highlight"]); diff != "" {
		t.Errorf("initAttribute.highlight mismatch (-want +got):\n%s", diff)
	}
}

func TestConfiguration_JSONLeavesValueUnchanged(t *testing.T) {
	cfg := viewer.DefaultConfiguration()
	before := viewer.DefaultConfiguration()

	if _, err := cfg.JSON(); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Errorf("configuration mutated (-before +after):\n%s", diff)
	}
}

func TestProps_Validate(t *testing.T) {
	tests := []struct {
		name  string
		props viewer.Props
		want  error
	}{
		{"valid", viewer.Props{Document: "file:///doc.pdf", Configuration: viewer.DefaultConfiguration()}, nil},
		{"empty document", viewer.Props{Configuration: viewer.DefaultConfiguration()}, viewer.ErrEmptyDocument},
		{"invalid configuration", viewer.Props{Document: "a.pdf"}, viewer.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.props.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in   string
		want viewer.ViewMode
	}{
		{"forms", viewer.ModeForms},
		{"contentEditor", viewer.ModeContentEditor},
		{"presentation", viewer.ModeViewer},
		{"", viewer.ModeViewer},
	}

	for _, tt := range tests {
		if got := viewer.ParseViewMode(tt.in); got != tt.want {
			t.Errorf("ParseViewMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestView_Gateway(t *testing.T) {
	b := bridgetest.New().
		Return("setDisplayPageIndex", nil).
		Return("getCurrentPageIndex", 4).
		Return("setScale", nil).
		Return("getScale", 1.5).
		Return("setPreviewMode", nil).
		Return("getPreviewMode", "annotations").
		Return("setMargins", nil).
		Return("setPageSpacing", nil).
		Return("hasChange", true).
		Return("save", true)
	v := viewer.New(b.View(3), discard)
	defer v.Close()
	ctx := context.Background()

	if err := v.SetDisplayPageIndex(ctx, 4); err != nil {
		t.Fatalf("SetDisplayPageIndex() error = %v", err)
	}
	if got, err := v.CurrentPageIndex(ctx); err != nil || got != 4 {
		t.Errorf("CurrentPageIndex() = %d, %v, want 4", got, err)
	}
	if err := v.SetScale(ctx, 1.5); err != nil {
		t.Fatalf("SetScale() error = %v", err)
	}
	if got, err := v.Scale(ctx); err != nil || got != 1.5 {
		t.Errorf("Scale() = %g, %v, want 1.5", got, err)
	}
	if err := v.SetPreviewMode(ctx, "bogus"); err != nil {
		t.Fatalf("SetPreviewMode() error = %v", err)
	}
	if got := b.Calls("setPreviewMode")[0].Args[0]; got != viewer.ModeViewer {
		t.Errorf("setPreviewMode arg = %v, want %q", got, viewer.ModeViewer)
	}
	if got, err := v.PreviewMode(ctx); err != nil || got != viewer.ModeAnnotations {
		t.Errorf("PreviewMode() = %q, %v, want annotations", got, err)
	}
	if err := v.SetMargins(ctx, viewer.Margins{Left: 1, Top: 2, Right: 3, Bottom: 4}); err != nil {
		t.Fatalf("SetMargins() error = %v", err)
	}
	if diff := cmp.Diff([]any{1, 2, 3, 4}, b.Calls("setMargins")[0].Args); diff != "" {
		t.Errorf("setMargins args mismatch (-want +got):\n%s", diff)
	}
	if err := v.SetPageSpacing(ctx, 10); err != nil {
		t.Fatalf("SetPageSpacing() error = %v", err)
	}
	if !v.HasChange(ctx) {
		t.Error("HasChange() = false, want true")
	}
	if err := v.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestView_ArgumentsPassThrough(t *testing.T) {
	rejected := &bridge.CallError{Method: "setScale", Message: "scale out of range"}
	b := bridgetest.New().Fail("setScale", rejected).Return("setDisplayPageIndex", nil)
	v := viewer.New(b.View(1), discard)
	defer v.Close()
	ctx := context.Background()

	if err := v.SetScale(ctx, 0); !errors.Is(err, rejected) {
		t.Errorf("SetScale(0) error = %v, want %v", err, rejected)
	}
	if err := v.SetDisplayPageIndex(ctx, -1); err != nil {
		t.Errorf("SetDisplayPageIndex(-1) error = %v", err)
	}
	calls := b.Calls("setDisplayPageIndex")
	if len(calls) != 1 || calls[0].Args[0] != -1 {
		t.Errorf("setDisplayPageIndex calls = %+v, want one call with -1", calls)
	}

	unmounted := viewer.New(bridge.NewView(b, &bridge.Mount{}, nil), discard)
	defer unmounted.Close()
	if err := unmounted.SetScale(ctx, 0); !errors.Is(err, bridge.ErrNoNativeReference) {
		t.Errorf("unmounted SetScale(0) error = %v, want ErrNoNativeReference", err)
	}
}

func TestView_Unmounted(t *testing.T) {
	b := bridgetest.New().Return("hasChange", true)
	mount := &bridge.Mount{}
	v := viewer.New(bridge.NewView(b, mount, b), discard)
	defer v.Close()
	ctx := context.Background()

	if err := v.Save(ctx); !errors.Is(err, bridge.ErrNoNativeReference) {
		t.Errorf("Save() error = %v, want ErrNoNativeReference", err)
	}
	if v.HasChange(ctx) {
		t.Error("HasChange() = true, want false")
	}

	mount.Attach(9)
	if !v.HasChange(ctx) {
		t.Error("HasChange() after Attach = false, want true")
	}
}

func TestView_Events(t *testing.T) {
	b := bridgetest.New()
	v := viewer.New(b.View(2), discard)
	defer v.Close()

	var pages []int
	saves := 0
	cancelPage := v.OnPageChanged(func(i int) { pages = append(pages, i) })
	v.OnSaveDocument(func() { saves++ })

	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 2, Data: map[string]any{"pageIndex": 5}})
	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 8, Data: map[string]any{"pageIndex": 6}})
	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 2, Data: map[string]any{"pageIndex": "seven"}})
	b.Emit(bridge.Event{Name: bridge.EventSaveDocument, Tag: 2})

	cancelPage()
	b.Emit(bridge.Event{Name: bridge.EventPageChanged, Tag: 2, Data: map[string]any{"pageIndex": 9}})

	if diff := cmp.Diff([]int{5}, pages); diff != "" {
		t.Errorf("page events mismatch (-want +got):\n%s", diff)
	}
	if saves != 1 {
		t.Errorf("save events = %d, want 1", saves)
	}
}

func TestView_HistoryWiring(t *testing.T) {
	b := bridgetest.New()
	v := viewer.New(b.View(1), discard)
	defer v.Close()

	b.Emit(bridge.Event{
		Name: bridge.EventContentEditorHistory,
		Tag:  1,
		Data: map[string]any{"canUndo": true, "canRedo": true},
	})

	if got := v.EditorHistory().State(); !got.CanUndo || !got.CanRedo {
		t.Errorf("EditorHistory().State() = %+v, want both true", got)
	}
	if got := v.AnnotationHistory().State(); got.CanUndo || got.CanRedo {
		t.Errorf("AnnotationHistory().State() = %+v, want zero", got)
	}
}
