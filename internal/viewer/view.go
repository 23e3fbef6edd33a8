// Package viewer holds the reader configuration and the gateway to a mounted
// native reader view.
package viewer

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/documents"
	"github.com/JaimeStill/pdfbridge/internal/history"
	"github.com/JaimeStill/pdfbridge/internal/search"
	"github.com/JaimeStill/pdfbridge/pkg/decode"
)

// View is the gateway to a reader view and the document it displays.
type View struct {
	view   *bridge.View
	logger *slog.Logger

	document          *documents.Document
	searcher          *search.Searcher
	annotationHistory *history.Manager
	editorHistory     *history.Manager
}

// New creates a View over view. Close releases its event subscriptions.
func New(view *bridge.View, logger *slog.Logger) *View {
	return &View{
		view:              view,
		logger:            logger.With("system", "viewer"),
		document:          documents.New(view, logger),
		searcher:          search.New(view, logger),
		annotationHistory: history.New(history.Annotations, view, logger),
		editorHistory:     history.New(history.ContentEditor, view, logger),
	}
}

func (v *View) Document() *documents.Document       { return v.document }
func (v *View) Searcher() *search.Searcher          { return v.searcher }
func (v *View) AnnotationHistory() *history.Manager { return v.annotationHistory }
func (v *View) EditorHistory() *history.Manager     { return v.editorHistory }

// Save writes pending changes of the displayed document.
func (v *View) Save(ctx context.Context) error {
	return v.document.Save(ctx)
}

// HasChange reports whether the displayed document has unsaved changes.
func (v *View) HasChange(ctx context.Context) bool {
	return v.document.HasChange(ctx)
}

// SetDisplayPageIndex scrolls to the page at index.
func (v *View) SetDisplayPageIndex(ctx context.Context, index int) error {
	return v.view.Exec(ctx, "setDisplayPageIndex", index)
}

// CurrentPageIndex returns the page currently shown.
func (v *View) CurrentPageIndex(ctx context.Context) (int, error) {
	return bridge.Invoke[int](ctx, v.view, "getCurrentPageIndex")
}

// SetScale sets the zoom factor.
func (v *View) SetScale(ctx context.Context, scale float64) error {
	return v.view.Exec(ctx, "setScale", scale)
}

// Scale returns the zoom factor.
func (v *View) Scale(ctx context.Context) (float64, error) {
	return bridge.Invoke[float64](ctx, v.view, "getScale")
}

// SetPreviewMode switches the interaction mode.
func (v *View) SetPreviewMode(ctx context.Context, mode ViewMode) error {
	return v.view.Exec(ctx, "setPreviewMode", ParseViewMode(string(mode)))
}

// PreviewMode returns the interaction mode.
func (v *View) PreviewMode(ctx context.Context) (ViewMode, error) {
	return bridge.Invoke[ViewMode](ctx, v.view, "getPreviewMode")
}

// SetMargins sets the page insets.
func (v *View) SetMargins(ctx context.Context, m Margins) error {
	return v.view.Exec(ctx, "setMargins", m.Left, m.Top, m.Right, m.Bottom)
}

// SetPageSpacing sets the gap between pages.
func (v *View) SetPageSpacing(ctx context.Context, spacing int) error {
	return v.view.Exec(ctx, "setPageSpacing", spacing)
}

type pageChanged struct {
	PageIndex int `json:"pageIndex"`
}

// OnPageChanged registers fn for page navigation events.
func (v *View) OnPageChanged(fn func(pageIndex int)) (cancel func()) {
	return v.view.Subscribe(bridge.EventPageChanged, func(e bridge.Event) {
		p, err := decode.FromMap[pageChanged](e.Data)
		if err != nil {
			v.logger.Warn("malformed page event", "event", e.Name, "error", err)
			return
		}
		fn(p.PageIndex)
	})
}

// OnSaveDocument registers fn for native save events.
func (v *View) OnSaveDocument(fn func()) (cancel func()) {
	return v.view.Subscribe(bridge.EventSaveDocument, func(bridge.Event) { fn() })
}

// Close stops the history managers from listening for events.
func (v *View) Close() {
	v.annotationHistory.Close()
	v.editorHistory.Close()
}
