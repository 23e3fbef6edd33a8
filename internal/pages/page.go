// Package pages is the gateway to a single page of an open document.
package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/pdfbridge/internal/annotations"
	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/internal/widgets"
)

// ErrInvalidRotation is returned for rotations other than 0, 90, 180, 270 or 360.
var ErrInvalidRotation = errors.New("invalid page rotation")

// Page addresses one page of the document shown by a native view.
type Page struct {
	Index int
	view  *bridge.View
}

// New returns the page at index.
func New(index int, view *bridge.View) *Page {
	return &Page{Index: index, view: view}
}

// NormalizeRotation validates deg and maps a full turn to 0.
func NormalizeRotation(deg int) (int, error) {
	switch deg {
	case 0, 90, 180, 270:
		return deg, nil
	case 360:
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidRotation, deg)
}

// Annotations returns the annotations on the page in native order.
func (p *Page) Annotations(ctx context.Context) ([]annotations.Annotation, error) {
	raw, err := p.view.Call(ctx, "getAnnotations", p.Index)
	if err != nil {
		return nil, err
	}
	return annotations.DecodeArray(raw, p.view)
}

// Widgets returns the form fields on the page in native order.
func (p *Page) Widgets(ctx context.Context) ([]widgets.Widget, error) {
	raw, err := p.view.Call(ctx, "getForms", p.Index)
	if err != nil {
		return nil, err
	}
	return widgets.DecodeArray(raw, p.view)
}

// Rotation returns the page rotation in degrees.
func (p *Page) Rotation(ctx context.Context) (int, error) {
	return bridge.Invoke[int](ctx, p.view, "getPageRotation", p.Index)
}

// SetRotation rotates the page. deg is validated before the native call.
func (p *Page) SetRotation(ctx context.Context, deg int) error {
	deg, err := NormalizeRotation(deg)
	if err != nil {
		return err
	}
	return p.view.Exec(ctx, "setPageRotation", p.Index, deg)
}

// RemoveAnnotation deletes a from this page.
func (p *Page) RemoveAnnotation(ctx context.Context, a annotations.Annotation) error {
	return p.view.Exec(ctx, "removeAnnotation", p.Index, a.Base().UUID)
}

// RemoveWidget deletes w from this page.
func (p *Page) RemoveWidget(ctx context.Context, w widgets.Widget) error {
	return p.view.Exec(ctx, "removeWidget", p.Index, w.Base().UUID)
}

// Size returns the page dimensions in points.
func (p *Page) Size(ctx context.Context) (pdf.PageSize, error) {
	return bridge.Invoke[pdf.PageSize](ctx, p.view, "getPageSize", p.Index)
}
