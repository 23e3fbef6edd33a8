// Package documents is the gateway to the document shown by a native view.
//
// Mutating and accessor operations are strict: they fail with
// bridge.ErrNoNativeReference when the view is gone and otherwise return the
// native result or rejection unmodified. Arguments are not checked locally;
// the native side decides what it accepts. The boolean state queries are lenient
// and report false on any failure.
package documents

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/pages"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
)

// PasswordOptions configures document encryption.
// Empty passwords leave the corresponding protection unset.
type PasswordOptions struct {
	UserPassword   string      `json:"userPassword,omitempty"`
	OwnerPassword  string      `json:"ownerPassword,omitempty"`
	AllowsPrinting bool        `json:"allowsPrinting"`
	AllowsCopying  bool        `json:"allowsCopying"`
	EncryptAlgo    EncryptAlgo `json:"encryptAlgo"`
}

// Import describes pages of another document to merge into the open one.
type Import struct {
	Path        string `json:"path"`
	Password    string `json:"password,omitempty"`
	Pages       []int  `json:"pages,omitempty"`
	InsertIndex int    `json:"insertIndex"`
}

// Document proxies document-level operations.
type Document struct {
	view   *bridge.View
	logger *slog.Logger
}

// New creates a Document gateway over view.
func New(view *bridge.View, logger *slog.Logger) *Document {
	return &Document{
		view:   view,
		logger: logger.With("system", "documents"),
	}
}

// Page returns the gateway for the page at index.
func (d *Document) Page(index int) *pages.Page {
	return pages.New(index, d.view)
}

// Open loads the document at path into the view.
func (d *Document) Open(ctx context.Context, path, password string) error {
	return d.view.Exec(ctx, "open", path, password)
}

// Save writes pending changes back to the current document path.
func (d *Document) Save(ctx context.Context) error {
	return d.view.Exec(ctx, "save")
}

// SaveAs writes the document to path and returns the path written.
func (d *Document) SaveAs(ctx context.Context, path string, removeSecurity, fontSubset bool) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "saveAs", path, removeSecurity, fontSubset)
}

// FileName returns the file name of the open document.
func (d *Document) FileName(ctx context.Context) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "getFileName")
}

// DocumentPath returns the location of the open document.
func (d *Document) DocumentPath(ctx context.Context) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "getDocumentPath")
}

// PageCount returns the number of pages.
func (d *Document) PageCount(ctx context.Context) (int, error) {
	return bridge.Invoke[int](ctx, d.view, "getPageCount")
}

// Permissions returns the access level of the password used to open the document.
func (d *Document) Permissions(ctx context.Context) (Permissions, error) {
	return bridge.Invoke[Permissions](ctx, d.view, "getPermissions")
}

// EncryptAlgo returns the algorithm currently protecting the document.
func (d *Document) EncryptAlgo(ctx context.Context) (EncryptAlgo, error) {
	return bridge.Invoke[EncryptAlgo](ctx, d.view, "getEncryptAlgo")
}

// SetPassword encrypts the document with opts.
func (d *Document) SetPassword(ctx context.Context, opts PasswordOptions) error {
	opts.EncryptAlgo = ParseEncryptAlgo(string(opts.EncryptAlgo))
	return d.view.Exec(ctx, "setPassword", opts)
}

// RemovePassword removes all password protection.
func (d *Document) RemovePassword(ctx context.Context) error {
	return d.view.Exec(ctx, "removePassword")
}

// ImportAnnotations merges annotations from the XFDF file at path.
func (d *Document) ImportAnnotations(ctx context.Context, path string) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "importAnnotations", path)
}

// ExportAnnotations writes all annotations to an XFDF file and returns its path.
func (d *Document) ExportAnnotations(ctx context.Context) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "exportAnnotations")
}

// ImportWidgets fills form fields from the XFDF file at path.
func (d *Document) ImportWidgets(ctx context.Context, path string) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "importWidgets", path)
}

// ExportWidgets writes form field data to an XFDF file and returns its path.
func (d *Document) ExportWidgets(ctx context.Context) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "exportWidgets")
}

// RemoveAllAnnotations deletes every annotation in the document.
func (d *Document) RemoveAllAnnotations(ctx context.Context) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "removeAllAnnotations")
}

// FlattenAllPages burns annotations and form fields into page content and
// writes the result to savePath.
func (d *Document) FlattenAllPages(ctx context.Context, savePath string, fontSubset bool) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "flattenAllPages", savePath, fontSubset)
}

// ImportDocument inserts pages of another document.
func (d *Document) ImportDocument(ctx context.Context, imp Import) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "importDocument", imp.Path, imp.Password, imp.Pages, imp.InsertIndex)
}

// SplitDocumentPages extracts pages into a new document at savePath and
// returns the path written.
func (d *Document) SplitDocumentPages(ctx context.Context, savePath string, pages []int) (string, error) {
	return bridge.Invoke[string](ctx, d.view, "splitDocumentPages", savePath, pages)
}

// InsertBlankPage inserts an empty page of size before index.
func (d *Document) InsertBlankPage(ctx context.Context, index int, size pdf.PageSize) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "insertBlankPage", index, size)
}

// RemovePages deletes the pages at the given indexes.
func (d *Document) RemovePages(ctx context.Context, pages []int) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "removePages", pages)
}

// MovePage moves the page at from so that it ends up at to.
func (d *Document) MovePage(ctx context.Context, from, to int) (bool, error) {
	return bridge.Invoke[bool](ctx, d.view, "movePage", from, to)
}

// ReloadPages asks the view to redraw every page.
func (d *Document) ReloadPages(ctx context.Context) error {
	return d.view.Exec(ctx, "reloadPages")
}

// IsEncrypted reports whether the document is password protected.
func (d *Document) IsEncrypted(ctx context.Context) bool {
	return d.query(ctx, "isEncrypted")
}

// IsImageDoc reports whether the document consists only of scanned images.
func (d *Document) IsImageDoc(ctx context.Context) bool {
	return d.query(ctx, "isImageDoc")
}

// CheckOwnerUnlocked reports whether the document was opened with the owner password.
func (d *Document) CheckOwnerUnlocked(ctx context.Context) bool {
	return d.query(ctx, "checkOwnerUnlocked")
}

// CheckOwnerPassword reports whether password is the owner password.
func (d *Document) CheckOwnerPassword(ctx context.Context, password string) bool {
	return d.query(ctx, "checkOwnerPassword", password)
}

// HasChange reports whether the document has unsaved changes.
func (d *Document) HasChange(ctx context.Context) bool {
	return d.query(ctx, "hasChange")
}

func (d *Document) query(ctx context.Context, method string, args ...any) bool {
	ok, err := bridge.Invoke[bool](ctx, d.view, method, args...)
	if err != nil {
		d.logger.Warn("document query failed", "method", method, "error", err)
		return false
	}
	return ok
}
