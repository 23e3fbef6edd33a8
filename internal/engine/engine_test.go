package engine_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/documents"
	"github.com/JaimeStill/pdfbridge/internal/engine"
	"github.com/JaimeStill/pdfbridge/internal/pages"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/internal/storage"
	pkgstorage "github.com/JaimeStill/pdfbridge/pkg/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// writePDF writes a letter-sized document with one entry per page giving
// that page's /Rotate value.
func writePDF(t *testing.T, path string, rotations ...int) {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := range rotations {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", kids, len(rotations)))

	for _, r := range rotations {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << >> /Rotate %d >>", r))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func newEngine(t *testing.T, maxSize string) (*engine.Engine, string) {
	t.Helper()

	cfg := &pkgstorage.Config{BasePath: filepath.Join(t.TempDir(), "store"), MaxDocumentSize: maxSize}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	store, err := storage.New(cfg, discard)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	e := engine.New(store, discard)
	t.Cleanup(func() { e.Close(context.Background()) })
	return e, cfg.BasePath
}

func openDoc(t *testing.T, rotations ...int) (*documents.Document, string) {
	t.Helper()

	e, _ := newEngine(t, "10MB")
	path := filepath.Join(t.TempDir(), "sample file.pdf")
	writePDF(t, path, rotations...)

	doc := documents.New(bridge.NewView(e, bridge.Static(1), nil), discard)
	if err := doc.Open(context.Background(), path, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return doc, path
}

func pageCountOf(t *testing.T, path string) int {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageCount(%s) error = %v", path, err)
	}
	return n
}

func TestCall_Unsupported(t *testing.T) {
	e, _ := newEngine(t, "10MB")

	for _, method := range []string{"getAnnotations", "searchText", "setWidgetIsChecked"} {
		if _, err := e.Call(context.Background(), method, 1); !errors.Is(err, bridge.ErrUnsupportedMethod) {
			t.Errorf("Call(%s) error = %v, want ErrUnsupportedMethod", method, err)
		}
	}
}

func TestCall_DocumentNotOpen(t *testing.T) {
	e, _ := newEngine(t, "10MB")

	if _, err := e.Call(context.Background(), "getPageCount", 1); !errors.Is(err, engine.ErrDocumentNotOpen) {
		t.Errorf("Call(getPageCount) error = %v, want ErrDocumentNotOpen", err)
	}
}

func TestCall_InvalidArguments(t *testing.T) {
	e, _ := newEngine(t, "10MB")

	if _, err := e.Call(context.Background(), "open", 1); !errors.Is(err, bridge.ErrInvalidArgument) {
		t.Errorf("Call(open) without args error = %v, want ErrInvalidArgument", err)
	}
	if _, err := e.Call(context.Background(), "open", 1, 42, ""); !errors.Is(err, bridge.ErrInvalidArgument) {
		t.Errorf("Call(open) with numeric path error = %v, want ErrInvalidArgument", err)
	}
}

func TestMethods(t *testing.T) {
	got := engine.Methods()
	if len(got) == 0 {
		t.Fatal("Methods() is empty")
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("Methods() not sorted at %d: %q >= %q", i, got[i-1], got[i])
		}
	}
}

func TestOpen_TooLarge(t *testing.T) {
	e, _ := newEngine(t, "100B")
	path := filepath.Join(t.TempDir(), "big.pdf")
	writePDF(t, path, 0, 0, 0)

	_, err := e.Call(context.Background(), "open", 1, path, "")
	if !errors.Is(err, storage.ErrTooLarge) {
		t.Errorf("Call(open) error = %v, want ErrTooLarge", err)
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc, path := openDoc(t, 0, 90)
	ctx := context.Background()

	if got, err := doc.PageCount(ctx); err != nil || got != 2 {
		t.Errorf("PageCount() = %d, %v, want 2", got, err)
	}
	if got, err := doc.FileName(ctx); err != nil || got != "sample file.pdf" {
		t.Errorf("FileName() = %q, %v", got, err)
	}
	if got, err := doc.DocumentPath(ctx); err != nil || got != path {
		t.Errorf("DocumentPath() = %q, %v, want %q", got, err, path)
	}
	if doc.IsEncrypted(ctx) {
		t.Error("IsEncrypted() = true, want false")
	}
	if doc.HasChange(ctx) {
		t.Error("HasChange() = true, want false")
	}

	size, err := doc.Page(0).Size(ctx)
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size.Width != pdf.PageLetter.Width || size.Height != pdf.PageLetter.Height {
		t.Errorf("Size() = %+v, want letter", size)
	}

	if doc.IsImageDoc(ctx) {
		t.Error("IsImageDoc() = true for an unsupported method, want false")
	}
}

func TestRotation(t *testing.T) {
	doc, _ := openDoc(t, 0, 90)
	ctx := context.Background()

	if got, err := doc.Page(1).Rotation(ctx); err != nil || got != 90 {
		t.Errorf("Page(1).Rotation() = %d, %v, want 90", got, err)
	}

	if err := doc.Page(0).SetRotation(ctx, 270); err != nil {
		t.Fatalf("SetRotation(270) error = %v", err)
	}
	if got, err := doc.Page(0).Rotation(ctx); err != nil || got != 270 {
		t.Errorf("Page(0).Rotation() = %d, %v, want 270", got, err)
	}
	if !doc.HasChange(ctx) {
		t.Error("HasChange() = false after rotation, want true")
	}

	if err := doc.Page(1).SetRotation(ctx, 360); err != nil {
		t.Fatalf("SetRotation(360) error = %v", err)
	}
	if got, err := doc.Page(1).Rotation(ctx); err != nil || got != 0 {
		t.Errorf("Page(1).Rotation() = %d, %v, want 0", got, err)
	}

	if err := doc.Page(0).SetRotation(ctx, 45); !errors.Is(err, pages.ErrInvalidRotation) {
		t.Errorf("SetRotation(45) error = %v, want ErrInvalidRotation", err)
	}
	if _, err := doc.Page(5).Rotation(ctx); !errors.Is(err, bridge.ErrInvalidArgument) {
		t.Errorf("Page(5).Rotation() error = %v, want ErrInvalidArgument", err)
	}
}

func TestRemoveAndSplitPages(t *testing.T) {
	doc, _ := openDoc(t, 0, 90, 180)
	ctx := context.Background()

	out := filepath.Join(t.TempDir(), "split.pdf")
	got, err := doc.SplitDocumentPages(ctx, out, []int{0, 2})
	if err != nil {
		t.Fatalf("SplitDocumentPages() error = %v", err)
	}
	if got != out {
		t.Errorf("SplitDocumentPages() = %q, want %q", got, out)
	}
	if n := pageCountOf(t, out); n != 2 {
		t.Errorf("split page count = %d, want 2", n)
	}

	if ok, err := doc.RemovePages(ctx, []int{1}); err != nil || !ok {
		t.Fatalf("RemovePages() = %v, %v", ok, err)
	}
	if n, err := doc.PageCount(ctx); err != nil || n != 2 {
		t.Errorf("PageCount() after remove = %d, %v, want 2", n, err)
	}

	if _, err := doc.RemovePages(ctx, []int{7}); !errors.Is(err, bridge.ErrInvalidArgument) {
		t.Errorf("RemovePages(7) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSave(t *testing.T) {
	doc, path := openDoc(t, 0, 0, 0)
	ctx := context.Background()

	if _, err := doc.RemovePages(ctx, []int{0}); err != nil {
		t.Fatalf("RemovePages() error = %v", err)
	}
	if n := pageCountOf(t, path); n != 3 {
		t.Errorf("original page count before save = %d, want 3", n)
	}

	if err := doc.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if n := pageCountOf(t, path); n != 2 {
		t.Errorf("page count after save = %d, want 2", n)
	}
	if doc.HasChange(ctx) {
		t.Error("HasChange() after Save = true, want false")
	}

	copyPath := filepath.Join(t.TempDir(), "copy.pdf")
	if got, err := doc.SaveAs(ctx, copyPath, false, false); err != nil || got != copyPath {
		t.Fatalf("SaveAs() = %q, %v", got, err)
	}
	if n := pageCountOf(t, copyPath); n != 2 {
		t.Errorf("copy page count = %d, want 2", n)
	}
}

func TestPasswords(t *testing.T) {
	doc, _ := openDoc(t, 0)
	ctx := context.Background()

	err := doc.SetPassword(ctx, documents.PasswordOptions{
		UserPassword:   "user",
		OwnerPassword:  "owner",
		AllowsPrinting: true,
		EncryptAlgo:    documents.EncryptAES256,
	})
	if err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	if !doc.IsEncrypted(ctx) {
		t.Error("IsEncrypted() = false after SetPassword")
	}
	if !doc.CheckOwnerPassword(ctx, "owner") {
		t.Error("CheckOwnerPassword(owner) = false")
	}
	if doc.CheckOwnerPassword(ctx, "wrong") {
		t.Error("CheckOwnerPassword(wrong) = true")
	}
	if doc.CheckOwnerPassword(ctx, "user") {
		t.Error("CheckOwnerPassword(user) = true, want false for the user password")
	}
	if doc.CheckOwnerPassword(ctx, "") {
		t.Error("CheckOwnerPassword(\"\") = true")
	}
	if n, err := doc.PageCount(ctx); err != nil || n != 1 {
		t.Errorf("PageCount() on encrypted copy = %d, %v, want 1", n, err)
	}

	if err := doc.RemovePassword(ctx); err != nil {
		t.Fatalf("RemovePassword() error = %v", err)
	}
	if doc.IsEncrypted(ctx) {
		t.Error("IsEncrypted() = true after RemovePassword")
	}
}

func TestSetPassword_RequiresAlgo(t *testing.T) {
	doc, _ := openDoc(t, 0)

	err := doc.SetPassword(context.Background(), documents.PasswordOptions{UserPassword: "user"})
	if !errors.Is(err, bridge.ErrInvalidArgument) {
		t.Errorf("SetPassword() error = %v, want ErrInvalidArgument", err)
	}
}

func TestClose_DiscardsWorkingCopies(t *testing.T) {
	e, base := newEngine(t, "10MB")
	path := filepath.Join(t.TempDir(), "a.pdf")
	writePDF(t, path, 0)

	if _, err := e.Call(context.Background(), "open", 3, path, ""); err != nil {
		t.Fatalf("Call(open) error = %v", err)
	}
	if err := e.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries, _ := os.ReadDir(filepath.Join(base, "documents"))
	if len(entries) != 0 {
		t.Errorf("working copies left after Close: %d", len(entries))
	}
	if _, err := e.Call(context.Background(), "getPageCount", 3); !errors.Is(err, engine.ErrDocumentNotOpen) {
		t.Errorf("Call(getPageCount) after Close error = %v, want ErrDocumentNotOpen", err)
	}
}
