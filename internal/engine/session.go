package engine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/pdfbridge/internal/storage"
)

// session is the working copy of the document opened in one view.
// Edits are applied to the stored copy; save writes it back to path.
type session struct {
	path      string
	key       string
	password  string
	encrypted bool
	changed   bool
}

func (s *session) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = s.password
	conf.OwnerPW = s.password
	return conf
}

func (s *session) load(ctx context.Context, store storage.System) (*bytes.Reader, error) {
	data, err := store.Retrieve(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load working copy: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (s *session) readContext(ctx context.Context, store storage.System) (*model.Context, error) {
	rs, err := s.load(ctx, store)
	if err != nil {
		return nil, err
	}
	pctx, err := api.ReadContext(rs, s.conf())
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return pctx, nil
}

// rewrite runs a pdfcpu transformation over the working copy and stores the result.
func (s *session) rewrite(ctx context.Context, store storage.System, fn func(rs *bytes.Reader, w *bytes.Buffer) error) error {
	rs, err := s.load(ctx, store)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := fn(rs, &buf); err != nil {
		return err
	}

	if err := store.Store(ctx, s.key, buf.Bytes()); err != nil {
		return fmt.Errorf("store working copy: %w", err)
	}
	s.changed = true
	return nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id.String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
