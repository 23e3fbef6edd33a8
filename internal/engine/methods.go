package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/documents"
	"github.com/JaimeStill/pdfbridge/internal/pages"
	"github.com/JaimeStill/pdfbridge/internal/pdf"
	"github.com/JaimeStill/pdfbridge/internal/storage"
)

func open(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var path, password string
	if err := bind(args, &path, &password); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if limit := e.store.MaxSize(); limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("open %s: %w", path, storage.ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s := &session{path: path, password: password}
	pctx, err := api.ReadContext(bytes.NewReader(data), s.conf())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "password") {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s.encrypted = pctx.Encrypt != nil

	s.key = buildStorageKey(uuid.New(), filepath.Base(path))
	if err := e.store.Store(ctx, s.key, data); err != nil {
		return nil, fmt.Errorf("store working copy: %w", err)
	}

	if prev, ok := e.sessions[tag]; ok {
		if err := e.store.Delete(ctx, prev.key); err != nil {
			e.logger.Warn("failed to discard previous working copy", "key", prev.key, "error", err)
		}
	}
	e.sessions[tag] = s

	e.logger.Info("document opened", "tag", tag, "path", path, "pages", pctx.PageCount, "encrypted", s.encrypted)
	return true, nil
}

func save(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	data, err := e.store.Retrieve(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load working copy: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, fmt.Errorf("save %s: %w", s.path, err)
	}

	s.changed = false
	e.logger.Info("document saved", "tag", tag, "path", s.path)
	return true, nil
}

func saveAs(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var (
		path                       string
		removeSecurity, fontSubset bool
	)
	if err := bind(args, &path, &removeSecurity, &fontSubset); err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	rs, err := s.load(ctx, e.store)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if removeSecurity && s.encrypted {
		if err := api.Decrypt(rs, &buf, s.conf()); err != nil {
			return nil, fmt.Errorf("decrypt: %w", err)
		}
	} else if _, err := buf.ReadFrom(rs); err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}

	e.logger.Info("document saved as", "tag", tag, "path", path, "remove_security", removeSecurity)
	return path, nil
}

func fileName(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	return filepath.Base(s.path), nil
}

func documentPath(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	return s.path, nil
}

func pageCount(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	rs, err := s.load(ctx, e.store)
	if err != nil {
		return nil, err
	}
	return api.PageCount(rs, s.conf())
}

func pageSize(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var page int
	if err := bind(args, &page); err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	rs, err := s.load(ctx, e.store)
	if err != nil {
		return nil, err
	}

	dims, err := api.PageDims(rs, s.conf())
	if err != nil {
		return nil, fmt.Errorf("page dimensions: %w", err)
	}
	if page < 0 || page >= len(dims) {
		return nil, pageOutOfRange(page, len(dims))
	}
	return pdf.PageSize{Width: dims[page].Width, Height: dims[page].Height}, nil
}

func isEncrypted(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	return s.encrypted, nil
}

func setPassword(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var opts documents.PasswordOptions
	if err := bind(args, &opts); err != nil {
		return nil, err
	}
	if opts.UserPassword == "" && opts.OwnerPassword == "" {
		return nil, fmt.Errorf("%w: no password given", bridge.ErrInvalidArgument)
	}

	owner := opts.OwnerPassword
	if owner == "" {
		owner = opts.UserPassword
	}

	var conf *model.Configuration
	switch opts.EncryptAlgo {
	case documents.EncryptAES256:
		conf = model.NewAESConfiguration(opts.UserPassword, owner, 256)
	case documents.EncryptAES128:
		conf = model.NewAESConfiguration(opts.UserPassword, owner, 128)
	case documents.EncryptRC4:
		conf = model.NewRC4Configuration(opts.UserPassword, owner, 128)
	default:
		return nil, fmt.Errorf("%w: encryptAlgo %q", bridge.ErrInvalidArgument, opts.EncryptAlgo)
	}

	switch {
	case opts.AllowsPrinting && opts.AllowsCopying:
		conf.Permissions = model.PermissionsAll
	case opts.AllowsPrinting:
		conf.Permissions = model.PermissionsPrint
	default:
		conf.Permissions = model.PermissionsNone
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	if s.encrypted {
		if err := s.rewrite(ctx, e.store, func(rs *bytes.Reader, w *bytes.Buffer) error {
			return api.Decrypt(rs, w, s.conf())
		}); err != nil {
			return nil, fmt.Errorf("decrypt: %w", err)
		}
	}

	if err := s.rewrite(ctx, e.store, func(rs *bytes.Reader, w *bytes.Buffer) error {
		return api.Encrypt(rs, w, conf)
	}); err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	s.password = owner
	s.encrypted = true
	return true, nil
}

func removePassword(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	if !s.encrypted {
		return true, nil
	}

	if err := s.rewrite(ctx, e.store, func(rs *bytes.Reader, w *bytes.Buffer) error {
		return api.Decrypt(rs, w, s.conf())
	}); err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	s.password = ""
	s.encrypted = false
	return true, nil
}

func checkOwnerPassword(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var password string
	if err := bind(args, &password); err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	if !s.encrypted || password == "" {
		return false, nil
	}

	rs, err := s.load(ctx, e.store)
	if err != nil {
		return nil, err
	}

	// The user password slot gets a value no document uses, so the read only
	// succeeds when owner validation accepts the candidate.
	conf := model.NewDefaultConfiguration()
	conf.UserPW = uuid.NewString()
	conf.OwnerPW = password
	_, err = api.ReadContext(rs, conf)
	return err == nil, nil
}

func pageRotation(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var page int
	if err := bind(args, &page); err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	return s.rotation(ctx, e.store, page)
}

func setPageRotation(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var page, deg int
	if err := bind(args, &page, &deg); err != nil {
		return nil, err
	}

	deg, err := pages.NormalizeRotation(deg)
	if err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	current, err := s.rotation(ctx, e.store, page)
	if err != nil {
		return nil, err
	}

	delta := (deg - current + 360) % 360
	if delta == 0 {
		return true, nil
	}

	selected := []string{strconv.Itoa(page + 1)}
	if err := s.rewrite(ctx, e.store, func(rs *bytes.Reader, w *bytes.Buffer) error {
		return api.Rotate(rs, w, delta, selected, s.conf())
	}); err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	return true, nil
}

func removePages(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var indexes []int
	if err := bind(args, &indexes); err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	selected, err := s.selectPages(ctx, e.store, indexes)
	if err != nil {
		return nil, err
	}

	if err := s.rewrite(ctx, e.store, func(rs *bytes.Reader, w *bytes.Buffer) error {
		return api.RemovePages(rs, w, selected, s.conf())
	}); err != nil {
		return nil, fmt.Errorf("remove pages: %w", err)
	}
	return true, nil
}

func splitDocumentPages(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	var (
		savePath string
		indexes  []int
	)
	if err := bind(args, &savePath, &indexes); err != nil {
		return nil, err
	}

	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}

	selected, err := s.selectPages(ctx, e.store, indexes)
	if err != nil {
		return nil, err
	}

	rs, err := s.load(ctx, e.store)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.Trim(rs, &buf, selected, s.conf()); err != nil {
		return nil, fmt.Errorf("split pages: %w", err)
	}
	if err := os.WriteFile(savePath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("save %s: %w", savePath, err)
	}
	return savePath, nil
}

func hasChange(ctx context.Context, e *Engine, tag bridge.Tag, args []any) (any, error) {
	s, err := e.session(tag)
	if err != nil {
		return nil, err
	}
	return s.changed, nil
}

func (s *session) rotation(ctx context.Context, store storage.System, page int) (int, error) {
	pctx, err := s.readContext(ctx, store)
	if err != nil {
		return 0, err
	}
	if page < 0 || page >= pctx.PageCount {
		return 0, pageOutOfRange(page, pctx.PageCount)
	}

	_, _, inherited, err := pctx.PageDict(page+1, false)
	if err != nil {
		return 0, fmt.Errorf("page %d: %w", page, err)
	}
	if inherited == nil {
		return 0, nil
	}
	return ((inherited.Rotate % 360) + 360) % 360, nil
}

// selectPages converts zero-based indexes into pdfcpu page selections.
func (s *session) selectPages(ctx context.Context, store storage.System, indexes []int) ([]string, error) {
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: no pages selected", bridge.ErrInvalidArgument)
	}

	pctx, err := s.readContext(ctx, store)
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= pctx.PageCount {
			return nil, pageOutOfRange(i, pctx.PageCount)
		}
		selected = append(selected, strconv.Itoa(i+1))
	}
	return selected, nil
}

func pageOutOfRange(page, count int) error {
	return fmt.Errorf("%w: page %d out of range [0, %d)", bridge.ErrInvalidArgument, page, count)
}
