// Package search exposes native text search for a document view.
//
// Search is a UI-facing feature and degrades instead of failing: every
// operation returns a plain value, and bridge failures are logged and replaced
// by an empty result.
package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/pkg/enum"
)

// Sensitivity controls letter case matching.
type Sensitivity string

const (
	CaseInsensitive Sensitivity = "caseInsensitive"
	CaseSensitive   Sensitivity = "caseSensitive"
)

var sensitivities = []Sensitivity{CaseInsensitive, CaseSensitive}

// ParseSensitivity never fails; unknown values map to CaseInsensitive.
func ParseSensitivity(s string) Sensitivity {
	return enum.Parse(s, sensitivities, CaseInsensitive)
}

// Options tunes a search.
type Options struct {
	Sensitivity    Sensitivity `json:"options"`
	MatchWholeWord bool        `json:"matchWholeWord"`
}

// Searcher runs text searches against the document shown in a native view.
type Searcher struct {
	view   *bridge.View
	logger *slog.Logger
}

// New creates a Searcher for view.
func New(view *bridge.View, logger *slog.Logger) *Searcher {
	return &Searcher{
		view:   view,
		logger: logger.With("system", "search"),
	}
}

// SearchText returns the matches of query in document order.
// It returns an empty slice, never nil, when the search fails.
func (s *Searcher) SearchText(ctx context.Context, query string, opts Options) []TextRange {
	opts.Sensitivity = ParseSensitivity(string(opts.Sensitivity))

	ranges, err := bridge.Invoke[[]TextRange](ctx, s.view, "searchText", query, opts)
	if err != nil {
		s.logger.Warn("search failed", "method", "searchText", "query", query, "error", err)
		return []TextRange{}
	}
	if ranges == nil {
		return []TextRange{}
	}

	slices.SortStableFunc(ranges, func(a, b TextRange) int {
		if c := cmp.Compare(a.PageIndex, b.PageIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.Location, b.Location)
	})
	return ranges
}

// Selection highlights r in the view. Failures are logged only.
func (s *Searcher) Selection(ctx context.Context, r TextRange) {
	if err := s.view.Exec(ctx, "selection", r); err != nil {
		s.logger.Warn("selection failed", "method", "selection", "error", err)
	}
}

// ClearSearch removes search highlights from the view. Failures are logged only.
func (s *Searcher) ClearSearch(ctx context.Context) {
	if err := s.view.Exec(ctx, "clearSearch"); err != nil {
		s.logger.Warn("clear search failed", "method", "clearSearch", "error", err)
	}
}

// GetText returns the page text covered by r, or "" when it cannot be read.
func (s *Searcher) GetText(ctx context.Context, r TextRange) string {
	text, err := bridge.Invoke[string](ctx, s.view, "getSearchText", r.PageIndex, r.Location, r.Length)
	if err != nil {
		s.logger.Warn("get text failed", "method", "getSearchText", "error", err)
		return ""
	}
	return text
}
