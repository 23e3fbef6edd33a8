package search

// TextRange locates a run of characters on a page.
type TextRange struct {
	PageIndex int `json:"pageIndex"`
	Location  int `json:"location"`
	Length    int `json:"length"`
	// TextRangeIndex identifies the match within the native search session.
	TextRangeIndex int `json:"textRangeIndex"`
}

// Expanded grows the range by before characters at the start and after
// characters at the end. The start is clamped at 0 and the growth at the start
// is reduced by the clamped amount, so the range never reaches before the
// beginning of the page text. Negative amounts are treated as zero.
func (r TextRange) Expanded(before, after int) TextRange {
	before = max(before, 0)
	after = max(after, 0)

	start := max(r.Location-before, 0)
	out := r
	out.Location = start
	out.Length = r.Length + (r.Location - start) + after
	return out
}

// End returns the offset one past the last character of the range.
func (r TextRange) End() int {
	return r.Location + r.Length
}
