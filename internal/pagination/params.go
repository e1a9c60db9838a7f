// ABOUTME: Pagination parameters parsed from untrusted query strings
// ABOUTME: Out-of-range values are clamped, never rejected, and the correction is reported

package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// Query keys.
const (
	KeyPage          = "page"
	KeySize          = "size"
	KeySortBy        = "sortBy"
	KeySortDirection = "sortDirection"
)

const (
	DefaultPage   = 0
	DefaultSize   = 20
	MinSize       = 1
	MaxSize       = 100
	DefaultSortBy = "id"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Params are validated pagination parameters. Page >= 0 and Size is within
// [MinSize, MaxSize] for any value produced by this package.
type Params struct {
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	SortBy        string    `json:"sortBy"`
	SortDirection Direction `json:"sortDirection"`
}

// Defaults returns page 0, size 20, sorted by id ascending.
func Defaults() Params {
	return Params{Page: DefaultPage, Size: DefaultSize, SortBy: DefaultSortBy, SortDirection: Asc}
}

func clampPage(p int) int {
	if p < 0 {
		return 0
	}
	return p
}

func clampSize(s int) int {
	return min(MaxSize, max(MinSize, s))
}

// ParseDirection coerces s to Asc or Desc, case-insensitively. Anything
// else is Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Normalize returns p clamped into range, with empty fields taken from def.
func (p Params) Normalize(def Params) Params {
	out := Params{
		Page:          clampPage(p.Page),
		Size:          clampSize(p.Size),
		SortBy:        strings.TrimSpace(p.SortBy),
		SortDirection: ParseDirection(string(p.SortDirection)),
	}
	if p.Size == 0 {
		out.Size = clampSize(def.Size)
	}
	if out.SortBy == "" {
		out.SortBy = def.SortBy
	}
	if p.SortDirection == "" && def.SortDirection != "" {
		out.SortDirection = def.SortDirection
	}
	return out
}

// ParseQuery reads pagination parameters from q using the package defaults.
// The boolean reports whether any value present in q was corrected.
func ParseQuery(q url.Values) (Params, bool) {
	return ParseQueryWithDefaults(q, Defaults())
}

// ParseQueryWithDefaults is ParseQuery with per-listing defaults for absent keys.
func ParseQueryWithDefaults(q url.Values, def Params) (Params, bool) {
	def = def.Normalize(Defaults())
	p := def
	corrected := false

	if raw, ok := lookup(q, KeyPage); ok {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			p.Page, corrected = def.Page, true
		default:
			p.Page = clampPage(n)
			corrected = corrected || p.Page != n
		}
	}

	if raw, ok := lookup(q, KeySize); ok {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			p.Size, corrected = def.Size, true
		default:
			p.Size = clampSize(n)
			corrected = corrected || p.Size != n
		}
	}

	if raw, ok := lookup(q, KeySortBy); ok {
		if s := strings.TrimSpace(raw); s != "" {
			p.SortBy = s
			corrected = corrected || s != raw
		} else {
			corrected = true
		}
	}

	if raw, ok := lookup(q, KeySortDirection); ok {
		p.SortDirection = ParseDirection(raw)
		corrected = corrected || string(p.SortDirection) != raw
	}

	return p, corrected
}

func lookup(q url.Values, key string) (string, bool) {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Apply writes p onto q, replacing any existing pagination keys.
func (p Params) Apply(q url.Values) {
	q.Set(KeyPage, strconv.Itoa(p.Page))
	q.Set(KeySize, strconv.Itoa(p.Size))
	q.Set(KeySortBy, p.SortBy)
	q.Set(KeySortDirection, string(p.SortDirection))
}

// Values returns p as query parameters.
func (p Params) Values() url.Values {
	q := url.Values{}
	p.Apply(q)
	return q
}

// Canonicalize returns the canonical form of a listing URL. Pagination keys
// present in the query are rewritten with their corrected values; absent
// keys stay absent and other keys are untouched. The boolean reports whether
// the URL changed, in which case the caller should redirect to it.
func Canonicalize(rawURL string) (string, bool, error) {
	return CanonicalizeWithDefaults(rawURL, Defaults())
}

// CanonicalizeWithDefaults is Canonicalize for a listing with its own
// defaults, so the canonical URL parses back to the params the listing uses.
func CanonicalizeWithDefaults(rawURL string, def Params) (string, bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false, err
	}
	q := u.Query()
	p, corrected := ParseQueryWithDefaults(q, def)
	if !corrected {
		return rawURL, false, nil
	}

	set := map[string]string{
		KeyPage:          strconv.Itoa(p.Page),
		KeySize:          strconv.Itoa(p.Size),
		KeySortBy:        p.SortBy,
		KeySortDirection: string(p.SortDirection),
	}
	for key, value := range set {
		if _, present := q[key]; present {
			q[key] = []string{value}
		}
	}

	u.RawQuery = encodeOrdered(q)
	return u.String(), true, nil
}

// encodeOrdered keeps pagination keys first, in a fixed order, followed by
// the remaining keys in url.Values encoding order.
func encodeOrdered(q url.Values) string {
	var b strings.Builder
	for _, key := range []string{KeyPage, KeySize, KeySortBy, KeySortDirection} {
		for _, v := range q[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key) + "=" + url.QueryEscape(v))
		}
		delete(q, key)
	}
	if rest := q.Encode(); rest != "" {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(rest)
	}
	return b.String()
}
