// Package selection holds the pair of version labels being compared and
// the rules for seeding it from share-link parameters, saved state, and
// catalog defaults.
package selection

import (
	"net/url"
	"strings"

	"github.com/mark3labs/promptdiff/internal/version"
)

// Selection is the pair of version labels being compared. From is the
// older side by convention only; the diff renders whatever pair is set.
type Selection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Valid reports whether both sides are set.
func (s Selection) Valid() bool {
	return s.From != "" && s.To != ""
}

// Params carries explicit from/to labels from a share link or CLI flags.
// The zero value means "nothing requested".
type Params struct {
	From string
	To   string
}

// ParseParams decodes a "from=X&to=Y" query string, tolerating a leading
// "?" or a full URL. Unknown keys and decode failures are ignored.
func ParseParams(raw string) Params {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Params{}
	}
	return Params{
		From: values.Get("from"),
		To:   values.Get("to"),
	}
}

// Encode renders the selection as a "from=X&to=Y" query string.
func (s Selection) Encode() string {
	values := url.Values{}
	values.Set("from", s.From)
	values.Set("to", s.To)
	return values.Encode()
}

// ShareLink renders the full shareable link for a selection against the
// given base URL.
func (s Selection) ShareLink(base string) string {
	return strings.TrimRight(base, "/") + "/?" + s.Encode()
}

// Resolve derives the initial selection. Each side independently takes
// the first candidate present in the catalog: the explicit parameter,
// then the previously saved value, then the catalog default (oldest for
// from, newest for to). Invalid candidates fall through rather than
// erroring.
func Resolve(cat version.Catalog, params Params, saved Selection) Selection {
	return Selection{
		From: pick(cat, cat.Oldest(), params.From, saved.From),
		To:   pick(cat, cat.Newest(), params.To, saved.To),
	}
}

func pick(cat version.Catalog, fallback string, candidates ...string) string {
	for _, c := range candidates {
		if c != "" && cat.Contains(c) {
			return c
		}
	}
	return fallback
}
