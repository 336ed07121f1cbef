// Package version provides ordering over prompt version labels and the
// catalog of labels served by the data host.
package version

import (
	"strconv"
	"strings"
)

// Compare orders two version labels of the form MAJOR.MINOR.PATCH.
// Each label is split on "." and up to three components are parsed as
// integers; a missing or non-numeric component counts as 0. The result is
// negative if a < b, zero if equal, positive if a > b.
//
// Labels with extra non-numeric content can collide ("1.0-rc" == "1.0"),
// so this is a total preorder rather than a strict total order.
func Compare(a, b string) int {
	for i := 0; i < 3; i++ {
		av := component(a, i)
		bv := component(b, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// component returns the i-th numeric component of a label, or 0.
func component(label string, i int) int {
	parts := strings.Split(label, ".")
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Catalog is the ordered list of version labels as returned by the data
// host, oldest first. Source order is meaningful and preserved.
type Catalog []string

// Oldest returns the first label in the catalog, or "" when empty.
func (c Catalog) Oldest() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Newest returns the last label in the catalog, or "" when empty.
func (c Catalog) Newest() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// Contains reports whether the catalog includes the given label.
func (c Catalog) Contains(label string) bool {
	for _, v := range c {
		if v == label {
			return true
		}
	}
	return false
}
