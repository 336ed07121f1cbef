package diffview

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// rowKind classifies one display row of the diff.
type rowKind int

const (
	rowContext rowKind = iota
	rowDelete
	rowAdd
	rowChange
	rowHunkHeader
)

// row is one aligned display row. In side-by-side mode old* renders on
// the left and new* on the right; in stacked mode a change row expands
// into a delete line followed by an add line. Line numbers are 1-based;
// 0 means the side has no line in this row.
type row struct {
	kind    rowKind
	oldLine int
	newLine int
	oldText string
	newText string
}

// buildRows computes the aligned rows for a before/after pair. Runs of
// consecutive deletions and insertions inside a hunk are paired up into
// change rows so both sides stay vertically aligned.
func buildRows(before, after string, contextLines int) ([]row, error) {
	edits := udiff.Strings(before, after)
	if len(edits) == 0 {
		return nil, nil
	}

	diff, err := udiff.ToUnifiedDiff("from", "to", before, edits, contextLines)
	if err != nil {
		return nil, err
	}

	var rows []row
	for _, hunk := range diff.Hunks {
		rows = append(rows, row{kind: rowHunkHeader})

		oldLine := hunk.FromLine
		newLine := hunk.ToLine

		var deletes, inserts []row
		flush := func() {
			n := len(deletes)
			if len(inserts) > n {
				n = len(inserts)
			}
			for i := 0; i < n; i++ {
				switch {
				case i < len(deletes) && i < len(inserts):
					rows = append(rows, row{
						kind:    rowChange,
						oldLine: deletes[i].oldLine,
						oldText: deletes[i].oldText,
						newLine: inserts[i].newLine,
						newText: inserts[i].newText,
					})
				case i < len(deletes):
					rows = append(rows, deletes[i])
				default:
					rows = append(rows, inserts[i])
				}
			}
			deletes = deletes[:0]
			inserts = inserts[:0]
		}

		for _, line := range hunk.Lines {
			text := strings.TrimSuffix(line.Content, "\n")
			switch line.Kind {
			case udiff.Delete:
				deletes = append(deletes, row{kind: rowDelete, oldLine: oldLine, oldText: text})
				oldLine++
			case udiff.Insert:
				inserts = append(inserts, row{kind: rowAdd, newLine: newLine, newText: text})
				newLine++
			default:
				flush()
				rows = append(rows, row{
					kind:    rowContext,
					oldLine: oldLine,
					newLine: newLine,
					oldText: text,
					newText: text,
				})
				oldLine++
				newLine++
			}
		}
		flush()
	}

	return rows, nil
}
