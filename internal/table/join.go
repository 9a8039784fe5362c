package table

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// JoinOptions configures InnerJoin.
type JoinOptions struct {
	// LeftKeys and RightKeys are the join columns, pairwise. Keys are
	// compared by their Text form, so both sides must be normalized to the
	// same width and padding beforehand or rows silently fail to match.
	LeftKeys  []string
	RightKeys []string

	// Suffixes disambiguate non-key columns present on both sides,
	// left then right (e.g. "_2024", "_2020").
	Suffixes [2]string

	// DropRight removes right-side columns before the join. Right key
	// columns are never dropped.
	DropRight []string
}

// InnerJoin merges two tables on their key columns, keeping only rows whose
// keys appear on both sides. Key pairs with identical names collapse into a
// single output column; every other name collision gets the configured
// suffixes. When both inputs have rows but the join produces none, a
// diagnostic is logged, since an empty join is usually a key-normalization
// mismatch rather than genuine disjointness.
func InnerJoin(left, right *Table, opts JoinOptions) (*Table, error) {
	if len(opts.LeftKeys) == 0 || len(opts.LeftKeys) != len(opts.RightKeys) {
		return nil, eris.New("table: join requires matching left and right key lists")
	}
	for _, k := range opts.LeftKeys {
		if !left.Has(k) {
			return nil, eris.Errorf("table: left join key %q not found", k)
		}
	}
	for _, k := range opts.RightKeys {
		if !right.Has(k) {
			return nil, eris.Errorf("table: right join key %q not found", k)
		}
	}

	rightKeySet := make(map[string]bool, len(opts.RightKeys))
	for _, k := range opts.RightKeys {
		rightKeySet[k] = true
	}
	var drop []string
	for _, c := range opts.DropRight {
		if !rightKeySet[c] {
			drop = append(drop, c)
		}
	}
	right = right.DropColumns(drop...)

	// Key pairs sharing a name collapse into one column (kept from the left).
	sharedKey := make(map[string]bool)
	for i, lk := range opts.LeftKeys {
		if lk == opts.RightKeys[i] {
			sharedKey[lk] = true
		}
	}

	collides := make(map[string]bool)
	for _, c := range right.Columns() {
		if left.Has(c) && !sharedKey[c] {
			collides[c] = true
		}
	}

	var outCols []string
	leftSrc := left.Columns()
	for _, c := range leftSrc {
		if collides[c] {
			outCols = append(outCols, c+opts.Suffixes[0])
		} else {
			outCols = append(outCols, c)
		}
	}
	var rightSrc []string
	for _, c := range right.Columns() {
		if sharedKey[c] {
			continue
		}
		rightSrc = append(rightSrc, c)
		if collides[c] {
			outCols = append(outCols, c+opts.Suffixes[1])
		} else {
			outCols = append(outCols, c)
		}
	}

	out, err := New(outCols...)
	if err != nil {
		return nil, eris.Wrap(err, "table: join output columns")
	}

	byKey := make(map[string][]int, right.NumRows())
	for row := 0; row < right.NumRows(); row++ {
		k := compositeKey(right, row, opts.RightKeys)
		byKey[k] = append(byKey[k], row)
	}

	for lrow := 0; lrow < left.NumRows(); lrow++ {
		k := compositeKey(left, lrow, opts.LeftKeys)
		for _, rrow := range byKey[k] {
			vals := make([]Value, 0, len(outCols))
			for _, c := range leftSrc {
				vals = append(vals, left.Value(lrow, c))
			}
			for _, c := range rightSrc {
				vals = append(vals, right.Value(rrow, c))
			}
			if err := out.Append(vals...); err != nil {
				return nil, eris.Wrap(err, "table: join append")
			}
		}
	}

	if out.NumRows() == 0 && left.NumRows() > 0 && right.NumRows() > 0 {
		zap.L().Warn("table: inner join produced no rows",
			zap.Strings("left_keys", opts.LeftKeys),
			zap.Strings("right_keys", opts.RightKeys),
			zap.Int("left_rows", left.NumRows()),
			zap.Int("right_rows", right.NumRows()),
		)
	}

	return out, nil
}

func compositeKey(t *Table, row int, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = t.Value(row, k).Text()
	}
	return strings.Join(parts, "\x1f")
}
