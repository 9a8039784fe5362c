package election

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/transform"
)

// Winner labels for the derived categorical field.
const (
	WinnerA       = "Republican"
	WinnerB       = "Democratic"
	WinnerUnknown = "Unknown"
)

// rightDropColumns are dropped from the earlier-year table before joining:
// their left-hand counterparts already carry the meaning, and keeping them
// would only force ambiguous post-join names.
var rightDropColumns = []string{
	"state_name", "county_name", "votes_gop", "votes_dem", "total_votes", "diff",
}

// CountyNameCandidates and StateNameCandidates locate display columns on the
// joined table for hover labels.
var (
	CountyNameCandidates = []string{"county_name_2024", "county_name", "NAME"}
	StateNameCandidates  = []string{"state_name_2024", "state_name", "State"}
)

// CrossYear is the result of joining two yearly snapshots.
type CrossYear struct {
	Table *table.Table

	// CurrentMargin and PreviousMargin name the two independently derived
	// margin columns, e.g. "margin_pct_2024" and "margin_pct_2020".
	CurrentMargin  string
	PreviousMargin string

	// WinnerColumn names the derived categorical winner label for the
	// current year.
	WinnerColumn string
}

// CrossYearJoin inner-joins two county results tables on the normalized FIPS
// key, then re-derives the margin independently on each side so the two
// years are comparable on one scale. Counties present in only one year are
// dropped: the shift view only wants counties comparable across both. Inputs are cloned; the caller's tables are never mutated.
func CrossYearJoin(current, previous *table.Table, currentYear, previousYear int, spec Spec) (*CrossYear, error) {
	curSuffix := fmt.Sprintf("_%d", currentYear)
	prevSuffix := fmt.Sprintf("_%d", previousYear)

	left := current.Clone()
	right := previous.Clone()

	leftKey, ok := table.Resolve(left, transform.FIPSCandidates)
	if !ok {
		return nil, table.NewMissingColumnError(left, fmt.Sprintf("county FIPS code (%d results)", currentYear), transform.FIPSCandidates...)
	}
	rightKey, ok := table.Resolve(right, transform.FIPSCandidates)
	if !ok {
		return nil, table.NewMissingColumnError(right, fmt.Sprintf("county FIPS code (%d results)", previousYear), transform.FIPSCandidates...)
	}

	// Symmetric normalization: the join silently drops rows if only one
	// side is padded.
	if err := transform.NormalizeFIPSColumn(left, leftKey); err != nil {
		return nil, eris.Wrap(err, "election: normalize current-year FIPS")
	}
	if err := transform.NormalizeFIPSColumn(right, rightKey); err != nil {
		return nil, eris.Wrap(err, "election: normalize previous-year FIPS")
	}

	joined, err := table.InnerJoin(left, right, table.JoinOptions{
		LeftKeys:  []string{leftKey},
		RightKeys: []string{rightKey},
		Suffixes:  [2]string{curSuffix, prevSuffix},
		DropRight: rightDropColumns,
	})
	if err != nil {
		return nil, eris.Wrap(err, "election: cross-year join")
	}

	// Suffixing invalidates the original candidate lists, so each side's
	// margin is re-derived against suffix-aware candidates.
	curSpec := spec.WithSuffix(curSuffix)
	curDeriv, err := Derive(joined, curSpec)
	if err != nil {
		return nil, eris.Wrapf(err, "election: derive %d margin", currentYear)
	}
	prevSpec := spec.WithSuffix(prevSuffix)
	prevDeriv, err := Derive(joined, prevSpec)
	if err != nil {
		return nil, eris.Wrapf(err, "election: derive %d margin", previousYear)
	}

	winnerCol := "winner" + curSuffix
	if err := labelWinners(joined, winnerCol, curSpec, curDeriv.Column); err != nil {
		return nil, eris.Wrap(err, "election: winner labels")
	}

	zap.L().Debug("cross-year join complete",
		zap.Int("rows", joined.NumRows()),
		zap.String("current_margin", curDeriv.Detail()),
		zap.String("previous_margin", prevDeriv.Detail()),
	)

	return &CrossYear{
		Table:          joined,
		CurrentMargin:  curDeriv.Column,
		PreviousMargin: prevDeriv.Column,
		WinnerColumn:   winnerCol,
	}, nil
}

// labelWinners derives the per-row winner: by comparing the two share
// columns when both resolve, else by the sign of the already-derived margin
// (positive → A, zero or negative → B), else the unknown sentinel.
func labelWinners(t *table.Table, out string, spec Spec, marginCol string) error {
	shareA, okA := table.Resolve(t, spec.ShareA)
	shareB, okB := table.Resolve(t, spec.ShareB)

	switch {
	case okA && okB:
		return t.AddColumn(out, func(row int) table.Value {
			a, aOK := t.Float(row, shareA)
			b, bOK := t.Float(row, shareB)
			if !aOK || !bOK {
				return table.String(WinnerUnknown)
			}
			if a > b {
				return table.String(WinnerA)
			}
			return table.String(WinnerB)
		})
	case t.Has(marginCol):
		return t.AddColumn(out, func(row int) table.Value {
			m, ok := t.Float(row, marginCol)
			if !ok {
				return table.String(WinnerUnknown)
			}
			if m > 0 {
				return table.String(WinnerA)
			}
			return table.String(WinnerB)
		})
	default:
		return t.AddColumn(out, func(int) table.Value {
			return table.String(WinnerUnknown)
		})
	}
}
