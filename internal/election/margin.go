// Package election computes the county-level margin analytics behind the
// choropleth and cross-year shift views: margin derivation from whichever
// column shape a results file happens to use, the 2024/2020 join, and the
// per-county winner label.
package election

import (
	"fmt"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// scaleThreshold decides whether a share or margin column is fractional.
// If the maximum absolute value observed across the column is at or below
// this, values are treated as fractions in [-1, 1] and rescaled by 100.
// A column mixing fractional and percentage encodings is not detected and
// will silently misscale; that is a known limit of the heuristic.
const scaleThreshold = 1.5

// Method identifies which source shape a margin was derived from.
type Method int

const (
	MethodNone        Method = iota
	MethodShares             // two share columns (A, B)
	MethodPrecomputed        // a single precomputed margin column
	MethodCounts             // two raw count columns, optional explicit total
)

func (m Method) String() string {
	switch m {
	case MethodShares:
		return "shares"
	case MethodPrecomputed:
		return "precomputed"
	case MethodCounts:
		return "counts"
	default:
		return "none"
	}
}

// Spec holds the candidate column names, most-preferred first, for each
// semantic role the margin deriver can work from.
type Spec struct {
	ShareA     []string // outcome-A share (GOP)
	ShareB     []string // outcome-B share (Dem)
	Margin     []string // precomputed A-minus-B margin
	VotesA     []string // outcome-A raw counts
	VotesB     []string // outcome-B raw counts
	TotalVotes []string // explicit total, else A+B per row
	Out        string   // name of the derived column
}

// DefaultSpec returns the candidate lists for US presidential results files.
func DefaultSpec() Spec {
	return Spec{
		ShareA: []string{"trump_pct", "pct_trump", "per_gop", "pct_gop", "rep_pct", "republican_pct"},
		ShareB: []string{"biden_pct", "pct_biden", "per_dem", "pct_dem", "dem_pct", "democrat_pct"},
		Margin: []string{
			"margin", "margin_pct", "rep_margin", "gop_margin", "trump_biden_margin",
			"trump_minus_biden_pct", "biden_trump_margin", "per_point_diff",
		},
		VotesA:     []string{"trump_votes", "votes_trump", "gop_votes", "rep_votes", "republican_votes"},
		VotesB:     []string{"biden_votes", "votes_biden", "dem_votes", "democrat_votes"},
		TotalVotes: []string{"total_votes", "votes_total", "total", "ballots"},
		Out:        "margin_pct",
	}
}

// WithSuffix returns a Spec whose candidates try the suffixed name before
// the original. After a suffixing join only colliding columns carry the
// suffix, so both spellings must be tried.
func (s Spec) WithSuffix(suffix string) Spec {
	return Spec{
		ShareA:     suffixCandidates(s.ShareA, suffix),
		ShareB:     suffixCandidates(s.ShareB, suffix),
		Margin:     suffixCandidates(s.Margin, suffix),
		VotesA:     suffixCandidates(s.VotesA, suffix),
		VotesB:     suffixCandidates(s.VotesB, suffix),
		TotalVotes: suffixCandidates(s.TotalVotes, suffix),
		Out:        s.Out + suffix,
	}
}

func suffixCandidates(base []string, suffix string) []string {
	out := make([]string, 0, len(base)*2)
	for _, c := range base {
		out = append(out, c+suffix)
	}
	out = append(out, base...)
	return out
}

// Derivation describes how a margin column was produced.
type Derivation struct {
	Column  string // name of the derived column
	Method  Method
	Sources []string // the resolved source columns, in use order
}

// Detail returns a human-readable account of the derivation.
func (d *Derivation) Detail() string {
	switch d.Method {
	case MethodShares:
		return fmt.Sprintf("used share columns: %s − %s", d.Sources[0], d.Sources[1])
	case MethodPrecomputed:
		return fmt.Sprintf("used provided margin column: %s", d.Sources[0])
	case MethodCounts:
		return fmt.Sprintf("computed from vote counts: (%s − %s) / %s", d.Sources[0], d.Sources[1], d.Sources[2])
	default:
		return "no margin derived"
	}
}

// Derive adds a signed percentage-point margin column (outcome A minus
// outcome B) to t, trying the four source shapes in fixed priority order:
// share pair, precomputed margin, count pair, then failure. Rows whose
// sources are null get a null margin; a count pair with a zero total also
// yields null rather than an infinity.
func Derive(t *table.Table, spec Spec) (*Derivation, error) {
	shareA, okA := table.Resolve(t, spec.ShareA)
	shareB, okB := table.Resolve(t, spec.ShareB)
	if okA && okB {
		return deriveFromShares(t, spec.Out, shareA, shareB)
	}

	if marginCol, ok := table.Resolve(t, spec.Margin); ok {
		return deriveFromPrecomputed(t, spec.Out, marginCol)
	}

	votesA, okVA := table.Resolve(t, spec.VotesA)
	votesB, okVB := table.Resolve(t, spec.VotesB)
	if okVA && okVB {
		totalCol, _ := table.Resolve(t, spec.TotalVotes)
		return deriveFromCounts(t, spec.Out, votesA, votesB, totalCol)
	}

	candidates := make([]string, 0, len(spec.ShareA)+len(spec.ShareB)+len(spec.Margin)+len(spec.VotesA)+len(spec.VotesB))
	candidates = append(candidates, spec.ShareA...)
	candidates = append(candidates, spec.ShareB...)
	candidates = append(candidates, spec.Margin...)
	candidates = append(candidates, spec.VotesA...)
	candidates = append(candidates, spec.VotesB...)
	return nil, table.NewMissingColumnError(t, "margin derivation (share, margin, or vote-count columns)", candidates...)
}

// setColumn fills out row by row, overwriting an existing column of the same
// name. Results files may themselves ship a column named like the output
// ("margin_pct" is a margin candidate), and re-derivation over an already
// derived table must succeed, so an existing output is replaced, never an
// error.
func setColumn(t *table.Table, out string, fill func(row int) table.Value) error {
	if !t.Has(out) {
		return t.AddColumn(out, fill)
	}
	for row := 0; row < t.NumRows(); row++ {
		if err := t.Set(row, out, fill(row)); err != nil {
			return err
		}
	}
	return nil
}

func deriveFromShares(t *table.Table, out, shareA, shareB string) (*Derivation, error) {
	scale := 1.0
	if maxAbs, ok := t.MaxAbs(shareA); ok && maxAbs <= scaleThreshold {
		scale = 100
	}
	err := setColumn(t, out, func(row int) table.Value {
		a, okA := t.Float(row, shareA)
		b, okB := t.Float(row, shareB)
		if !okA || !okB {
			return table.Null()
		}
		return table.Number((a - b) * scale)
	})
	if err != nil {
		return nil, err
	}
	return &Derivation{Column: out, Method: MethodShares, Sources: []string{shareA, shareB}}, nil
}

func deriveFromPrecomputed(t *table.Table, out, marginCol string) (*Derivation, error) {
	scale := 1.0
	if maxAbs, ok := t.MaxAbs(marginCol); ok && maxAbs <= scaleThreshold {
		scale = 100
	}
	err := setColumn(t, out, func(row int) table.Value {
		m, ok := t.Float(row, marginCol)
		if !ok {
			return table.Null()
		}
		return table.Number(m * scale)
	})
	if err != nil {
		return nil, err
	}
	return &Derivation{Column: out, Method: MethodPrecomputed, Sources: []string{marginCol}}, nil
}

func deriveFromCounts(t *table.Table, out, votesA, votesB, totalCol string) (*Derivation, error) {
	totalName := totalCol
	if totalName == "" {
		totalName = votesA + " + " + votesB
	}
	err := setColumn(t, out, func(row int) table.Value {
		a, okA := t.Float(row, votesA)
		if !okA {
			a = 0
		}
		b, okB := t.Float(row, votesB)
		if !okB {
			b = 0
		}
		total := a + b
		if totalCol != "" {
			if v, ok := t.Float(row, totalCol); ok {
				total = v
			}
		}
		if total == 0 {
			return table.Null()
		}
		return table.Number((a - b) / total * 100)
	})
	if err != nil {
		return nil, err
	}
	return &Derivation{Column: out, Method: MethodCounts, Sources: []string{votesA, votesB, totalName}}, nil
}
