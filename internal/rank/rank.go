package rank

import (
	"fmt"

	"sweeperleader/internal/common"
)

// Unranked is the sentinel label for players below the lowest threshold
const Unranked = "Unranked"

// Tier pairs an experience threshold with the role label granted
// from that threshold on
type Tier struct {
	Threshold int
	Label     string
}

// Table is an ordered list of tiers with strictly increasing thresholds.
// Tier assignment is a pure function of experience, fixed at startup
type Table struct {
	tiers []Tier
}

func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: tier table is empty", common.ErrInvalidArgument)
	}
	for i, tier := range tiers {
		if tier.Label == "" {
			return nil, fmt.Errorf("%w: tier %d has an empty label", common.ErrInvalidArgument, i)
		}
		if i > 0 && tier.Threshold <= tiers[i-1].Threshold {
			return nil, fmt.Errorf("%w: thresholds are not strictly increasing at %q", common.ErrInvalidArgument, tier.Label)
		}
	}
	table := Table{tiers: append([]Tier(nil), tiers...)}
	return &table, nil
}

// DefaultTable returns the tier ladder used by the server,
// Bronze I at 0 experience up to Unreal at 10000
func DefaultTable() *Table {
	table, err := NewTable([]Tier{
		{0, "Bronze I"}, {100, "Bronze II"}, {200, "Bronze III"},
		{400, "Silver I"}, {600, "Silver II"}, {800, "Silver III"},
		{1200, "Gold I"}, {1600, "Gold II"}, {2000, "Gold III"},
		{2600, "Platinum I"}, {3200, "Platinum II"}, {3800, "Platinum III"},
		{4600, "Diamond I"}, {5400, "Diamond II"}, {6200, "Diamond III"},
		{7200, "Elite"}, {8500, "Champion"}, {10000, "Unreal"},
	})
	if err != nil {
		panic(err)
	}
	return table
}

// TierFor returns the label of the highest threshold not exceeding the
// provided experience, or Unranked if the experience is below every
// threshold. Negative experience is a programming error
func (t *Table) TierFor(experience int) (string, error) {
	if experience < 0 {
		return "", fmt.Errorf("%w: negative experience %d", common.ErrInvalidArgument, experience)
	}
	label := Unranked
	for _, tier := range t.tiers {
		if experience < tier.Threshold {
			break
		}
		label = tier.Label
	}
	return label, nil
}

// Tiers returns a copy of the tier ladder, lowest threshold first
func (t *Table) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}
