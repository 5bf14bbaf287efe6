package domain

// Tier is the closed set of ticket categories. Price and capacity are static
// business data keyed by tier; values outside this set never enter the system.
type Tier string

const (
	TierVIP      Tier = "vip"
	TierFrontRow Tier = "front_row"
	TierGA       Tier = "ga"
)

// Tiers lists every valid tier in a stable order.
func Tiers() []Tier {
	return []Tier{TierVIP, TierFrontRow, TierGA}
}

func (t Tier) Valid() bool {
	switch t {
	case TierVIP, TierFrontRow, TierGA:
		return true
	}
	return false
}

// ParseTier maps a wire value onto the closed tier set.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", ErrInvalidTier
	}
	return t, nil
}
