package deck

// HoleCategory is a coarse preflop strength bucket.
type HoleCategory string

const (
	CategoryPremium HoleCategory = "Premium"
	CategoryStrong  HoleCategory = "Strong"
	CategoryMedium  HoleCategory = "Medium"
	CategoryWeak    HoleCategory = "Weak"
	CategoryTrash   HoleCategory = "Trash"
	CategoryUnknown HoleCategory = "Unknown"
)

// Categorize buckets two hole cards:
//
//	Premium  JJ+, AK
//	Strong   TT, AQ, AJ
//	Medium   77-99, suited broadway
//	Weak     22-66, suited connectors and one-gappers
//	Trash    everything else
func Categorize(hole []Card) HoleCategory {
	if len(hole) != 2 {
		return CategoryUnknown
	}
	lo, hi := hole[0].Rank, hole[1].Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	pair := lo == hi
	suited := hole[0].Suit == hole[1].Suit

	switch {
	case pair && lo >= Jack, lo == King && hi == Ace:
		return CategoryPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return CategoryStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
