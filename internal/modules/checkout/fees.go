package checkout

// FeeSchedule describes the gateway fee charged to the payer on top of
// the requested amount. All values are in currency minor units.
type FeeSchedule struct {
	Base      int64 // flat fee
	PercentBP int64 // surcharge in basis points (290 = 2.9%)
	Step      int64 // surcharge truncated to the nearest lower multiple of this
}

func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{Base: 2000, PercentBP: 290, Step: 1000}
}

// Compute returns the total gateway fee for the given amount.
// Pure integer arithmetic so the result is deterministic:
// fee = Base + floor((amount * PercentBP / 10000) / Step) * Step
func (f FeeSchedule) Compute(amount int64) int64 {
	if amount < 0 {
		amount = 0
	}
	pct := amount * f.PercentBP / 10000
	if f.Step > 0 {
		pct = pct / f.Step * f.Step
	}
	return f.Base + pct
}
