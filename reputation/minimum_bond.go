// Package reputation implements the reputation-weighted minimum bond model:
// low-reputation challengers post a larger bond, high-reputation challengers
// a smaller one, following multiplier = sqrt(0.5 / reputationFraction)
// clamped at the extremes. All arithmetic is integer fixed point so results
// match the on-chain program exactly.
package reputation

import (
	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/config/params"
	"github.com/verdictlabs/verdict-go/math"
)

// MinimumBond returns the stake a challenger with the given reputation score
// must post, given the subject's base bond. Score is a scaled percentage in
// [0, OneHundredPercent].
//
// A score of zero is resolved to the maximum multiplier by explicit branch;
// the general formula would divide by zero.
func MinimumBond(score, baseBond uint64) (uint64, error) {
	cfg := params.VerdictConfig()
	if score == 0 {
		bond, err := math.MulDiv64(baseBond, cfg.MaxBondMultiplier, cfg.BondMultiplierScale)
		if err != nil {
			return 0, errors.Wrap(err, "could not apply max bond multiplier")
		}
		return bond, nil
	}
	multiplier, err := bondMultiplier(score)
	if err != nil {
		return 0, err
	}
	bond, err := math.MulDiv64(baseBond, multiplier, cfg.BondMultiplierScale)
	if err != nil {
		return 0, errors.Wrap(err, "could not apply bond multiplier")
	}
	return bond, nil
}

// bondMultiplier computes sqrt(0.5 / reputationFraction) in
// BondMultiplierScale fixed point and clamps it to the configured bounds.
func bondMultiplier(score uint64) (uint64, error) {
	cfg := params.VerdictConfig()
	half := cfg.OneHundredPercent / 2
	scaleSq, err := math.Mul64(cfg.BondMultiplierScale, cfg.BondMultiplierScale)
	if err != nil {
		return 0, errors.Wrap(err, "could not square multiplier scale")
	}
	// ratio = 0.5/fraction at scale^2, so its square root lands at scale.
	ratio, err := math.MulDiv64(half, scaleSq, score)
	if err != nil {
		return 0, errors.Wrap(err, "could not compute multiplier ratio")
	}
	multiplier := math.IntegerSquareRoot(ratio)
	if multiplier < cfg.MinBondMultiplier {
		multiplier = cfg.MinBondMultiplier
	}
	if multiplier > cfg.MaxBondMultiplier {
		multiplier = cfg.MaxBondMultiplier
	}
	return multiplier, nil
}

// ApplyWin credits the fixed gain rate to a prevailing participant's score,
// clamped to OneHundredPercent.
func ApplyWin(score uint64) uint64 {
	cfg := params.VerdictConfig()
	updated, err := math.Add64(score, cfg.ReputationGainRate)
	if err != nil || updated > cfg.OneHundredPercent {
		return cfg.OneHundredPercent
	}
	return updated
}

// ApplyLoss debits the fixed loss rate from a losing participant's score,
// clamped to zero. The loss rate exceeds the gain rate.
func ApplyLoss(score uint64) uint64 {
	cfg := params.VerdictConfig()
	if score < cfg.ReputationLossRate {
		return 0
	}
	return score - cfg.ReputationLossRate
}
