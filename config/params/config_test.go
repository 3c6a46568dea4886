package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideVerdictConfig(t *testing.T) {
	cfg := VerdictConfig().Copy()
	cfg.MaxBondMultiplier = 12345
	OverrideVerdictConfig(cfg)
	assert.Equal(t, uint64(12345), VerdictConfig().MaxBondMultiplier)

	UseMainnetConfig()
	assert.Equal(t, MainnetConfig().MaxBondMultiplier, VerdictConfig().MaxBondMultiplier)
}

func TestMainnetConfig_RatesConsistent(t *testing.T) {
	cfg := MainnetConfig()
	// The loss rate must exceed the gain rate so reputation cannot be farmed
	// by alternating outcomes.
	require.Greater(t, cfg.ReputationLossRate, cfg.ReputationGainRate)
	require.Less(t, cfg.PlatformFeePercent, cfg.OneHundredPercent)
	require.Less(t, cfg.RefundNumerator, cfg.RefundDenominator)
	require.Less(t, cfg.MinBondMultiplier, cfg.BondMultiplierScale)
	require.Greater(t, cfg.MaxBondMultiplier, cfg.BondMultiplierScale)
}

func TestMainnetConfig_CopyIsolated(t *testing.T) {
	a := MainnetConfig()
	a.RefundNumerator = 1
	assert.Equal(t, uint64(99), MainnetConfig().RefundNumerator)
}
