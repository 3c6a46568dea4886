// Package params defines the protocol configuration for the Verdict
// arbitration ledger: economic constants, fee and refund rates, the bond
// multiplier clamps, and the account layout convention used when decoding
// transactions. The values mirror the constants compiled into the on-chain
// program and must never drift from them.
package params

// VerdictChainConfig contains the constants of one deployment of the
// arbitration program.
type VerdictChainConfig struct {
	// Fixed-point scale constants.
	OneHundredPercent   uint64 // Scaled representation of 100% (6 decimal places of percent).
	BondMultiplierScale uint64 // Fixed-point scale of the minimum-bond multiplier.

	// Economic parameters.
	PlatformFeePercent uint64 // Fee subtracted once at resolution, in OneHundredPercent units.
	RefundNumerator    uint64 // Refund fraction applied on NoParticipation rounds.
	RefundDenominator  uint64
	MinBondMultiplier  uint64 // Multiplier clamp floor, in BondMultiplierScale units.
	MaxBondMultiplier  uint64 // Multiplier clamp ceiling, in BondMultiplierScale units.
	ReputationGainRate uint64 // Added to winners' scores at resolution.
	ReputationLossRate uint64 // Subtracted from losers' scores at resolution. Larger than the gain rate.

	// Program deployments, keyed by schema generation.
	ProgramIDV1 string
	ProgramIDV2 string

	// Account list layout convention of program instructions.
	SignerAccountIndex  int
	PrimaryAccountIndex int
	DisputeAccountIndex int
	RecordAccountIndex  int
	SubjectAccountIndex int
}

var verdictConfig = MainnetConfig()

// VerdictConfig retrieves the verdict chain config.
func VerdictConfig() *VerdictChainConfig {
	return verdictConfig
}

// OverrideVerdictConfig replaces the active config. The preferred pattern is
// to call VerdictConfig(), copy it, change the specific parameters, and then
// call OverrideVerdictConfig(c). Any subsequent calls to
// params.VerdictConfig() will return this new configuration.
func OverrideVerdictConfig(c *VerdictChainConfig) {
	verdictConfig = c
}

// UseMainnetConfig for verdict client services.
func UseMainnetConfig() {
	verdictConfig = MainnetConfig()
}

// Copy returns a deep copy of the config.
func (c *VerdictChainConfig) Copy() *VerdictChainConfig {
	config := *c
	return &config
}
