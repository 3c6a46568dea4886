package params

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *VerdictChainConfig {
	return mainnetVerdictConfig.Copy()
}

var mainnetVerdictConfig = &VerdictChainConfig{
	// Fixed-point scales.
	OneHundredPercent:   100_000_000, // 100% with 6 decimal places of percent.
	BondMultiplierScale: 10_000,

	// Economic parameters.
	PlatformFeePercent: 1_000_000, // 1%.
	RefundNumerator:    99,
	RefundDenominator:  100,
	MinBondMultiplier:  7_071,   // sqrt(1/2), the multiplier at 100% reputation.
	MaxBondMultiplier:  100_000, // 10x, the multiplier at 0% reputation.
	ReputationGainRate: 2_000_000, // +2% for prevailing participants.
	ReputationLossRate: 5_000_000, // -5% for losing participants.

	// Program deployments.
	ProgramIDV1: "VrdC7k2yUysLPCXgQ6nhnVzkqtp4xW5c9jBBTQKdVoz1",
	ProgramIDV2: "VrdQJ83kyPvrMw9hiAhrLCAa6ykGTSngFFTZnqUZbMe2",

	// Account layout convention: signer, primary, dispute, record, subject,
	// then instruction-specific remaining accounts.
	SignerAccountIndex:  0,
	PrimaryAccountIndex: 1,
	DisputeAccountIndex: 2,
	RecordAccountIndex:  3,
	SubjectAccountIndex: 4,
}
