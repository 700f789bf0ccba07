package phy

// Generic LoRa modulation constants (platform independent). Drivers and the
// transport layer should depend on this file rather than on raw numbers.
const (
	// Spreading factors at or above this threshold use low data rate
	// optimisation in the airtime formula.
	LowDataRateThreshold = SF11

	// Symbols always present in a LoRa payload section.
	basePayloadSymbols = 8

	// Fixed part of the payload-symbol numerator: 28 for the header/CR
	// overhead plus 16 for the payload CRC.
	payloadOverheadBits = 28 + 16

	// Bits saved by dropping the explicit header.
	implicitHeaderBits = 20

	// Preamble overhead in quarter symbols (4.25 symbols).
	preambleOverheadQuarters = 17

	// DefaultPreamble is the LoRaWAN preamble length in symbols.
	DefaultPreamble = 8

	// MaxFrameSize is the largest LoRa PHY payload.
	MaxFrameSize = 255
)
