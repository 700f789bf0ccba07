package phy

import (
	"math"
	"time"
)

// SymbolTimeMicros returns the duration of one symbol, 2^SF / BW, in
// microseconds. The bandwidth is taken in whole kilohertz.
func (c RfConfig) SymbolTimeMicros() uint32 {
	c.mustValidate()
	return c.SpreadingFactor.ChipsPerSymbol() * 1000 / c.Bandwidth.KHz()
}

// SymbolTime is SymbolTimeMicros as a time.Duration.
func (c RfConfig) SymbolTime() time.Duration {
	return time.Duration(c.SymbolTimeMicros()) * time.Microsecond
}

// TimeOnAirMicros estimates how long a frame of length bytes occupies the
// channel, following the SX127x datasheet formula.
//
// With preamble == 0 only the payload section is counted, which is what
// detection intervals are sized with. Otherwise preamble, sync word and
// payload are included. A CRC is always assumed.
//
// The config must be valid; TimeOnAirMicros panics otherwise. Results that
// do not fit in 32 bits saturate at math.MaxUint32.
func (c RfConfig) TimeOnAirMicros(preamble uint32, explicitHeader bool, length uint32) uint32 {
	c.mustValidate()

	tSym := int64(c.SymbolTimeMicros())
	sf := int64(c.SpreadingFactor)
	cr := int64(c.CodingRate.Denom())

	var de, h int64
	if c.SpreadingFactor >= LowDataRateThreshold {
		de = 1
	}
	if !explicitHeader {
		h = 1
	}

	num := 8*int64(length) - 4*sf + payloadOverheadBits - implicitHeaderBits*h
	ratio := divCeil(num, 4*(sf-2*de))
	// The clamp applies to the product, not to the ratio.
	payloadSymbols := basePayloadSymbols + max(0, ratio*cr)

	var us int64
	if preamble == 0 {
		us = tSym * payloadSymbols
	} else {
		us = (4*int64(preamble) + preambleOverheadQuarters + 4*payloadSymbols) * tSym / 4
	}
	if us > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(us)
}

// TimeOnAir is TimeOnAirMicros as a time.Duration.
func (c RfConfig) TimeOnAir(preamble uint32, explicitHeader bool, length uint32) time.Duration {
	return time.Duration(c.TimeOnAirMicros(preamble, explicitHeader, length)) * time.Microsecond
}

func (c RfConfig) mustValidate() {
	if err := c.Validate(); err != nil {
		panic("phy: time on air of invalid config: " + err.Error())
	}
}

// divCeil rounds num/denom towards positive infinity; denom must be > 0.
func divCeil(num, denom int64) int64 {
	q := num / denom
	if num%denom != 0 && num > 0 {
		q++
	}
	return q
}
