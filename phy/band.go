package phy

import (
	"fmt"

	"github.com/brocaar/lorawan"
	"github.com/brocaar/lorawan/band"
)

// LoadBand returns the regional parameters for a LoRaWAN band name such as
// "EU868", without dwell time limits.
func LoadBand(name string) (band.Band, error) {
	b, err := band.GetConfig(band.Name(name), false, lorawan.DwellTimeNoLimit)
	if err != nil {
		return nil, fmt.Errorf("load band %s: %w", name, err)
	}
	return b, nil
}

// BandwidthFromKHz maps a bandwidth in kilohertz, as used by the regional
// parameters, to a Bandwidth.
func BandwidthFromKHz(khz int) (Bandwidth, error) {
	for bw := BW7_8kHz; bw <= BW500kHz; bw++ {
		if int(bw.KHz()) == khz {
			return bw, nil
		}
	}
	return 0, fmt.Errorf("%w: %dkHz", ErrInvalidBandwidth, khz)
}

// RfConfigForDataRate resolves data rate dr of band b into an RfConfig on
// the given frequency.
func RfConfigForDataRate(b band.Band, dr int, frequency uint32, cr CodingRate) (RfConfig, error) {
	rate, err := b.GetDataRate(dr)
	if err != nil {
		return RfConfig{}, fmt.Errorf("data rate %d: %w", dr, err)
	}
	if rate.Modulation != band.LoRaModulation {
		return RfConfig{}, fmt.Errorf("%w: DR%d is %s", ErrUnsupportedModulation, dr, rate.Modulation)
	}
	bw, err := BandwidthFromKHz(rate.Bandwidth)
	if err != nil {
		return RfConfig{}, err
	}
	cfg := RfConfig{
		Frequency:       frequency,
		Bandwidth:       bw,
		SpreadingFactor: SpreadingFactor(rate.SpreadFactor),
		CodingRate:      cr,
	}
	if err := cfg.Validate(); err != nil {
		return RfConfig{}, err
	}
	return cfg, nil
}
