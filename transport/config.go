package transport

import (
	"fmt"

	"github.com/brocaar/lorawan/band"

	"github.com/ystepanoff/loraphy/phy"
)

// Config selects the channel and resources an Endpoint works with.
type Config struct {
	Band       string // LoRaWAN band name, e.g. "EU868"
	DataRate   int    // uplink data rate index within Band
	Frequency  uint32 // uplink frequency in Hz
	CodingRate phy.CodingRate
	TxPower    int8 // dBm
	BufferSize int  // staging buffer capacity in bytes
}

// DefaultConfig returns an EU868 DR5 setup on 868.1 MHz whose buffer holds
// the largest LoRa frame.
func DefaultConfig() Config {
	return Config{
		Band:       string(band.EU868),
		DataRate:   5,
		Frequency:  868100000,
		CodingRate: phy.CR4_5,
		TxPower:    14,
		BufferSize: phy.MaxFrameSize + 1,
	}
}

func (c Config) Validate() error {
	if c.Band == "" {
		return fmt.Errorf("%w: no band", ErrInvalidConfig)
	}
	if c.Frequency == 0 {
		return fmt.Errorf("%w: no frequency", ErrInvalidConfig)
	}
	if !c.CodingRate.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, phy.ErrInvalidCodingRate)
	}
	if c.BufferSize < 2 {
		return fmt.Errorf("%w: buffer size %d", ErrInvalidConfig, c.BufferSize)
	}
	return nil
}

// Resolve loads the band and builds the uplink TxConfig.
func (c Config) Resolve() (band.Band, phy.TxConfig, error) {
	if err := c.Validate(); err != nil {
		return nil, phy.TxConfig{}, err
	}
	b, err := phy.LoadBand(c.Band)
	if err != nil {
		return nil, phy.TxConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	rf, err := phy.RfConfigForDataRate(b, c.DataRate, c.Frequency, c.CodingRate)
	if err != nil {
		return nil, phy.TxConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return b, phy.TxConfig{Power: c.TxPower, Rf: rf}, nil
}
