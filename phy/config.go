package phy

import "fmt"

// Bandwidth is the LoRa channel width.
type Bandwidth uint8

const (
	BW7_8kHz Bandwidth = iota + 1
	BW10_4kHz
	BW15_6kHz
	BW20_8kHz
	BW31_25kHz
	BW41_7kHz
	BW62_5kHz
	BW125kHz
	BW250kHz
	BW500kHz
)

var bandwidthHz = [...]uint32{
	BW7_8kHz:   7810,
	BW10_4kHz:  10420,
	BW15_6kHz:  15630,
	BW20_8kHz:  20830,
	BW31_25kHz: 31250,
	BW41_7kHz:  41670,
	BW62_5kHz:  62500,
	BW125kHz:   125000,
	BW250kHz:   250000,
	BW500kHz:   500000,
}

// Valid reports whether bw is one of the enumerated channel widths.
func (bw Bandwidth) Valid() bool {
	return bw >= BW7_8kHz && bw <= BW500kHz
}

// Hz returns the channel width in Hertz, or 0 for an invalid value.
func (bw Bandwidth) Hz() uint32 {
	if !bw.Valid() {
		return 0
	}
	return bandwidthHz[bw]
}

// KHz returns the channel width truncated to whole kilohertz.
func (bw Bandwidth) KHz() uint32 { return bw.Hz() / 1000 }

func (bw Bandwidth) String() string {
	if !bw.Valid() {
		return fmt.Sprintf("Bandwidth(%d)", uint8(bw))
	}
	hz := bw.Hz()
	if hz%1000 == 0 {
		return fmt.Sprintf("%dkHz", hz/1000)
	}
	return fmt.Sprintf("%d.%02dkHz", hz/1000, hz%1000/10)
}

// SpreadingFactor is the LoRa spreading factor; a symbol carries SF bits
// over 2^SF chips.
type SpreadingFactor uint8

const (
	SF7 SpreadingFactor = iota + 7
	SF8
	SF9
	SF10
	SF11
	SF12
)

func (sf SpreadingFactor) Valid() bool { return sf >= SF7 && sf <= SF12 }

// ChipsPerSymbol returns 2^SF.
func (sf SpreadingFactor) ChipsPerSymbol() uint32 { return 1 << sf }

func (sf SpreadingFactor) String() string { return fmt.Sprintf("SF%d", uint8(sf)) }

// CodingRate is the forward error correction rate 4/Denom().
type CodingRate uint8

const (
	CR4_5 CodingRate = iota + 1
	CR4_6
	CR4_7
	CR4_8
)

func (cr CodingRate) Valid() bool { return cr >= CR4_5 && cr <= CR4_8 }

// Denom returns the coding rate denominator (5-8).
func (cr CodingRate) Denom() uint32 { return uint32(cr) + 4 }

func (cr CodingRate) String() string {
	if !cr.Valid() {
		return fmt.Sprintf("CodingRate(%d)", uint8(cr))
	}
	return fmt.Sprintf("4/%d", cr.Denom())
}

// RfConfig describes the channel a frame is sent or received on. It is a
// plain value: copy it freely and compare it with ==.
type RfConfig struct {
	Frequency       uint32 // Hz
	Bandwidth       Bandwidth
	SpreadingFactor SpreadingFactor
	CodingRate      CodingRate
}

// Validate returns an error describing the first invalid modulation field.
func (c RfConfig) Validate() error {
	if !c.Bandwidth.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBandwidth, uint8(c.Bandwidth))
	}
	if !c.SpreadingFactor.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSpreadingFactor, uint8(c.SpreadingFactor))
	}
	if !c.CodingRate.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCodingRate, uint8(c.CodingRate))
	}
	return nil
}

func (c RfConfig) String() string {
	return fmt.Sprintf("%dHz %s %s CR%s", c.Frequency, c.SpreadingFactor, c.Bandwidth, c.CodingRate)
}

// TxConfig pairs an RfConfig with the transmit power.
type TxConfig struct {
	Power int8 // dBm
	Rf    RfConfig
}

// RxQuality holds the link figures of a received frame.
type RxQuality struct {
	rssi int16
	snr  int8
}

func NewRxQuality(rssi int16, snr int8) RxQuality {
	return RxQuality{rssi: rssi, snr: snr}
}

// RSSI returns the received signal strength in dBm.
func (q RxQuality) RSSI() int16 { return q.rssi }

// SNR returns the signal to noise ratio in dB.
func (q RxQuality) SNR() int8 { return q.snr }

func (q RxQuality) String() string {
	return fmt.Sprintf("rssi=%ddBm snr=%ddB", q.rssi, q.snr)
}
