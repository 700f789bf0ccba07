package phy

import "errors"

var (
	ErrBufferFull             = errors.New("frame does not fit in radio buffer")
	ErrInvalidBandwidth       = errors.New("invalid LoRa bandwidth")
	ErrInvalidSpreadingFactor = errors.New("invalid spreading factor (valid range: 7-12)")
	ErrInvalidCodingRate      = errors.New("invalid coding rate (valid range: 4/5-4/8)")
	ErrUnsupportedModulation  = errors.New("data rate does not use LoRa modulation")
)
