// Package loraphy provides a façade to the LoRa radio abstraction layer.
package loraphy

import (
	"github.com/ystepanoff/loraphy/phy"
	"github.com/ystepanoff/loraphy/transport"
)

// The host constructors live in constructors_host.go
// (//go:build !tinygo && !baremetal) next to the simulated driver they use.

// Re-export types so callers need a single import
type (
	RfConfig        = phy.RfConfig
	TxConfig        = phy.TxConfig
	RxQuality       = phy.RxQuality
	Bandwidth       = phy.Bandwidth
	SpreadingFactor = phy.SpreadingFactor
	CodingRate      = phy.CodingRate
	IrqKind         = phy.IrqKind
	IrqState        = phy.IrqState
	Buffer          = phy.Buffer
	PhyRxTx         = transport.PhyRxTx
	Timer           = transport.Timer
	Radio           = transport.Radio
	Endpoint        = transport.Endpoint
	Config          = transport.Config
	Window          = transport.Window
)

// Error values exposed in the public API
var (
	ErrRadio         = transport.ErrRadio
	ErrNoFrame       = transport.ErrNoFrame
	ErrInvalidConfig = transport.ErrInvalidConfig
	ErrBufferFull    = phy.ErrBufferFull
)

// Constants exposed in the public API
const (
	IrqPreambleReceived = phy.IrqPreambleReceived
	IrqHeaderValid      = phy.IrqHeaderValid
	IrqDone             = phy.IrqDone

	DefaultPreamble = phy.DefaultPreamble
	MaxFrameSize    = phy.MaxFrameSize
)

func DefaultConfig() Config { return transport.DefaultConfig() }

func NewBuffer(capacity int) *Buffer { return phy.NewBuffer(capacity) }
