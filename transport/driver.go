package transport

import (
	"context"

	"github.com/ystepanoff/loraphy/phy"
)

// PhyRxTx is the capability set a LoRa radio driver implements. One caller
// owns a driver at a time; implementations need no locking.
//
// Every method is a suspension point and must return ctx.Err() once ctx is
// done instead of spinning. Drivers that have no specialised Rx,
// RxUntilState or LowPower delegate to DefaultRx, DefaultRxUntilState or
// DefaultLowPower.
type PhyRxTx interface {
	// Tx transmits frame and returns once it has left the antenna, reporting
	// the time on air in microseconds.
	Tx(ctx context.Context, cfg phy.TxConfig, frame []byte) (uint32, error)

	// SetupRx arms the receiver. It does not wait for a frame.
	SetupRx(ctx context.Context, cfg phy.RfConfig) error

	// Rx waits for one frame and copies it into buf. It can be called again
	// without another SetupRx.
	Rx(ctx context.Context, buf []byte) (int, phy.RxQuality, error)

	// RxUntilState waits until the receiver reaches desired or a later
	// state. Only an IrqDone state carries a frame in buf.
	RxUntilState(ctx context.Context, buf []byte, desired phy.IrqKind) (phy.IrqState, error)

	// LowPower puts the radio into its lowest power mode.
	LowPower(ctx context.Context) error
}

// RxUntilStater is the part of PhyRxTx DefaultRx is built on.
type RxUntilStater interface {
	RxUntilState(ctx context.Context, buf []byte, desired phy.IrqKind) (phy.IrqState, error)
}

// FrameReceiver is the part of PhyRxTx DefaultRxUntilState is built on.
type FrameReceiver interface {
	Rx(ctx context.Context, buf []byte) (int, phy.RxQuality, error)
}
