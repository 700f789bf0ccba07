package transport

import (
	"context"
	"runtime"

	"github.com/ystepanoff/loraphy/phy"
)

// DefaultRx receives one frame by polling d.RxUntilState for IrqDone until
// the driver reports it. Intermediate states are skipped. Each round yields
// to the scheduler so a driver that returns early never turns this into a
// busy loop.
//
// The SNR is narrowed to 8 bits by plain conversion.
func DefaultRx(ctx context.Context, d RxUntilStater, buf []byte) (int, phy.RxQuality, error) {
	for {
		state, err := d.RxUntilState(ctx, buf, phy.IrqDone)
		if err != nil {
			return 0, phy.RxQuality{}, err
		}
		if state.IsDone() {
			return int(state.Length), phy.NewRxQuality(state.Status.RSSI, int8(state.Status.SNR)), nil
		}
		logger.Debugf("rx: skipping %s", state)

		runtime.Gosched()
		if err := ctx.Err(); err != nil {
			return 0, phy.RxQuality{}, err
		}
	}
}

// DefaultRxUntilState serves drivers that only know whole frames: it waits
// for one with d.Rx and reports IrqDone whatever state was asked for.
func DefaultRxUntilState(ctx context.Context, d FrameReceiver, buf []byte, _ phy.IrqKind) (phy.IrqState, error) {
	n, q, err := d.Rx(ctx, buf)
	if err != nil {
		return phy.IrqState{}, err
	}
	return phy.Done(uint8(n), phy.PacketStatus{RSSI: q.RSSI(), SNR: int16(q.SNR())}), nil
}

// DefaultLowPower is the LowPower of radios without a low power mode.
func DefaultLowPower(context.Context) error { return nil }
