package transport

import (
	"context"
	"errors"
	"time"

	"github.com/brocaar/lorawan/band"

	"github.com/ystepanoff/loraphy/phy"
)

// Window is a receive slot opened Delay after the baseline of a Timer.
type Window struct {
	Delay time.Duration
	Rf    phy.RfConfig
}

// DetectionInterval is how long the window stays open waiting for a
// preamble: the span of a bare, empty payload section on Rf.
func (w Window) DetectionInterval() time.Duration {
	return w.Rf.TimeOnAir(0, true, 0)
}

// WindowsForBand returns the RX1 and RX2 windows the regional parameters of
// b define for an uplink sent on uplink. RX1 listens on the uplink channel.
func WindowsForBand(b band.Band, uplink phy.RfConfig) (rx1, rx2 Window, err error) {
	defaults := b.GetDefaults()
	rf2, err := phy.RfConfigForDataRate(b, defaults.RX2DataRate, uint32(defaults.RX2Frequency), uplink.CodingRate)
	if err != nil {
		return Window{}, Window{}, err
	}
	rx1 = Window{Delay: defaults.ReceiveDelay1, Rf: uplink}
	rx2 = Window{Delay: defaults.ReceiveDelay2, Rf: rf2}
	return rx1, rx2, nil
}

type rxResult struct {
	state phy.IrqState
	err   error
}

// OpenWindow arms the receiver for w, waits for the window on t and listens
// for a preamble until the detection interval has passed. A frame whose
// preamble was detected in time is received to the end and left in buf.
// ErrNoFrame is returned when the window closes empty.
//
// The radio is only driven from one goroutine at a time: when the window
// closes first, the pending receive is cancelled and waited for before
// OpenWindow returns.
func OpenWindow(ctx context.Context, r *Radio, t Timer, buf *phy.Buffer, w Window) (int, phy.RxQuality, error) {
	if err := r.ConfigureReceive(ctx, w.Rf); err != nil {
		return 0, phy.RxQuality{}, err
	}
	if err := t.At(ctx, w.Delay); err != nil {
		return 0, phy.RxQuality{}, err
	}

	rxCtx, cancelRx := context.WithCancel(ctx)
	defer cancelRx()
	received := make(chan rxResult, 1)
	go func() {
		state, err := r.ReceiveUntilState(rxCtx, buf, phy.IrqPreambleReceived)
		received <- rxResult{state: state, err: err}
	}()

	closeCtx, cancelClose := context.WithCancel(ctx)
	defer cancelClose()
	closed := make(chan error, 1)
	go func() {
		closed <- t.At(closeCtx, w.Delay+w.DetectionInterval())
	}()

	var res rxResult
	select {
	case res = <-received:
		cancelClose()
		<-closed
	case err := <-closed:
		cancelRx()
		res = <-received
		if err != nil {
			return 0, phy.RxQuality{}, err
		}
		if errors.Is(res.err, context.Canceled) && ctx.Err() == nil {
			logger.Warningf("rx window at %v on %s closed empty", w.Delay, w.Rf)
			return 0, phy.RxQuality{}, ErrNoFrame
		}
	}
	if res.err != nil {
		return 0, phy.RxQuality{}, res.err
	}

	if res.state.IsDone() {
		q := phy.NewRxQuality(res.state.Status.RSSI, int8(res.state.Status.SNR))
		return buf.Len(), q, nil
	}
	logger.Debugf("rx window at %v: %s, receiving", w.Delay, res.state)
	return r.Receive(ctx, buf)
}
