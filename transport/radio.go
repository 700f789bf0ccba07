package transport

import (
	"context"

	"github.com/op/go-logging"

	"github.com/ystepanoff/loraphy/phy"
)

var logger = logging.MustGetLogger("loraphy-transport")

// Radio is what the MAC layer talks to. It drives a PhyRxTx with frames
// staged in a phy.Buffer and reports every driver failure as an *Error.
// Nothing is retried here.
type Radio struct {
	driver PhyRxTx
}

func NewRadio(d PhyRxTx) *Radio {
	return &Radio{driver: d}
}

// Driver returns the wrapped driver.
func (r *Radio) Driver() PhyRxTx { return r.driver }

// Transmit sends the frame staged in buf and returns its time on air in
// microseconds once it has left the antenna.
func (r *Radio) Transmit(ctx context.Context, cfg phy.TxConfig, buf *phy.Buffer) (uint32, error) {
	airtime, err := r.driver.Tx(ctx, cfg, buf.Bytes())
	if err != nil {
		return 0, wrap(ctx, "tx", err)
	}
	logger.Debugf("tx: %d bytes on %s at %ddBm, %dus on air", buf.Len(), cfg.Rf, cfg.Power, airtime)
	return airtime, nil
}

// ConfigureReceive arms the receiver for cfg.
func (r *Radio) ConfigureReceive(ctx context.Context, cfg phy.RfConfig) error {
	if err := r.driver.SetupRx(ctx, cfg); err != nil {
		return wrap(ctx, "setup rx", err)
	}
	logger.Debugf("rx: armed on %s", cfg)
	return nil
}

// Receive clears buf, waits for one frame and leaves it staged in buf.
func (r *Radio) Receive(ctx context.Context, buf *phy.Buffer) (int, phy.RxQuality, error) {
	buf.Clear()
	n, q, err := r.driver.Rx(ctx, rxView(buf))
	if err != nil {
		return 0, phy.RxQuality{}, wrap(ctx, "rx", err)
	}
	buf.Advance(n)
	logger.Debugf("rx: %d bytes, %s", n, q)
	return n, q, nil
}

// ReceiveUntilState clears buf and waits for the receiver to reach desired.
// When the returned state is IrqDone the frame is staged in buf.
func (r *Radio) ReceiveUntilState(ctx context.Context, buf *phy.Buffer, desired phy.IrqKind) (phy.IrqState, error) {
	buf.Clear()
	state, err := r.driver.RxUntilState(ctx, rxView(buf), desired)
	if err != nil {
		return phy.IrqState{}, wrap(ctx, "rx until "+desired.String(), err)
	}
	if state.IsDone() {
		buf.Advance(int(state.Length))
	}
	logger.Debugf("rx: reached %s", state)
	return state, nil
}

// LowPower puts the radio to sleep.
func (r *Radio) LowPower(ctx context.Context) error {
	if err := r.driver.LowPower(ctx); err != nil {
		return wrap(ctx, "low power", err)
	}
	return nil
}

// rxView is the part of buf a driver may fill. It stops one byte short of
// the capacity so any length a driver can report keeps the cursor in bounds;
// longer frames are truncated by the driver.
func rxView(buf *phy.Buffer) []byte {
	return buf.Raw()[:buf.Cap()-1]
}
