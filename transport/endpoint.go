package transport

import (
	"context"
	"errors"
	"time"

	"github.com/brocaar/lorawan/band"

	"github.com/ystepanoff/loraphy/phy"
)

// Endpoint runs class A exchanges over one radio: an uplink followed by the
// RX1 and RX2 windows of the band. It owns the radio, the timer and the
// staging buffer, so it must be used from a single goroutine.
type Endpoint struct {
	radio *Radio
	timer Timer
	buf   *phy.Buffer
	band  band.Band
	tx    phy.TxConfig
}

// Uplink describes a transmitted frame.
type Uplink struct {
	Length  int
	Airtime time.Duration
	Rf      phy.RfConfig
}

// Downlink is a frame received in one of the windows after an uplink.
type Downlink struct {
	Payload []byte
	Quality phy.RxQuality
	Window  int // 1 or 2
}

func NewEndpoint(d PhyRxTx, t Timer, cfg Config) (*Endpoint, error) {
	b, tx, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	return &Endpoint{
		radio: NewRadio(d),
		timer: t,
		buf:   phy.NewBuffer(cfg.BufferSize),
		band:  b,
		tx:    tx,
	}, nil
}

// TxConfig returns the uplink transmit configuration.
func (e *Endpoint) TxConfig() phy.TxConfig { return e.tx }

// Radio returns the radio the endpoint drives.
func (e *Endpoint) Radio() *Radio { return e.radio }

// Send stages payload and transmits it. The timer baseline is taken when
// the frame has left the antenna.
func (e *Endpoint) Send(ctx context.Context, payload []byte) (Uplink, error) {
	e.buf.Clear()
	if err := e.buf.Append(payload); err != nil {
		return Uplink{}, err
	}
	airtime, err := e.radio.Transmit(ctx, e.tx, e.buf)
	if err != nil {
		return Uplink{}, err
	}
	e.timer.Reset()

	up := Uplink{
		Length:  len(payload),
		Airtime: time.Duration(airtime) * time.Microsecond,
		Rf:      e.tx.Rf,
	}
	logger.Infof("uplink: %d bytes on %s, %v on air", up.Length, up.Rf, up.Airtime)
	return up, nil
}

// Exchange sends payload and listens in RX1, then RX2. The radio is put to
// sleep afterwards. ErrNoFrame means both windows closed empty.
func (e *Endpoint) Exchange(ctx context.Context, payload []byte) (Uplink, Downlink, error) {
	up, err := e.Send(ctx, payload)
	if err != nil {
		return Uplink{}, Downlink{}, err
	}

	down, err := e.listen(ctx)
	if sleepErr := e.radio.LowPower(ctx); sleepErr != nil && err == nil {
		err = sleepErr
	}
	if err != nil {
		return up, Downlink{}, err
	}
	return up, down, nil
}

func (e *Endpoint) listen(ctx context.Context) (Downlink, error) {
	rx1, rx2, err := WindowsForBand(e.band, e.tx.Rf)
	if err != nil {
		return Downlink{}, err
	}

	for i, w := range []Window{rx1, rx2} {
		n, q, err := OpenWindow(ctx, e.radio, e.timer, e.buf, w)
		if errors.Is(err, ErrNoFrame) {
			continue
		}
		if err != nil {
			return Downlink{}, err
		}
		down := Downlink{
			Payload: append([]byte(nil), e.buf.Bytes()[:n]...),
			Quality: q,
			Window:  i + 1,
		}
		logger.Infof("downlink: %d bytes in RX%d, %s", n, down.Window, q)
		return down, nil
	}
	return Downlink{}, ErrNoFrame
}
