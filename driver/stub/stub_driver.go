//go:build !tinygo && !baremetal

package stub

import (
	"context"
	"errors"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/ystepanoff/loraphy/phy"
	"github.com/ystepanoff/loraphy/transport"
)

var ErrNotArmed = errors.New("stub: receiver not armed")

const rxQueueCapacity = 64

// Frame is a frame waiting to be heard by the simulated receiver. A zero Rf
// matches whatever the receiver is armed with.
type Frame struct {
	Data   []byte
	Rf     phy.RfConfig
	Status phy.PacketStatus
}

// Driver simulates a LoRa transceiver for host-side testing. It only
// implements RxUntilState; Rx goes through transport.DefaultRx.
type Driver struct {
	// Stepwise makes RxUntilState report every intermediate state of a
	// frame, one per call, instead of jumping to the requested one.
	Stepwise bool

	clock clock.Clock

	mu       sync.Mutex
	notify   chan struct{}
	rxQueue  []pendingFrame
	txLog    txLog
	armed    bool
	rxCfg    phy.RfConfig
	sleeping bool
	failNext error
}

type pendingFrame struct {
	Frame
	stage phy.IrqKind
}

// New returns a driver whose transmissions take their time on air on c,
// or on the wall clock if c is nil.
func New(c clock.Clock) *Driver {
	if c == nil {
		c = clock.New()
	}
	return &Driver{clock: c, notify: make(chan struct{})}
}

var _ transport.PhyRxTx = (*Driver)(nil)

func (d *Driver) Tx(ctx context.Context, cfg phy.TxConfig, frame []byte) (uint32, error) {
	if err := cfg.Rf.Validate(); err != nil {
		return 0, err
	}

	d.mu.Lock()
	if err := d.takeFailure(); err != nil {
		d.mu.Unlock()
		return 0, err
	}
	d.armed = false
	d.sleeping = false
	d.txLog.record(cfg, frame)
	d.mu.Unlock()

	airtime := cfg.Rf.TimeOnAirMicros(phy.DefaultPreamble, true, uint32(len(frame)))
	t := d.clock.Timer(cfg.Rf.TimeOnAir(phy.DefaultPreamble, true, uint32(len(frame))))
	select {
	case <-ctx.Done():
		t.Stop()
		return 0, ctx.Err()
	case <-t.C:
	}
	return airtime, nil
}

func (d *Driver) SetupRx(_ context.Context, cfg phy.RfConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.takeFailure(); err != nil {
		return err
	}
	d.armed = true
	d.sleeping = false
	d.rxCfg = cfg
	return nil
}

func (d *Driver) Rx(ctx context.Context, buf []byte) (int, phy.RxQuality, error) {
	return transport.DefaultRx(ctx, d, buf)
}

func (d *Driver) RxUntilState(ctx context.Context, buf []byte, desired phy.IrqKind) (phy.IrqState, error) {
	for {
		d.mu.Lock()
		if err := d.takeFailure(); err != nil {
			d.mu.Unlock()
			return phy.IrqState{}, err
		}
		if !d.armed {
			d.mu.Unlock()
			return phy.IrqState{}, ErrNotArmed
		}
		if i := d.match(); i >= 0 {
			state := d.advance(i, buf, desired)
			d.mu.Unlock()
			return state, nil
		}
		notify := d.notify
		d.mu.Unlock()

		select {
		case <-ctx.Done():
			return phy.IrqState{}, ctx.Err()
		case <-notify:
		}
	}
}

func (d *Driver) LowPower(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.takeFailure(); err != nil {
		return err
	}
	d.armed = false
	d.sleeping = true
	return nil
}

// InjectRx queues a frame for the receiver. Frames longer than a LoRa
// payload are truncated.
func (d *Driver) InjectRx(f Frame) {
	if len(f.Data) > phy.MaxFrameSize {
		f.Data = f.Data[:phy.MaxFrameSize]
	}
	f.Data = append([]byte(nil), f.Data...)

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.rxQueue) == rxQueueCapacity {
		// Drop the oldest to keep memory bounded.
		d.rxQueue = d.rxQueue[1:]
	}
	d.rxQueue = append(d.rxQueue, pendingFrame{Frame: f})
	close(d.notify)
	d.notify = make(chan struct{})
}

// FailNext makes the next driver operation fail with err.
func (d *Driver) FailNext(err error) {
	d.mu.Lock()
	d.failNext = err
	d.mu.Unlock()
}

// Transmissions returns the last transmissions, oldest first.
func (d *Driver) Transmissions() []Transmission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txLog.oldestFirst()
}

// GetTxLog returns the payloads of Transmissions.
func (d *Driver) GetTxLog() [][]byte {
	sent := d.Transmissions()
	out := make([][]byte, len(sent))
	for i, t := range sent {
		out[i] = t.Data
	}
	return out
}

// Armed reports the configuration the receiver listens on, if armed.
func (d *Driver) Armed() (phy.RfConfig, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rxCfg, d.armed
}

func (d *Driver) Sleeping() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sleeping
}

func (d *Driver) takeFailure() error {
	err := d.failNext
	d.failNext = nil
	return err
}

// match returns the index of the first queued frame audible on the armed
// configuration, or -1.
func (d *Driver) match() int {
	for i, f := range d.rxQueue {
		if f.Rf == (phy.RfConfig{}) || f.Rf == d.rxCfg {
			return i
		}
	}
	return -1
}

// advance moves frame i towards desired and reports the state reached.
// The frame leaves the queue once it is Done.
func (d *Driver) advance(i int, buf []byte, desired phy.IrqKind) phy.IrqState {
	f := &d.rxQueue[i]
	if d.Stepwise {
		f.stage++
	} else {
		f.stage = max(f.stage+1, desired)
	}
	if f.stage < phy.IrqDone {
		return phy.Reached(f.stage)
	}

	n := copy(buf, f.Data)
	status := f.Status
	d.rxQueue = append(d.rxQueue[:i], d.rxQueue[i+1:]...)
	return phy.Done(uint8(n), status)
}

// Transmission is a frame the driver sent together with the settings it
// was sent with.
type Transmission struct {
	Cfg  phy.TxConfig
	Data []byte
}

const txLogCapacity = 64

// txLog keeps the last txLogCapacity transmissions in a fixed ring.
type txLog struct {
	entries [txLogCapacity]Transmission
	next    int // slot the next transmission goes to
	full    bool
}

func (l *txLog) record(cfg phy.TxConfig, frame []byte) {
	l.entries[l.next] = Transmission{Cfg: cfg, Data: append([]byte(nil), frame...)}
	l.next = (l.next + 1) % txLogCapacity
	if l.next == 0 {
		l.full = true
	}
}

// oldestFirst returns copies of the logged transmissions in send order.
func (l *txLog) oldestFirst() []Transmission {
	var ordered []Transmission
	if l.full {
		ordered = append(ordered, l.entries[l.next:]...)
	}
	ordered = append(ordered, l.entries[:l.next]...)

	out := make([]Transmission, len(ordered))
	for i, t := range ordered {
		out[i] = Transmission{Cfg: t.Cfg, Data: append([]byte(nil), t.Data...)}
	}
	return out
}
