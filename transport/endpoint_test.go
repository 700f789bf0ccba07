package transport_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ystepanoff/loraphy/driver/stub"
	"github.com/ystepanoff/loraphy/phy"
	"github.com/ystepanoff/loraphy/transport"
)

// fastTimer shrinks every wait so the band's one and two second receive
// delays fit in a unit test.
type fastTimer struct {
	*transport.ClockTimer
}

const timeScale = 50

func (f fastTimer) At(ctx context.Context, offset time.Duration) error {
	return f.ClockTimer.At(ctx, offset/timeScale)
}

func (f fastTimer) Delay(ctx context.Context, d time.Duration) error {
	return f.ClockTimer.Delay(ctx, d/timeScale)
}

func newTestEndpoint(t *testing.T, cfg transport.Config) (*transport.Endpoint, *stub.Driver) {
	t.Helper()
	driver := stub.New(nil)
	ep, err := transport.NewEndpoint(driver, fastTimer{transport.NewTimer(nil)}, cfg)
	if err != nil {
		t.Fatalf("NewEndpoint() error = %v", err)
	}
	return ep, driver
}

func rx2Rf(t *testing.T, ep *transport.Endpoint) phy.RfConfig {
	t.Helper()
	b, err := phy.LoadBand(transport.DefaultConfig().Band)
	if err != nil {
		t.Fatalf("LoadBand() error = %v", err)
	}
	_, rx2, err := transport.WindowsForBand(b, ep.TxConfig().Rf)
	if err != nil {
		t.Fatalf("WindowsForBand() error = %v", err)
	}
	return rx2.Rf
}

func TestEndpoint_Exchange(t *testing.T) {
	tests := []struct {
		name       string
		onRx2      bool
		wantWindow int
	}{
		{name: "downlink in RX1", wantWindow: 1},
		{name: "downlink in RX2", onRx2: true, wantWindow: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, driver := newTestEndpoint(t, transport.DefaultConfig())

			rf := ep.TxConfig().Rf
			if tt.onRx2 {
				rf = rx2Rf(t, ep)
			}
			driver.InjectRx(stub.Frame{
				Data:   []byte("ack"),
				Rf:     rf,
				Status: phy.PacketStatus{RSSI: -88, SNR: 6},
			})

			up, down, err := ep.Exchange(context.Background(), []byte("hello"))
			if err != nil {
				t.Fatalf("Exchange() error = %v", err)
			}
			if up.Length != 5 || up.Airtime != ep.TxConfig().Rf.TimeOnAir(phy.DefaultPreamble, true, 5) {
				t.Errorf("Exchange() uplink = %+v", up)
			}
			if down.Window != tt.wantWindow {
				t.Errorf("Downlink.Window = %d, want %d", down.Window, tt.wantWindow)
			}
			if !bytes.Equal(down.Payload, []byte("ack")) {
				t.Errorf("Downlink.Payload = %q", down.Payload)
			}
			if down.Quality.RSSI() != -88 || down.Quality.SNR() != 6 {
				t.Errorf("Downlink.Quality = %s", down.Quality)
			}

			log := driver.GetTxLog()
			if len(log) != 1 || string(log[0]) != "hello" {
				t.Errorf("transmitted %q", log)
			}
			if !driver.Sleeping() {
				t.Error("radio not put to sleep after the exchange")
			}
		})
	}
}

func TestEndpoint_ExchangeWithoutDownlink(t *testing.T) {
	ep, driver := newTestEndpoint(t, transport.DefaultConfig())

	_, _, err := ep.Exchange(context.Background(), []byte{1, 2, 3})
	if !errors.Is(err, transport.ErrNoFrame) {
		t.Fatalf("Exchange() error = %v, want %v", err, transport.ErrNoFrame)
	}
	if !driver.Sleeping() {
		t.Error("radio not put to sleep after empty windows")
	}
}

func TestEndpoint_TransmitFailure(t *testing.T) {
	ep, driver := newTestEndpoint(t, transport.DefaultConfig())
	cause := errors.New("pa overcurrent")
	driver.FailNext(cause)

	_, _, err := ep.Exchange(context.Background(), []byte{1})
	if !errors.Is(err, transport.ErrRadio) || !errors.Is(err, cause) {
		t.Fatalf("Exchange() error = %v, want Radio error wrapping %v", err, cause)
	}
	if _, armed := driver.Armed(); armed {
		t.Error("receive window opened after a failed uplink")
	}
}

func TestEndpoint_PayloadTooLarge(t *testing.T) {
	cfg := transport.DefaultConfig()
	cfg.BufferSize = 16
	ep, driver := newTestEndpoint(t, cfg)

	if _, err := ep.Send(context.Background(), make([]byte, 16)); !errors.Is(err, phy.ErrBufferFull) {
		t.Fatalf("Send() error = %v, want %v", err, phy.ErrBufferFull)
	}
	if len(driver.GetTxLog()) != 0 {
		t.Error("oversized frame was transmitted")
	}
}

func TestEndpoint_DownlinkLargerThanBuffer(t *testing.T) {
	cfg := transport.DefaultConfig()
	cfg.BufferSize = 16
	ep, driver := newTestEndpoint(t, cfg)

	frame := bytes.Repeat([]byte{0x77}, 20)
	driver.InjectRx(stub.Frame{Data: frame, Rf: ep.TxConfig().Rf})

	_, down, err := ep.Exchange(context.Background(), []byte{1})
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if down.Window != 1 || !bytes.Equal(down.Payload, frame[:15]) {
		t.Errorf("Downlink = %+v, want the first 15 bytes in RX1", down)
	}
}

func TestOpenWindow_ClosesEmpty(t *testing.T) {
	driver := stub.New(nil)
	timer := transport.NewTimer(nil)
	w := transport.Window{
		Delay: 5 * time.Millisecond,
		Rf:    phy.RfConfig{Frequency: 868100000, Bandwidth: phy.BW500kHz, SpreadingFactor: phy.SF7, CodingRate: phy.CR4_5},
	}

	timer.Reset()
	_, _, err := transport.OpenWindow(context.Background(), transport.NewRadio(driver), timer, phy.NewBuffer(64), w)
	if !errors.Is(err, transport.ErrNoFrame) {
		t.Fatalf("OpenWindow() error = %v, want %v", err, transport.ErrNoFrame)
	}
	if elapsed := time.Since(timer.Baseline()); elapsed < w.Delay+w.DetectionInterval() {
		t.Errorf("window closed after %v, before %v", elapsed, w.Delay+w.DetectionInterval())
	}
}

func TestOpenWindow_ReceivesFrameInBuffer(t *testing.T) {
	driver := stub.New(nil)
	driver.Stepwise = true
	timer := transport.NewTimer(nil)
	w := transport.Window{
		Delay: 5 * time.Millisecond,
		Rf:    phy.RfConfig{Frequency: 868100000, Bandwidth: phy.BW125kHz, SpreadingFactor: phy.SF9, CodingRate: phy.CR4_5},
	}
	driver.InjectRx(stub.Frame{Data: []byte{0xAB, 0xCD}})

	buf := phy.NewBuffer(64)
	timer.Reset()
	n, _, err := transport.OpenWindow(context.Background(), transport.NewRadio(driver), timer, buf, w)
	if err != nil {
		t.Fatalf("OpenWindow() error = %v", err)
	}
	if n != 2 || !bytes.Equal(buf.Bytes(), []byte{0xAB, 0xCD}) {
		t.Errorf("OpenWindow() staged %v", buf.Bytes())
	}
}

func TestWindowsForBand(t *testing.T) {
	b, err := phy.LoadBand("EU868")
	if err != nil {
		t.Fatalf("LoadBand() error = %v", err)
	}
	uplink := phy.RfConfig{Frequency: 868300000, Bandwidth: phy.BW125kHz, SpreadingFactor: phy.SF9, CodingRate: phy.CR4_5}

	rx1, rx2, err := transport.WindowsForBand(b, uplink)
	if err != nil {
		t.Fatalf("WindowsForBand() error = %v", err)
	}
	if rx1.Delay != time.Second || rx1.Rf != uplink {
		t.Errorf("rx1 = %+v", rx1)
	}
	want := phy.RfConfig{Frequency: 869525000, Bandwidth: phy.BW125kHz, SpreadingFactor: phy.SF12, CodingRate: phy.CR4_5}
	if rx2.Delay != 2*time.Second || rx2.Rf != want {
		t.Errorf("rx2 = %+v", rx2)
	}
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*transport.Config)
		wantErr bool
	}{
		{"default", func(*transport.Config) {}, false},
		{"no band", func(c *transport.Config) { c.Band = "" }, true},
		{"unknown band", func(c *transport.Config) { c.Band = "MARS433" }, true},
		{"FSK data rate", func(c *transport.Config) { c.DataRate = 7 }, true},
		{"tiny buffer", func(c *transport.Config) { c.BufferSize = 1 }, true},
		{"bad coding rate", func(c *transport.Config) { c.CodingRate = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := transport.DefaultConfig()
			tt.mutate(&cfg)
			_, tx, err := cfg.Resolve()
			if tt.wantErr {
				if !errors.Is(err, transport.ErrInvalidConfig) {
					t.Errorf("Resolve() error = %v, want %v", err, transport.ErrInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if tx.Power != 14 || tx.Rf.SpreadingFactor != phy.SF7 || tx.Rf.Bandwidth != phy.BW125kHz {
				t.Errorf("Resolve() = %+v", tx)
			}
		})
	}
}
