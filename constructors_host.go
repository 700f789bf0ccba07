//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package loraphy

import (
	"github.com/ystepanoff/loraphy/driver/stub"
	"github.com/ystepanoff/loraphy/transport"
)

// NewSimulatedEndpoint returns an endpoint on a simulated radio running on
// the wall clock, together with that radio so frames can be injected.
func NewSimulatedEndpoint(cfg Config) (*Endpoint, *stub.Driver, error) {
	driver := stub.New(nil)
	ep, err := transport.NewEndpoint(driver, transport.NewTimer(nil), cfg)
	if err != nil {
		return nil, nil, err
	}
	return ep, driver, nil
}
