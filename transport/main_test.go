package transport

import (
	"os"
	"testing"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	// Poll loops log every skipped state at debug.
	logging.SetLevel(logging.WARNING, "loraphy-transport")
	os.Exit(m.Run())
}
