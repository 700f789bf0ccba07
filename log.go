package loraphy

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

var logFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{module} ▶ %{level:.4s}%{color:reset} %{message}`,
)

// SetupLOG routes every loraphy logger to out (stderr when nil) at the
// given level ("DEBUG", "INFO", ...).
func SetupLOG(level string, out io.Writer) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return err
	}
	if out == nil {
		out = os.Stderr
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(out, "", 0), logFormat)
	leveled := logging.SetBackend(backend)
	leveled.SetLevel(lvl, "")
	return nil
}
