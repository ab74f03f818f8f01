package serial

import (
	"io"
	"time"

	goserial "github.com/tarm/serial"
)

// Config selects a serial port.
type Config struct {
	Port    string
	Baud    int
	Timeout time.Duration
}

// Open opens the port described by c with 8N1 framing.
func Open(c Config) (io.ReadWriteCloser, error) {
	cfg := &goserial.Config{
		Name:        c.Port,
		Baud:        c.Baud,
		Parity:      goserial.ParityNone,
		Size:        8,
		StopBits:    goserial.Stop1,
		ReadTimeout: c.Timeout,
	}
	return goserial.OpenPort(cfg)
}
