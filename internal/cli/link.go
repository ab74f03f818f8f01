package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/CK6170/vectorkit/internal/config"
	"github.com/CK6170/vectorkit/serial"
	"github.com/CK6170/vectorkit/ui"
)

const linkLongDesc string = `Send and receive vectors over a serial line.

Each vector travels as one frame: STX, a big-endian length, the binary
encoding and a CRC16.

  vectorkit link ports
  vectorkit link send --port /dev/ttyUSB0 1,2,3
  vectorkit link recv --port /dev/ttyUSB0`

func newLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Move vectors over a serial line",
		Long:  linkLongDesc,
	}
	cmd.PersistentFlags().StringP("port", "p", "", "Serial port name")
	cmd.PersistentFlags().Int("baud", 0, "Baud rate (default 115200)")
	cmd.PersistentFlags().Int("timeout-ms", 0, "Read timeout in milliseconds")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "ports",
			Short: "List available serial ports",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ports := serial.ListPorts()
				if len(ports) == 0 {
					ui.Warningf(cmd.OutOrStdout(), "no serial ports found\n")
					return nil
				}
				for _, p := range ports {
					if p.USB {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\tusb %s:%s\n", p.Name, p.VID, p.PID)
						continue
					}
					fmt.Fprintln(cmd.OutOrStdout(), p.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "send <components...>",
			Short: "Send one vector frame",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := parseVector(args)
				if err != nil {
					return err
				}
				port, err := a.openPort()
				if err != nil {
					return err
				}
				defer port.Close()
				if err := serial.WriteFrame(port, v); err != nil {
					return err
				}
				a.log.Info("frame sent", "port", a.cfg.Link.Port, "len", v.Len())
				ui.Greenf(cmd.OutOrStdout(), "sent %s to %s\n", v.Repr(), a.cfg.Link.Port)
				return nil
			},
		},
		&cobra.Command{
			Use:   "recv",
			Short: "Wait for one vector frame and print it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				port, err := a.openPort()
				if err != nil {
					return err
				}
				defer port.Close()
				v, err := serial.ReadFrame(port)
				if err != nil {
					return err
				}
				a.log.Info("frame received", "port", a.cfg.Link.Port, "len", v.Len())
				return printResult(cmd, v)
			},
		},
	)
	return cmd
}

func (a *app) openPort() (io.ReadWriteCloser, error) {
	if a.cfg.Link.Port == "" {
		return nil, fmt.Errorf("no serial port configured; pass --port or set %s_LINK_PORT", config.EnvPrefix)
	}
	port, err := serial.Open(serial.Config{
		Port:    a.cfg.Link.Port,
		Baud:    a.cfg.Link.Baud,
		Timeout: time.Duration(a.cfg.Link.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.cfg.Link.Port, err)
	}
	return port, nil
}
