package serial

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes an available serial port.
type PortInfo struct {
	Name string `json:"name"`
	USB  bool   `json:"usb"`
	VID  string `json:"vid,omitempty"`
	PID  string `json:"pid,omitempty"`
}

// ListPorts returns the available ports sorted by name.
//
// The OS enumerator is tried first; when it reports nothing, well-known
// device globs are expanded instead (not on Windows, which has none).
func ListPorts() []PortInfo {
	if ports, err := enumerator.GetDetailedPortsList(); err == nil && len(ports) > 0 {
		seen := make(map[string]struct{}, len(ports))
		out := make([]PortInfo, 0, len(ports))
		for _, p := range ports {
			if p == nil || p.Name == "" {
				continue
			}
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			out = append(out, PortInfo{Name: p.Name, USB: p.IsUSB, VID: p.VID, PID: p.PID})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}

	var names []string
	switch runtime.GOOS {
	case "windows":
		return nil
	case "darwin":
		names = globPorts("/dev/cu.*", "/dev/tty.*")
	default:
		names = globPorts("/dev/ttyUSB*", "/dev/ttyACM*")
	}
	out := make([]PortInfo, len(names))
	for i, n := range names {
		out[i] = PortInfo{Name: n}
	}
	return out
}

func globPorts(patterns ...string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		for _, m := range matches {
			if _, err := os.Stat(m); err != nil {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
