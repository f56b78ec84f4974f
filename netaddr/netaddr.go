// Package netaddr finds the address other machines on the LAN use to reach
// this host.
package netaddr

import (
	"errors"
	"fmt"
	"net"
)

// ErrNoIPv4 is returned when the host has no non-loopback IPv4 address.
var ErrNoIPv4 = errors.New("no network adapters with an IPv4 address in the system")

// AddrsFunc lists the host's interface addresses.
type AddrsFunc func() ([]net.Addr, error)

// LocalIPv4 returns the first non-loopback IPv4 address of the host. It is
// not cached; every call enumerates the interfaces again.
func LocalIPv4() (string, error) {
	return FirstIPv4(net.InterfaceAddrs)
}

// FirstIPv4 returns the first non-loopback IPv4 address reported by addrs.
func FirstIPv4(addrs AddrsFunc) (string, error) {
	list, err := addrs()
	if err != nil {
		return "", fmt.Errorf("list interface addresses: %w", err)
	}

	for _, addr := range list {
		var ip net.IP
		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		default:
			continue
		}
		if ip.IsLoopback() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}

	return "", ErrNoIPv4
}

// ServeURL formats the display URL for a server on ip listening on port.
// The port is used as typed.
func ServeURL(ip, port string) string {
	return fmt.Sprintf("http://%s:%s", ip, port)
}
