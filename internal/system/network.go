package system

import (
	"fmt"
	"net"
	"strings"
)

// IPv4 returns the first non-loopback IPv4 address of an interface that is up.
// Interfaces whose name starts with prefer (for example "wlan") win.
func IPv4(prefer string) (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	fallback := ""
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil {
				continue
			}
			if prefer != "" && strings.HasPrefix(iface.Name, prefer) {
				return ip.String(), nil
			}
			if fallback == "" {
				fallback = ip.String()
			}
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("no IPv4 address")
	}
	return fallback, nil
}

// TransferURL builds the URL the web UI is reachable under for listenAddr
// (":80", "0.0.0.0:8080", ...). host is used when listenAddr names no host.
func TransferURL(host, listenAddr string) string {
	h, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "http://" + host + "/"
	}
	if h != "" && h != "0.0.0.0" && h != "::" {
		host = h
	}
	if port == "" || port == "80" {
		return "http://" + host + "/"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
