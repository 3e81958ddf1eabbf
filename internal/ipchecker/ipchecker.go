// Package ipchecker keeps the page server reachable only from a trusted
// subnet. The client holds a single process-wide session, so it is meant to
// be served on loopback; by default only 127.0.0.0/8 may connect.
package ipchecker

import (
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/hoaxify/internal/logger"
)

// IPChecker decides whether a request comes from the trusted subnet.
type IPChecker struct {
	trustedSubnet *net.IPNet
}

// New parses trustedSubnet in CIDR notation. An empty string disables the
// check and every client is let through.
func New(trustedSubnet string) (*IPChecker, error) {
	if trustedSubnet == "" {
		return &IPChecker{}, nil
	}
	_, allowedNet, err := net.ParseCIDR(trustedSubnet)
	if err != nil {
		return nil, fmt.Errorf("in internal/ipchecker/ipchecker.go/New(): error while `net.ParseCIDR()` calling: %w", err)
	}
	return &IPChecker{
		trustedSubnet: allowedNet,
	}, nil
}

// Check reports whether clientIP may use the server.
func (checker *IPChecker) Check(clientIP net.IP) bool {
	if checker.trustedSubnet == nil {
		return true
	}
	return clientIP != nil && checker.trustedSubnet.Contains(clientIP)
}

// GetClientIP returns the address of the connecting peer. Forwarding
// headers are ignored: the server is not meant to sit behind a proxy.
func (checker *IPChecker) GetClientIP(request *http.Request) (net.IP, error) {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return nil, fmt.Errorf("in internal/ipchecker/ipchecker.go/GetClientIP(): error while `net.SplitHostPort()` calling: %w", err)
	}
	return net.ParseIP(host), nil
}

// TrustedOnly answers 403 to clients outside the trusted subnet.
func (checker *IPChecker) TrustedOnly(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		clientIP, err := checker.GetClientIP(request)
		if err != nil {
			logger.Log.Debugln("Error calling the `checker.GetClientIP()`: ", zap.Error(err))
			http.Error(response, http.StatusText(http.StatusForbidden), http.StatusForbidden)

			return
		}
		if !checker.Check(clientIP) {
			logger.Log.Debugln("Request from an untrusted address rejected", zap.String("ip", clientIP.String()))
			http.Error(response, http.StatusText(http.StatusForbidden), http.StatusForbidden)

			return
		}

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}
