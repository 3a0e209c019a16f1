// Package reachcheck verifies that the target host accepts TCP
// connections before a browser is launched against it.
package reachcheck

import (
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/vertti/uismoke/pkg/check"
)

// TCPDialer abstracts network dialing for testability.
type TCPDialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealTCPDialer uses the real net package.
type RealTCPDialer struct{}

// DialTimeout dials the network address with a timeout.
func (d *RealTCPDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

var errNoHost = errors.New("missing host")

// Check verifies that the host of URL is reachable.
type Check struct {
	URL     string        // http(s) URL whose host:port is dialed
	Timeout time.Duration // connection timeout (default 5s)
	Dialer  TCPDialer     // injected for testing
}

// Address returns the host:port dialed for URL.
func Address(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", &url.Error{Op: "parse", URL: rawURL, Err: errNoHost}
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Run executes the reachability check.
func (c *Check) Run() check.Result {
	result := check.Result{Name: "reach: " + c.URL}

	address, err := Address(c.URL)
	if err != nil {
		return result.Failf("invalid URL: %v", err)
	}
	result.Name = "reach: " + address

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	dialer := c.Dialer
	if dialer == nil {
		dialer = &RealTCPDialer{}
	}

	conn, err := dialer.DialTimeout("tcp", address, timeout)
	if err != nil {
		return result.Failf("connection failed: %v", err)
	}
	defer func() { _ = conn.Close() }()

	return result.Passf("connected to %s", address)
}
