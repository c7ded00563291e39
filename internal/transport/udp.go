// Package transport performs the single blocking step of a query/response
// cycle: sending an encoded DNS payload over UDP and reading back at most
// 512 bytes. It knows nothing about the message layout; the codec sees no
// sockets, addresses or timeouts.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/vadim-su/dnswire/pkg/dns"
)

const defaultTimeout = 5 * time.Second

// Client exchanges raw DNS payloads with a single upstream server.
type Client struct {
	// Server is the upstream address in host:port form.
	Server string
	// Timeout bounds an exchange when the context carries no deadline.
	Timeout time.Duration
}

// NewClient returns a client for the given upstream server.
func NewClient(server string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{Server: server, Timeout: timeout}
}

// Exchange sends payload and returns the raw response bytes, at most 512.
// Cancellation and deadlines come from ctx; without a deadline the client's
// timeout applies.
func (c *Client) Exchange(ctx context.Context, payload []byte) ([]byte, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp", c.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.Server, err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.Timeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to send query to %s: %w", c.Server, err)
	}

	response := make([]byte, dns.MaxPacketSize)
	n, err := conn.Read(response)
	if err != nil {
		return nil, fmt.Errorf("failed to receive response from %s: %w", c.Server, err)
	}

	return response[:n], nil
}
