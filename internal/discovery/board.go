package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Board is a browser board found on the network
type Board struct {
	// Instance is the advertised service instance name (e.g., "Jeopardy on studio")
	Instance string

	// Hostname is the mDNS hostname (e.g., "studio.local.")
	Hostname string

	// IP is the address to reach the board on, IPv4 preferred
	IP string

	// Port is the HTTP port of the board
	Port int

	// Metadata contains the TXT record data
	// Common fields: "app=jeopardy", "version=1.2.0", "path=/"
	Metadata map[string]string

	// DiscoveredAt is when the board was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the board
func (b *Board) String() string {
	return fmt.Sprintf("%s (%s) at %s", b.Instance, b.Hostname, net.JoinHostPort(b.IP, strconv.Itoa(b.Port)))
}

// URL returns the address to open in a browser
func (b *Board) URL() string {
	path := b.GetMetadata("path")
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(b.IP, strconv.Itoa(b.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Board) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
