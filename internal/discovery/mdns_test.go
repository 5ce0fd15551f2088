package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	e.AddrIPv4 = v4
	e.AddrIPv6 = v6
	e.Text = txt
	return e
}

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name:     "board with IPv4",
			entry:    entry("Jeopardy on studio", "studio.local.", 8080, []net.IP{net.ParseIP("192.168.4.16")}, nil, AppTag, "path=/"),
			wantIP:   "192.168.4.16",
			wantPort: 8080,
		},
		{
			name:     "IPv6 only board",
			entry:    entry("Jeopardy on attic", "attic.local.", 8080, nil, []net.IP{net.ParseIP("fe80::1")}, AppTag),
			wantIP:   "fe80::1",
			wantPort: 8080,
		},
		{
			name: "both families (should prefer IPv4)",
			entry: entry("Jeopardy on den", "den.local.", 9000,
				[]net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}, AppTag),
			wantIP:   "192.168.1.50",
			wantPort: 9000,
		},
		{
			name:    "foreign service on the same type",
			entry:   entry("Something else", "other.local.", 8080, []net.IP{net.ParseIP("192.168.1.1")}, nil, "app=other"),
			wantNil: true,
		},
		{
			name:    "no TXT records",
			entry:   entry("Bare", "bare.local.", 8080, []net.IP{net.ParseIP("192.168.1.1")}, nil),
			wantNil: true,
		},
		{
			name:    "no IP address",
			entry:   entry("Jeopardy on void", "void.local.", 8080, nil, nil, AppTag),
			wantNil: true,
		},
		{
			name:    "no port",
			entry:   entry("Jeopardy on void", "void.local.", 0, []net.IP{net.ParseIP("192.168.1.1")}, nil, AppTag),
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if board != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", board)
				}
				return
			}

			if board == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil board")
			}
			if board.Instance != tt.entry.Instance {
				t.Errorf("board.Instance = %v, want %v", board.Instance, tt.entry.Instance)
			}
			if board.IP != tt.wantIP {
				t.Errorf("board.IP = %v, want %v", board.IP, tt.wantIP)
			}
			if board.Port != tt.wantPort {
				t.Errorf("board.Port = %v, want %v", board.Port, tt.wantPort)
			}
			if board.Hostname != tt.entry.HostName {
				t.Errorf("board.Hostname = %v, want %v", board.Hostname, tt.entry.HostName)
			}
			if time.Since(board.DiscoveredAt) > time.Second {
				t.Errorf("board.DiscoveredAt is not recent: %v", board.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	board := scanner.parseServiceEntry(entry("Jeopardy on studio", "studio.local.", 8080,
		[]net.IP{net.ParseIP("192.168.4.16")}, nil,
		AppTag, "path=/", "flag", "version=1.0"))
	if board == nil {
		t.Fatal("parseServiceEntry() = nil, want board")
	}

	expectedMetadata := map[string]string{
		"app":     "jeopardy",
		"path":    "/",
		"flag":    "", // Key without value
		"version": "1.0",
	}

	if len(board.Metadata) != len(expectedMetadata) {
		t.Errorf("board.Metadata has %d entries, want %d", len(board.Metadata), len(expectedMetadata))
	}
	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := board.Metadata[key]; !ok {
			t.Errorf("board.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("board.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestAnnouncement_ShutdownNil(t *testing.T) {
	// Shutdown on a failed or absent announcement must be harmless
	var a *Announcement
	a.Shutdown()
	(&Announcement{}).Shutdown()
}

// Note: live mDNS announce/scan needs multicast on the host network and
// is exercised manually with `jeopardy serve --announce` and `jeopardy scan`.
