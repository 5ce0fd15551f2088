package discovery

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/jeopardy/internal/logging"
)

const (
	// ServiceType is the mDNS service type browser boards advertise
	ServiceType = "_jeopardy._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for board discovery
	DefaultScanTimeout = 5 * time.Second

	// AppTag marks our own TXT records so other services on the type are skipped
	AppTag = "app=jeopardy"
)

// Announcement is a running mDNS registration
type Announcement struct {
	server *zeroconf.Server
}

// Announce advertises a browser board on port until Shutdown is called.
// An empty instance name defaults to "Jeopardy on <hostname>".
func Announce(instance string, port int, version string) (*Announcement, error) {
	if instance == "" {
		host, _ := os.Hostname()
		instance = "Jeopardy on " + strings.TrimSuffix(host, ".local")
	}

	txt := []string{AppTag, "path=/"}
	if version != "" {
		txt = append(txt, "version="+version)
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Announcing board on the local network",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Announcement{server: server}, nil
}

// Shutdown withdraws the announcement
func (a *Announcement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Info("mDNS announcement withdrawn")
}

// Scanner handles mDNS board discovery
type Scanner struct {
	// Timeout is the maximum time to wait for boards to answer
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every board that answers within the timeout
func (s *Scanner) Scan(ctx context.Context) ([]*Board, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	boards := make([]*Board, 0)
	seen := make(map[string]bool)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// the resolver closes entries once ctx is done
	go func() {
		defer close(done)
		for entry := range entries {
			board := s.parseServiceEntry(entry)
			if board == nil || seen[board.Instance] {
				continue
			}
			seen[board.Instance] = true
			logging.Debug("Board discovered", zap.String("board", board.String()))
			boards = append(boards, board)
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	return boards, nil
}

// parseServiceEntry converts a zeroconf service entry to a Board.
// Returns nil if the entry is not one of ours or has no address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Board {
	if entry == nil {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	if metadata["app"] != "jeopardy" {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	return &Board{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Scan is a convenience function to scan with a custom timeout
func Scan(ctx context.Context, timeout time.Duration) ([]*Board, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan(ctx)
}
