// Package discovery announces browser boards on the local network and finds
// them again, using multicast DNS.
//
// A board started with `jeopardy serve --announce` registers a
// "_jeopardy._tcp" service carrying the TXT record "app=jeopardy".
// `jeopardy scan` browses for that service type and lists what answers.
//
// # Usage Example
//
//	// Advertise a board listening on port 8080
//	ann, err := discovery.Announce("", 8080, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer ann.Shutdown()
//
//	// Elsewhere on the network
//	boards, err := discovery.Scan(ctx, 5*time.Second)
//	for _, b := range boards {
//	    fmt.Println(b.Instance, b.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Players must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
