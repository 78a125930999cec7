package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// CallerHeader carries the name of the service that made the request.
// The gateway clients of both services set it on every call.
const CallerHeader = "X-Caller-Service"

// Key identifies one bucket: a client address, the calling service and a route.
// The order service placing deliveries and a browser polling the same endpoint
// from one NAT address never share a bucket.
type Key struct {
	Client string
	Caller string // empty for end users
	Route  string // "POST /api/deliveries"
}

// Peer reports whether the request came from a known peer service.
func (k Key) Peer() bool { return k.Caller != "" }

func (k Key) String() string {
	caller := k.Caller
	if caller == "" {
		caller = "-"
	}
	return k.Client + "|" + caller + "|" + k.Route
}

// keyer builds keys. Only callers from the peer list get their own bucket, any other
// header value is ignored so that it cannot be used to mint fresh buckets.
type keyer struct {
	peers map[string]struct{}
}

func newKeyer(peers []string) keyer {
	k := keyer{peers: make(map[string]struct{}, len(peers))}
	for _, p := range peers {
		if p = strings.TrimSpace(p); p != "" {
			k.peers[p] = struct{}{}
		}
	}
	return k
}

func (k keyer) keyFor(r *http.Request) Key {
	key := Key{Client: clientIP(r), Route: r.Method + " " + resource(r.URL.Path)}
	if caller := r.Header.Get(CallerHeader); caller != "" {
		if _, ok := k.peers[caller]; ok {
			key.Caller = caller
		}
	}
	return key
}

// resource cuts a path down to its collection: /api/deliveries/7/status -> /api/deliveries.
func resource(path string) string {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return "/" + strings.Join(parts, "/")
}

func clientIP(r *http.Request) string {
	// RemoteAddr уже переписан chi RealIP
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
