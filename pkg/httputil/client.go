// Package httputil provides the shared HTTP plumbing for the decoy
// gateway's outbound calls: verdict providers, the memory service,
// embedding backends and the completion callback all ride on one pooled
// transport.
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize is the default cap when buffering response bodies.
// External services are untrusted; an oversized body must not take the
// gateway down.
const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// One transport for every outbound call so TCP connections get reused
// across turns.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// TimeoutTier buckets outbound calls by how long they may reasonably
// take.
type TimeoutTier int

const (
	// TierFast for health probes (5s).
	TierFast TimeoutTier = iota
	// TierMedium for memory-service and callback calls (30s).
	TierMedium
	// TierSlow for verdict-model calls (60s).
	TierSlow
)

var (
	clientFast   *http.Client
	clientMedium *http.Client
	clientSlow   *http.Client
	clientOnce   sync.Once
)

func initClients() {
	clientFast = &http.Client{Timeout: 5 * time.Second, Transport: sharedTransport}
	clientMedium = &http.Client{Timeout: 30 * time.Second, Transport: sharedTransport}
	clientSlow = &http.Client{Timeout: 60 * time.Second, Transport: sharedTransport}
}

// Client returns the shared HTTP client for a timeout tier. Use these
// instead of constructing http.Client per call site; they share the
// connection pool.
func Client(tier TimeoutTier) *http.Client {
	clientOnce.Do(initClients)
	switch tier {
	case TierFast:
		return clientFast
	case TierSlow:
		return clientSlow
	default:
		return clientMedium
	}
}

// FastClient returns the 5s-timeout client.
func FastClient() *http.Client {
	return Client(TierFast)
}

// MediumClient returns the 30s-timeout client.
func MediumClient() *http.Client {
	return Client(TierMedium)
}

// SlowClient returns the 60s-timeout client for verdict-model calls.
func SlowClient() *http.Client {
	return Client(TierSlow)
}

// ReadResponseBody reads an HTTP response body with a size cap.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// ReadErrorBody reads a response body for error reporting. Error
// messages never need more than 1MB.
func ReadErrorBody(r io.Reader) ([]byte, error) {
	const maxErrorSize = 1 * 1024 * 1024
	return io.ReadAll(io.LimitReader(r, maxErrorSize))
}

// DrainAndClose drains and closes a response body so the connection
// returns to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
