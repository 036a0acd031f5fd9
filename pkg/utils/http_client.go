package utils

import (
	"net/http"
	"time"
)

// newBackendHTTPClient bounds only the wait for response headers. Bodies,
// including long streamed ones, run on the caller's context.
func newBackendHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if timeout > 0 {
		transport.ResponseHeaderTimeout = timeout
	}
	return &http.Client{Transport: transport}
}
