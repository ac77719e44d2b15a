package httpx

import (
	"net"
	"net/http"
	"time"
)

// The only outbound traffic is webhook delivery to a single configured
// endpoint, so the pool stays small.
var defaultClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }
