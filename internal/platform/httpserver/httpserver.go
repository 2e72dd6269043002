package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. MRZ
// requests are tiny, so read and write deadlines stay short.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
