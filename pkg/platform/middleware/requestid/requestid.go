// Package requestid assigns every request an ID for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"mrzgate/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxLen bounds a caller-supplied request ID.
const maxLen = 64

// Middleware reuses a well-formed X-Request-ID from the caller or generates
// a new one, stores it in the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxLen {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
