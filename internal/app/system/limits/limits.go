// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize caps every JSON request body. The largest
	// legitimate payloads are issue descriptions and comments, which
	// stay well under this.
	MaxJSONBodySize = 1 << 20 // 1 MB
)

// MaxBody wraps each request body with a hard size cap; reads past the
// cap fail and the JSON decoder surfaces the error.
func MaxBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)
		}
		next.ServeHTTP(w, r)
	})
}
