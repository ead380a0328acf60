package middleware

import (
	"net/http"

	"github.com/kevin930119/CSPQWServer/pkg/ctxutil"
)

// WxIdentity extracts the caller identity injected by the WeChat cloud
// gateway. The gateway strips these headers from client traffic and sets
// them itself, so their presence is trusted. Requests without the headers
// pass through anonymously; handlers decide whether identity is required.
func WxIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-wx-source") != "" {
			if openID := r.Header.Get("x-wx-openid"); openID != "" {
				r = r.WithContext(ctxutil.WithOpenID(r.Context(), openID))
			}
		}
		next.ServeHTTP(w, r)
	})
}
