package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
)

// MethodOverrideMiddleware lets POST-only clients send PUT or DELETE through
// the X-HTTP-Method-Override header or a _method query parameter.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.Header.Get("X-HTTP-Method-Override")
			if override == "" {
				override = r.URL.Query().Get("_method")
			}
			switch m := strings.ToUpper(override); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (c *captureWriter) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	c.body = append(c.body, b...)
	return c.ResponseWriter.Write(b)
}

// CacheMiddleware serves GET responses from routeCache and stores 200 responses.
// A nil routeCache disables caching.
func CacheMiddleware(routeCache *cache.RouteCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if routeCache == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cache.Key(r.URL.Path, r.URL.RawQuery)
			entry, err := routeCache.Get(r.Context(), key)
			if err != nil {
				log.Printf("CacheMiddleware: read %s: %v", key, err)
			}
			if entry != nil {
				w.Header().Set("Content-Type", entry.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(entry.Status)
				w.Write(entry.Body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			capture := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)
			if capture.status != http.StatusOK {
				return
			}
			err = routeCache.Set(r.Context(), key, cache.Entry{
				Status:      capture.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        capture.body,
			})
			if err != nil {
				log.Printf("CacheMiddleware: store %s: %v", key, err)
			}
		})
	}
}
