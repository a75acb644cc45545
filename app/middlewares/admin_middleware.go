package middlewares

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/sessions"
	"github.com/unrolled/render"
)

// AdminAuthMiddleware rejects requests without an admin session.
func AdminAuthMiddleware(store sessions.SessionStore, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.IsAdmin(r) {
				log.Printf("AdminAuthMiddleware: %s %s without admin session", r.Method, r.URL.Path)
				rnd.JSON(w, http.StatusUnauthorized, services.Failure[any](services.ErrorUnauthorized, "Admin session required."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
