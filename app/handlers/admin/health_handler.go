package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// HealthHandler pings the database behind db.
func HealthHandler(db *gorm.DB, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			log.Printf("HealthHandler: database ping failed: %v", err)
			rnd.JSON(w, http.StatusServiceUnavailable, services.Failure[any](services.ErrorInternal, "Database unavailable"))
			return
		}
		respond(rnd, w, http.StatusOK, services.Result[any]{Success: true, Message: "ok"})
	}
}
