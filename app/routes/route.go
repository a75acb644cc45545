package routes

import (
	"net/http"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
	"github.com/Rakhulsr/clothing-catalog-admin/app/handlers/admin"
	"github.com/Rakhulsr/clothing-catalog-admin/app/middlewares"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	Render       *render.Render
	Catalog      services.CatalogServiceImpl
	Products     services.ProductServiceImpl
	Sessions     sessions.SessionStore
	AdminKeyHash string
	// RouteCache is optional; nil disables response caching.
	RouteCache *cache.RouteCache
	// CSRFKey enables CSRF protection when set.
	CSRFKey []byte
	Secure  bool
}

type kindRoutes interface {
	ListItems(http.ResponseWriter, *http.Request)
	GetItem(http.ResponseWriter, *http.Request)
	CreateItem(http.ResponseWriter, *http.Request)
	UpdateItem(http.ResponseWriter, *http.Request)
	DeleteItem(http.ResponseWriter, *http.Request)
	DeleteItems(http.ResponseWriter, *http.Request)
}

func mountKind(r *mux.Router, path string, e kindRoutes) {
	r.HandleFunc(path, e.ListItems).Methods("GET")
	r.HandleFunc(path, e.CreateItem).Methods("POST")
	r.HandleFunc(path, e.DeleteItems).Methods("DELETE")
	r.HandleFunc(path+"/{id}", e.GetItem).Methods("GET")
	r.HandleFunc(path+"/{id}", e.UpdateItem).Methods("PUT", "PATCH")
	r.HandleFunc(path+"/{id}", e.DeleteItem).Methods("DELETE")
}

func NewRouter(deps Deps) http.Handler {
	h := admin.NewAdminHandler(deps.Render, deps.Catalog, deps.Products, deps.Sessions, deps.AdminKeyHash)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", admin.HealthHandler(deps.DB, deps.Render)).Methods("GET")

	router.HandleFunc("/api/admin/session", h.GetSession).Methods("GET")
	router.HandleFunc("/api/admin/session", h.OpenSession).Methods("POST")
	router.HandleFunc("/api/admin/session", h.CloseSession).Methods("DELETE")

	catalog := router.PathPrefix(services.CatalogPath).Subrouter()
	catalog.Use(middlewares.AdminAuthMiddleware(deps.Sessions, deps.Render))
	catalog.Use(middlewares.CacheMiddleware(deps.RouteCache))

	mountKind(catalog, "/genders", h.Genders())
	mountKind(catalog, "/categories", h.Categories())
	mountKind(catalog, "/detail-categories", h.DetailCategories())
	mountKind(catalog, "/promotions", h.Promotions())
	mountKind(catalog, "/trademarks", h.Trademarks())

	catalog.HandleFunc("/products", h.GetProducts).Methods("GET")
	catalog.HandleFunc("/products", h.CreateProduct).Methods("POST")
	catalog.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	catalog.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
	catalog.HandleFunc("/product-form", h.ProductFormData).Methods("GET")

	var handler http.Handler = router
	if len(deps.CSRFKey) > 0 {
		handler = csrf.Protect(deps.CSRFKey,
			csrf.Secure(deps.Secure),
			csrf.Path("/"),
			csrf.RequestHeader("X-CSRF-Token"),
		)(handler)
	}
	return middlewares.MethodOverrideMiddleware(handler)
}
