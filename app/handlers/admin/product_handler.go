package admin

import (
	"net/http"

	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := services.ProductFilters{
		GenderID:         q.Get("genderId"),
		CategoryID:       q.Get("categoryId"),
		DetailCategoryID: q.Get("detailCategoryId"),
		TrademarkID:      q.Get("trademarkId"),
	}
	respond(h.render, w, http.StatusOK, h.products.GetAllProducts(r.Context(), filters))
}

func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	respond(h.render, w, http.StatusOK, h.products.GetProductByID(r.Context(), mux.Vars(r)["id"]))
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.badRequest(w, "Malformed JSON body")
		return
	}
	respond(h.render, w, http.StatusCreated, h.products.CreateProduct(r.Context(), body))
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	respond(h.render, w, http.StatusOK, h.products.DeleteProduct(r.Context(), []string{mux.Vars(r)["id"]}, deletePolicy(r)))
}
