package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// Endpoints serves the JSON routes of one taxonomy kind.
type Endpoints[T any] struct {
	render *render.Render
	List   func(ctx context.Context, query url.Values, include []string) services.Result[[]T]
	Get    func(ctx context.Context, id string, include []string) services.Result[*T]
	Create func(ctx context.Context, input any) services.Result[*T]
	Update func(ctx context.Context, id string, input any) services.Result[*T]
	Delete func(ctx context.Context, ids []string, policy ...services.DeletePolicy) services.Result[[]string]
}

func (e *Endpoints[T]) ListItems(w http.ResponseWriter, r *http.Request) {
	respond(e.render, w, http.StatusOK, e.List(r.Context(), r.URL.Query(), includes(r)))
}

func (e *Endpoints[T]) GetItem(w http.ResponseWriter, r *http.Request) {
	respond(e.render, w, http.StatusOK, e.Get(r.Context(), mux.Vars(r)["id"], includes(r)))
}

func (e *Endpoints[T]) CreateItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respond(e.render, w, http.StatusBadRequest, services.Failure[any](services.ErrorBadRequest, "Malformed JSON body"))
		return
	}
	respond(e.render, w, http.StatusCreated, e.Create(r.Context(), body))
}

func (e *Endpoints[T]) UpdateItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respond(e.render, w, http.StatusBadRequest, services.Failure[any](services.ErrorBadRequest, "Malformed JSON body"))
		return
	}
	respond(e.render, w, http.StatusOK, e.Update(r.Context(), mux.Vars(r)["id"], body))
}

func (e *Endpoints[T]) DeleteItem(w http.ResponseWriter, r *http.Request) {
	respond(e.render, w, http.StatusOK, e.Delete(r.Context(), []string{mux.Vars(r)["id"]}, deletePolicy(r)))
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (e *Endpoints[T]) DeleteItems(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	body, err := readBody(w, r)
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		respond(e.render, w, http.StatusBadRequest, services.Failure[any](services.ErrorBadRequest, "Malformed JSON body"))
		return
	}
	respond(e.render, w, http.StatusOK, e.Delete(r.Context(), req.IDs, deletePolicy(r)))
}

func (h *AdminHandler) Genders() *Endpoints[models.Gender] {
	return &Endpoints[models.Gender]{
		render: h.render,
		List: func(ctx context.Context, _ url.Values, include []string) services.Result[[]models.Gender] {
			return h.catalog.GetAllGenders(ctx, include...)
		},
		Get: func(ctx context.Context, id string, include []string) services.Result[*models.Gender] {
			return h.catalog.GetGenderByID(ctx, id, include...)
		},
		Create: h.catalog.CreateGender,
		Update: h.catalog.UpdateGender,
		Delete: h.catalog.DeleteGender,
	}
}

func (h *AdminHandler) Categories() *Endpoints[models.Category] {
	return &Endpoints[models.Category]{
		render: h.render,
		List: func(ctx context.Context, query url.Values, include []string) services.Result[[]models.Category] {
			if genderID := query.Get("genderId"); genderID != "" {
				return h.catalog.GetCategoriesByGenderID(ctx, genderID)
			}
			return h.catalog.GetAllCategories(ctx, include...)
		},
		Get: func(ctx context.Context, id string, include []string) services.Result[*models.Category] {
			return h.catalog.GetCategoryByID(ctx, id, include...)
		},
		Create: h.catalog.CreateCategory,
		Update: h.catalog.UpdateCategory,
		Delete: h.catalog.DeleteCategory,
	}
}

func (h *AdminHandler) DetailCategories() *Endpoints[models.DetailCategory] {
	return &Endpoints[models.DetailCategory]{
		render: h.render,
		List: func(ctx context.Context, query url.Values, include []string) services.Result[[]models.DetailCategory] {
			if categoryID := query.Get("categoryId"); categoryID != "" {
				return h.catalog.GetDetailCategoriesByCategoryID(ctx, categoryID)
			}
			return h.catalog.GetAllDetailCategories(ctx, include...)
		},
		Get: func(ctx context.Context, id string, include []string) services.Result[*models.DetailCategory] {
			return h.catalog.GetDetailCategoryByID(ctx, id, include...)
		},
		Create: h.catalog.CreateDetailCategory,
		Update: h.catalog.UpdateDetailCategory,
		Delete: h.catalog.DeleteDetailCategory,
	}
}

func (h *AdminHandler) Promotions() *Endpoints[models.Promotion] {
	return &Endpoints[models.Promotion]{
		render: h.render,
		List: func(ctx context.Context, _ url.Values, _ []string) services.Result[[]models.Promotion] {
			return h.catalog.GetAllPromotions(ctx)
		},
		Get: func(ctx context.Context, id string, _ []string) services.Result[*models.Promotion] {
			return h.catalog.GetPromotionByID(ctx, id)
		},
		Create: h.catalog.CreatePromotion,
		Update: h.catalog.UpdatePromotion,
		Delete: h.catalog.DeletePromotion,
	}
}

func (h *AdminHandler) Trademarks() *Endpoints[models.Trademark] {
	return &Endpoints[models.Trademark]{
		render: h.render,
		List: func(ctx context.Context, _ url.Values, _ []string) services.Result[[]models.Trademark] {
			return h.catalog.GetAllTrademarks(ctx)
		},
		Get: func(ctx context.Context, id string, _ []string) services.Result[*models.Trademark] {
			return h.catalog.GetTrademarkByID(ctx, id)
		},
		Create: h.catalog.CreateTrademark,
		Update: h.catalog.UpdateTrademark,
		Delete: h.catalog.DeleteTrademark,
	}
}

func (h *AdminHandler) ProductFormData(w http.ResponseWriter, r *http.Request) {
	respond(h.render, w, http.StatusOK, h.catalog.FetchProductFormData(r.Context()))
}
