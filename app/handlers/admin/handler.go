package admin

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/Rakhulsr/clothing-catalog-admin/app/utils/sessions"
	"github.com/unrolled/render"
)

const maxBodyBytes = 1 << 20

type AdminHandler struct {
	render       *render.Render
	catalog      services.CatalogServiceImpl
	products     services.ProductServiceImpl
	sessions     sessions.SessionStore
	adminKeyHash string
}

func NewAdminHandler(
	render *render.Render,
	catalog services.CatalogServiceImpl,
	products services.ProductServiceImpl,
	sessions sessions.SessionStore,
	adminKeyHash string,
) *AdminHandler {
	return &AdminHandler{
		render:       render,
		catalog:      catalog,
		products:     products,
		sessions:     sessions,
		adminKeyHash: adminKeyHash,
	}
}

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.ErrorValidation:
		return http.StatusUnprocessableEntity
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorDuplicate, services.ErrorConflict:
		return http.StatusConflict
	case services.ErrorBadRequest:
		return http.StatusBadRequest
	case services.ErrorUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respond renders res with okStatus on success and the mapped error status otherwise.
func respond[D any](rnd *render.Render, w http.ResponseWriter, okStatus int, res services.Result[D]) {
	status := okStatus
	if !res.Success {
		status = statusFor(res.ErrorKind)
	}
	rnd.JSON(w, status, res)
}

func (h *AdminHandler) badRequest(w http.ResponseWriter, message string) {
	respond(h.render, w, http.StatusBadRequest, services.Failure[any](services.ErrorBadRequest, message))
}

// readBody returns the raw JSON body. An empty body is reported as an empty object.
func readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(body) {
		return nil, errors.New("malformed JSON body")
	}
	return json.RawMessage(body), nil
}

// includes turns "?include=categories,detailCategories" into relation names.
func includes(r *http.Request) []string {
	raw := r.URL.Query().Get("include")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := relationName(strings.TrimSpace(part)); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func relationName(path string) string {
	segments := strings.Split(path, ".")
	for i, s := range segments {
		if s == "" {
			return ""
		}
		runes := []rune(s)
		runes[0] = unicode.ToUpper(runes[0])
		segments[i] = string(runes)
	}
	return strings.Join(segments, ".")
}

func deletePolicy(r *http.Request) services.DeletePolicy {
	return services.DeletePolicy(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("onDelete"))))
}
