package handler

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/funfair-pos/api/internal/domain"
	"github.com/funfair-pos/api/internal/service"
	"github.com/funfair-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
)

// MenuServicer defines the service methods needed by menu handlers.
// Satisfied by *service.MenuService; narrow interface for testability.
type MenuServicer interface {
	Create(ctx context.Context, req service.CreateMenuItemRequest) (*domain.MenuItem, error)
	Update(ctx context.Context, id int64, req service.UpdateMenuItemRequest) (*domain.MenuItem, error)
	List(ctx context.Context, active *bool) ([]domain.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

// MenuHandler handles menu catalog endpoints.
type MenuHandler struct {
	svc            MenuServicer
	mediaURLPrefix string
	maxUploadBytes int64
}

// NewMenuHandler creates a new MenuHandler. Photo URLs are built by joining
// mediaURLPrefix with the stored photo reference.
func NewMenuHandler(svc MenuServicer, mediaURLPrefix string, maxUploadBytes int64) *MenuHandler {
	if !strings.HasSuffix(mediaURLPrefix, "/") {
		mediaURLPrefix += "/"
	}
	return &MenuHandler{svc: svc, mediaURLPrefix: mediaURLPrefix, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
// Expected to be mounted at /menu.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Response types ---

type menuItemResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	IsActive  bool      `json:"is_active"`
	PhotoURL  *string   `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Handlers ---

// Create handles POST /menu (multipart: name, unit_price, optional photo).
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	photo, closePhoto, err := formPhoto(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid photo upload"})
		return
	}
	defer closePhoto()

	name, ok := formValue(r, "name")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	price, ok := formValue(r, "unit_price")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit_price is required"})
		return
	}

	item, err := h.svc.Create(r.Context(), service.CreateMenuItemRequest{
		Name:      name,
		UnitPrice: price,
		Photo:     photo,
	})
	if err != nil {
		writeServiceError(w, "create menu item", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toMenuItemResponse(*item))
}

// List handles GET /menu?active=.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	active, err := parseOptionalBool(r.URL.Query().Get("active"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "active must be a boolean"})
		return
	}

	items, err := h.svc.List(r.Context(), active)
	if err != nil {
		writeServiceError(w, "list menu items", err)
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, item := range items {
		resp[i] = h.toMenuItemResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /menu/{id}. Only the fields present in the form change.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	if !h.parseForm(w, r) {
		return
	}

	photo, closePhoto, err := formPhoto(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid photo upload"})
		return
	}
	defer closePhoto()

	req := service.UpdateMenuItemRequest{Photo: photo}
	if v, ok := formValue(r, "name"); ok {
		req.Name = &v
	}
	if v, ok := formValue(r, "unit_price"); ok {
		req.UnitPrice = &v
	}
	if v, ok := formValue(r, "is_active"); ok {
		active, err := parseOptionalBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "is_active must be a boolean"})
			return
		}
		req.IsActive = active
	}

	item, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, "update menu item", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toMenuItemResponse(*item))
}

// Delete handles DELETE /menu/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "delete menu item", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted"})
}

// --- Helpers ---

// parseForm accepts multipart and urlencoded bodies up to maxUploadBytes.
// It writes the error response itself and reports whether to continue.
func (h *MenuHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	err := r.ParseMultipartForm(h.maxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
	return false
}

// formValue reports whether key was sent at all, so an explicitly empty
// value can still be validated.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm != nil {
		if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	if vs, ok := r.PostForm[key]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}

// formPhoto returns the optional "photo" file part. The returned close func
// is always safe to call.
func formPhoto(r *http.Request) (*storage.Upload, func(), error) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop, nil
	}

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	closeFile := func() {
		if err := file.Close(); err != nil {
			log.Printf("WARN: close uploaded photo: %v", err)
		}
	}
	return &storage.Upload{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Body:        file,
	}, closeFile, nil
}

func partContentType(header *multipart.FileHeader) string {
	return strings.TrimSpace(strings.SplitN(header.Header.Get("Content-Type"), ";", 2)[0])
}

func (h *MenuHandler) toMenuItemResponse(item domain.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice.StringFixed(2),
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.PhotoPath != nil && *item.PhotoPath != "" {
		url := h.mediaURLPrefix + strings.TrimPrefix(*item.PhotoPath, "/")
		resp.PhotoURL = &url
	}
	return resp
}
