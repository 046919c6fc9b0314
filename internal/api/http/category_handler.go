package http

import (
	"net/http"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryPayload struct {
	Name        string `json:"nama"`
	Description string `json:"deskripsi"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())

	var req categoryPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	cat := &domain.Category{Name: req.Name, Description: req.Description}
	if err := h.categoryService.CreateCategory(r.Context(), actorID, cat); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req categoryPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	cat := &domain.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.categoryService.UpdateCategory(r.Context(), actorID, cat); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.categoryService.DeleteCategory(r.Context(), actorID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "kategori deleted"})
}
