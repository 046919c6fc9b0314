package http

import (
	"net/http"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type itemPayload struct {
	Name        string `json:"nama"`
	Description string `json:"deskripsi"`
	TotalUnits  int32  `json:"jumlah_total"`
	CategoryID  *int32 `json:"kategori_id"`
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListItems(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())

	var req itemPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	item := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		TotalUnits:  req.TotalUnits,
		CategoryID:  req.CategoryID,
	}
	if err := h.itemService.CreateItem(r.Context(), actorID, item); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req itemPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	item := &domain.Item{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		TotalUnits:  req.TotalUnits,
		CategoryID:  req.CategoryID,
	}
	if err := h.itemService.UpdateItem(r.Context(), actorID, item); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.itemService.DeleteItem(r.Context(), actorID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "komoditas deleted"})
}
