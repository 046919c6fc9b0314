package http

import (
	"net/http"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
)

type DepartmentHandler struct {
	departmentService service.DepartmentService
}

func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

type departmentPayload struct {
	Name        string  `json:"nama"`
	Description *string `json:"deskripsi"`
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	depts, err := h.departmentService.ListDepartments(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, depts)
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())

	var req departmentPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	dept := &domain.Department{Name: req.Name, Description: req.Description}
	if err := h.departmentService.CreateDepartment(r.Context(), actorID, dept); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, dept)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req departmentPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	dept := &domain.Department{ID: id, Name: req.Name, Description: req.Description}
	if err := h.departmentService.UpdateDepartment(r.Context(), actorID, dept); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dept)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.departmentService.DeleteDepartment(r.Context(), actorID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "jurusan deleted"})
}
