package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
)

type FineHandler struct {
	fineService service.FineService
}

func NewFineHandler(fineService service.FineService) *FineHandler {
	return &FineHandler{fineService: fineService}
}

// pending feeds the staff validation queue (payments submitted by borrowers,
// menunggu_validasi). approved is the history list of payments staff already
// accepted; paid is an alias for it. unpaid lists outstanding fines.
var fineStatusSlugs = map[string]domain.PaymentStatus{
	"pending":  domain.PaymentStatusPending,
	"approved": domain.PaymentStatusPaid,
	"paid":     domain.PaymentStatusPaid,
	"unpaid":   domain.PaymentStatusUnpaid,
}

func (h *FineHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["status"]
	status, ok := fineStatusSlugs[slug]
	if !ok {
		respondError(w, r, domain.ErrValidation)
		return
	}

	fines, err := h.fineService.ListByPaymentStatus(r.Context(), status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fines)
}

func (h *FineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	fine, err := h.fineService.GetFine(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	role, _ := RoleFromContext(r.Context())
	if role == domain.UserRoleStudent && fine.BorrowerID != userID {
		respondError(w, r, domain.ErrForbidden)
		return
	}
	respondJSON(w, http.StatusOK, fine)
}

func (h *FineHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	borrowerID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	fine, err := h.fineService.SubmitPayment(r.Context(), borrowerID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fine)
}

func (h *FineHandler) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	staffID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	fine, err := h.fineService.ValidatePayment(r.Context(), staffID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fine)
}
