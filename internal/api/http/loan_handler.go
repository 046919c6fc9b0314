package http

import (
	"net/http"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
)

type LoanHandler struct {
	loanService service.LoanService
	fineService service.FineService
}

func NewLoanHandler(loanService service.LoanService, fineService service.FineService) *LoanHandler {
	return &LoanHandler{loanService: loanService, fineService: fineService}
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	borrowerID, _ := UserIDFromContext(r.Context())

	var req struct {
		ItemID   int32  `json:"komoditas_id"`
		Quantity int32  `json:"jumlah_pinjam"`
		LoanDate string `json:"tanggal_pinjam"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	loan, err := h.loanService.RequestLoan(r.Context(), borrowerID, req.ItemID, req.Quantity, req.LoanDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

// List is role-scoped: students only see their own loans.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	role, _ := RoleFromContext(r.Context())

	var (
		loans []domain.Loan
		err   error
	)
	if role == domain.UserRoleStudent {
		loans, err = h.loanService.ListByBorrower(r.Context(), userID)
	} else {
		loans, err = h.loanService.ListAll(r.Context())
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	loan, err := h.loanService.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	role, _ := RoleFromContext(r.Context())
	if role == domain.UserRoleStudent && loan.BorrowerID != userID {
		respondError(w, r, domain.ErrForbidden)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.ListActive(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.ListHistory(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) Report(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	loans, err := h.loanService.Report(r.Context(), from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	staffID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Deadline string `json:"deadline"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	loan, err := h.loanService.ApproveLoan(r.Context(), staffID, id, req.Deadline)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	borrowerID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		ReturnDate string `json:"tanggal_kembali"`
		ReturnTime string `json:"jam_kembali"`
		Note       string `json:"catatan"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	loan, err := h.loanService.RequestReturn(r.Context(), borrowerID, id, req.ReturnDate, req.ReturnTime, req.Note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

type validateReturnResponse struct {
	Loan *domain.Loan `json:"peminjaman"`
	Fine *domain.Fine `json:"denda"`
}

func (h *LoanHandler) ValidateReturn(w http.ResponseWriter, r *http.Request) {
	staffID, _ := UserIDFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		ReturnDate string               `json:"tanggal_kembali"`
		ReturnTime string               `json:"jam_kembali"`
		Condition  domain.ItemCondition `json:"kondisi_barang"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	loan, fine, err := h.loanService.ValidateReturn(r.Context(), staffID, id, req.ReturnDate, req.ReturnTime, req.Condition)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, validateReturnResponse{Loan: loan, Fine: fine})
}

func (h *LoanHandler) ApplyOverdueFines(w http.ResponseWriter, r *http.Request) {
	applied, err := h.fineService.ApplyOverdueFines(r.Context(), time.Now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"applied": applied})
}
