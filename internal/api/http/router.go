package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/security"
	"school-lending-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth       service.AuthService
	User       service.UserService
	Item       service.ItemService
	Category   service.CategoryService
	Department service.DepartmentService
	Loan       service.LoanService
	Fine       service.FineService
	Activity   service.ActivityService
}

// NewRouter wires all endpoints. Everything under /api except /api/login and
// /health requires a valid bearer token; writes are further gated by role.
func NewRouter(svcs Services, tm security.TokenManager) *mux.Router {
	auth := NewAuthHandler(svcs.Auth)
	users := NewUserHandler(svcs.User, svcs.Fine)
	items := NewItemHandler(svcs.Item)
	categories := NewCategoryHandler(svcs.Category)
	departments := NewDepartmentHandler(svcs.Department)
	loans := NewLoanHandler(svcs.Loan, svcs.Fine)
	fines := NewFineHandler(svcs.Fine)
	activities := NewActivityHandler(svcs.Activity)

	staffOnly := RequireRole(domain.UserRoleStaff)
	adminOnly := RequireRole(domain.UserRoleAdmin)
	studentOnly := RequireRole(domain.UserRoleStudent)

	r := mux.NewRouter()
	r.Use(RequestID)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", auth.Login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(tm))

	// Profile (any role).
	authed.HandleFunc("/profile", users.Profile).Methods(http.MethodGet)
	authed.HandleFunc("/users/profile/update-nama", users.UpdateName).Methods(http.MethodPut)
	authed.HandleFunc("/users/profile/update-password", users.UpdatePassword).Methods(http.MethodPut)

	// Per-user fines; students are limited to their own inside the handler.
	authed.HandleFunc("/users/{id:[0-9]+}/denda", users.ListFines).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id:[0-9]+}/denda/summary", users.FineSummary).Methods(http.MethodGet)

	// Account administration.
	admin := authed.NewRoute().Subrouter()
	admin.Use(adminOnly)
	admin.HandleFunc("/users", users.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}", users.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}", users.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id:[0-9]+}", users.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/jurusan", departments.Create).Methods(http.MethodPost)
	admin.HandleFunc("/jurusan/{id:[0-9]+}", departments.Update).Methods(http.MethodPut)
	admin.HandleFunc("/jurusan/{id:[0-9]+}", departments.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/log-aktivitas", activities.List).Methods(http.MethodGet)
	admin.HandleFunc("/log-aktivitas/petugas", activities.PurgeStaff).Methods(http.MethodDelete)

	// Catalog reads are open to any authenticated role.
	authed.HandleFunc("/komoditas", items.List).Methods(http.MethodGet)
	authed.HandleFunc("/komoditas/{id:[0-9]+}", items.Get).Methods(http.MethodGet)
	authed.HandleFunc("/kategori", categories.List).Methods(http.MethodGet)
	authed.HandleFunc("/jurusan", departments.List).Methods(http.MethodGet)

	// Catalog writes are staff work.
	staff := authed.NewRoute().Subrouter()
	staff.Use(staffOnly)
	staff.HandleFunc("/komoditas", items.Create).Methods(http.MethodPost)
	staff.HandleFunc("/komoditas/{id:[0-9]+}", items.Update).Methods(http.MethodPut)
	staff.HandleFunc("/komoditas/{id:[0-9]+}", items.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/kategori", categories.Create).Methods(http.MethodPost)
	staff.HandleFunc("/kategori/{id:[0-9]+}", categories.Update).Methods(http.MethodPut)
	staff.HandleFunc("/kategori/{id:[0-9]+}", categories.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/log-aktivitas/petugas", activities.ListStaff).Methods(http.MethodGet)

	// Loan lifecycle.
	authed.HandleFunc("/peminjaman", loans.List).Methods(http.MethodGet)
	authed.HandleFunc("/peminjaman/hari-ini", loans.ListToday).Methods(http.MethodGet)

	student := authed.NewRoute().Subrouter()
	student.Use(studentOnly)
	student.HandleFunc("/peminjaman", loans.Create).Methods(http.MethodPost)
	student.HandleFunc("/peminjaman/{id:[0-9]+}/request-return", loans.RequestReturn).Methods(http.MethodPost, http.MethodPut)
	student.HandleFunc("/denda/{id:[0-9]+}/bayar", fines.SubmitPayment).Methods(http.MethodPost)

	staff.HandleFunc("/peminjaman/riwayat", loans.ListHistory).Methods(http.MethodGet)
	staff.HandleFunc("/peminjaman/laporan", loans.Report).Methods(http.MethodGet)
	staff.HandleFunc("/peminjaman/apply-overdue-fines", loans.ApplyOverdueFines).Methods(http.MethodPost)
	staff.HandleFunc("/peminjaman/{id:[0-9]+}/validate", loans.Approve).Methods(http.MethodPost)
	staff.HandleFunc("/peminjaman/{id:[0-9]+}/validate-return", loans.ValidateReturn).Methods(http.MethodPut)
	staff.HandleFunc("/denda/{status:pending|approved|paid|unpaid}", fines.ListByStatus).Methods(http.MethodGet)
	staff.HandleFunc("/denda/{id:[0-9]+}/validate-payment", fines.ValidatePayment).Methods(http.MethodPatch)
	staff.HandleFunc("/denda/{id:[0-9]+}/validasi", fines.ValidatePayment).Methods(http.MethodPost)

	authed.HandleFunc("/peminjaman/{id:[0-9]+}", loans.Get).Methods(http.MethodGet)
	authed.HandleFunc("/denda/{id:[0-9]+}", fines.Get).Methods(http.MethodGet)

	return r
}
