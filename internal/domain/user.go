package domain

type UserRole string

const (
	UserRoleStudent UserRole = "siswa"
	UserRoleStaff   UserRole = "petugas"
	UserRoleAdmin   UserRole = "administrator"
)

type User struct {
	ID           int32    `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"nama"`
	Email        string   `json:"email,omitempty"`
	Role         UserRole `json:"role"`
	DepartmentID *int32   `json:"jurusan_id,omitempty"`
	PasswordHash string   `json:"-"`
	CreatedOn    string   `json:"created_at"`
}
