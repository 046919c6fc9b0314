package domain

type LoanStatus string

const (
	LoanStatusRequested LoanStatus = "menunggu"
	LoanStatusBorrowed  LoanStatus = "dipinjam"
	LoanStatusReturned  LoanStatus = "dikembalikan"
)

type ReturnStatus string

const (
	ReturnStatusNone      ReturnStatus = ""
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusValidated ReturnStatus = "validated"
)

type ItemCondition string

const (
	ItemConditionGood    ItemCondition = "baik"
	ItemConditionDamaged ItemCondition = "rusak"
	ItemConditionLost    ItemCondition = "hilang"
)

// Loan is one borrow transaction for a single item by a single borrower.
// Dates are yyyy-mm-dd strings, times hh:mm:ss, matching the wire contract.
type Loan struct {
	ID         int32      `json:"id"`
	ItemID     int32      `json:"komoditas_id"`
	BorrowerID int32      `json:"user_id"`
	Quantity   int32      `json:"jumlah_pinjam"`
	LoanDate   string     `json:"tanggal_pinjam"`
	Status     LoanStatus `json:"status"`
	// Deadline is set only when a petugas approves the loan.
	Deadline    *string `json:"deadline,omitempty"`
	ValidatedBy *int32  `json:"validated_by,omitempty"`
	// Return fields. ReturnDate/Condition are final only once
	// ReturnStatus is validated.
	ReturnStatus      ReturnStatus  `json:"return_status,omitempty"`
	ReturnDate        *string       `json:"tanggal_kembali,omitempty"`
	ReturnTime        *string       `json:"jam_kembali,omitempty"`
	ReturnNote        string        `json:"catatan_kembali,omitempty"`
	Condition         ItemCondition `json:"kondisi_barang,omitempty"`
	ReturnValidatedBy *int32        `json:"return_validated_by,omitempty"`
	// Populated by list queries for display.
	ItemName     string `json:"komoditas_nama,omitempty"`
	BorrowerName string `json:"user_nama,omitempty"`
	CreatedOn    string `json:"created_at"`
	UpdatedOn    string `json:"updated_at"`
}
