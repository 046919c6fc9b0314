package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "belum_dibayar"
	PaymentStatusPending PaymentStatus = "menunggu_validasi"
	PaymentStatusPaid    PaymentStatus = "sudah_dibayar"
)

// Fine is the monetary charge attached to a loan at return validation.
// Amounts are whole rupiah. Total always equals LateFee + DamageFee + LossFee;
// a zero Total is a valid "no fine" record.
type Fine struct {
	ID            int32         `json:"id"`
	LoanID        int32         `json:"peminjaman_id"`
	BorrowerID    int32         `json:"user_id"`
	DaysLate      int32         `json:"jumlah_hari_telat"`
	LateFee       int64         `json:"denda_keterlambatan"`
	DamageFee     int64         `json:"denda_kerusakan"`
	LossFee       int64         `json:"denda_hilang"`
	Total         int64         `json:"total_denda"`
	PaymentStatus PaymentStatus `json:"status_pembayaran"`
	PaymentDate   *string       `json:"tanggal_pembayaran,omitempty"`
	ValidatedBy   *int32        `json:"validated_by,omitempty"`
	// Populated by list queries for display.
	BorrowerName string    `json:"user_nama,omitempty"`
	ItemName     string    `json:"komoditas_nama,omitempty"`
	CreatedOn    time.Time `json:"created_at"`
}

// FineSummary backs the per-borrower denda summary endpoint.
type FineSummary struct {
	TotalRecords     int32 `json:"total_denda_records"`
	TotalOutstanding int64 `json:"total_denda_outstanding"`
	UnpaidCount      int32 `json:"belum_dibayar"`
	PaidCount        int32 `json:"sudah_dibayar"`
	PendingCount     int32 `json:"menunggu_validasi"`
}
