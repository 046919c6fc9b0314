package utils

import (
	"fmt"
	"time"

	"school-lending-backend/internal/domain"
)

// FineSchedule carries the configured rates, in whole rupiah.
type FineSchedule struct {
	PerDayRupiah     int64
	FlatDamageRupiah int64
	FlatLossRupiah   int64
}

// FineBreakdown is the result of a fine computation. Total always equals
// LateFee + DamageFee + LossFee; a zero Total means no fine is owed.
type FineBreakdown struct {
	DaysLate  int32 `json:"jumlah_hari_telat"`
	LateFee   int64 `json:"denda_keterlambatan"`
	DamageFee int64 `json:"denda_kerusakan"`
	LossFee   int64 `json:"denda_hilang"`
	Total     int64 `json:"totalFine"`
}

// ParseDate parses a yyyy-mm-dd formatted date string.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return t, nil
}

// DaysLate counts whole days between the deadline and the actual return date,
// never negative. Returning on or before the deadline is zero days late.
func DaysLate(deadline, actualReturn time.Time) int32 {
	d := actualReturn.Sub(deadline).Hours() / 24
	if d <= 0 {
		return 0
	}
	return int32(d)
}

// ComputeFine derives the fine breakdown for a validated return. It is pure:
// the same deadline, return date and condition always produce the same result.
func ComputeFine(deadline, actualReturn time.Time, condition domain.ItemCondition, schedule FineSchedule) FineBreakdown {
	b := FineBreakdown{
		DaysLate: DaysLate(deadline, actualReturn),
	}
	b.LateFee = int64(b.DaysLate) * schedule.PerDayRupiah

	switch condition {
	case domain.ItemConditionDamaged:
		b.DamageFee = schedule.FlatDamageRupiah
	case domain.ItemConditionLost:
		b.LossFee = schedule.FlatLossRupiah
	}

	b.Total = b.LateFee + b.DamageFee + b.LossFee
	return b
}
