package availability

import (
	"testing"

	"eltablero/models"
)

func res(date, slot, status string) models.Reservation {
	return models.Reservation{Date: date, Time: slot, Status: status}
}

func TestOccupancyPredicate(t *testing.T) {
	rs := []models.Reservation{
		res("2024-06-01", "17:00-19:00", models.StatusConfirmed),
		res("2024-06-01", "17:00-19:00", models.StatusPendingPayment),
		res("2024-06-01", "17:00-19:00", models.StatusRejected), // excluded
		res("2024-06-01", "19:00-21:00", models.StatusConfirmed), // other slot
		res("2024-06-02", "17:00-19:00", models.StatusConfirmed), // other date
	}

	if got := Occupancy(rs, "2024-06-01", "17:00-19:00"); got != 2 {
		t.Fatalf("Occupancy = %d, want 2", got)
	}
}

func TestPendingPaymentHoldsTable(t *testing.T) {
	rs := []models.Reservation{res("2024-06-01", "17:00-19:00", models.StatusPendingPayment)}
	if got := Occupancy(rs, "2024-06-01", "17:00-19:00"); got != 1 {
		t.Fatalf("pending_payment must count toward occupancy, got %d", got)
	}
}

func TestEmptySlotFullyAvailable(t *testing.T) {
	a := FromCache(nil, "2024-06-01", "17:00-19:00")
	if !a.Available || a.SpotsLeft != 4 || a.Total != 4 {
		t.Fatalf("empty slot: %+v", a)
	}
}

// Scenario from the capacity policy: 3 non-rejected and 1 rejected leave one
// table; the 4th non-rejected booking fills the slot.
func TestThreeBookedOneRejected(t *testing.T) {
	rs := []models.Reservation{
		res("2024-06-01", "17:00-19:00", models.StatusConfirmed),
		res("2024-06-01", "17:00-19:00", models.StatusConfirmed),
		res("2024-06-01", "17:00-19:00", models.StatusPendingPayment),
		res("2024-06-01", "17:00-19:00", models.StatusRejected),
	}

	a := FromCache(rs, "2024-06-01", "17:00-19:00")
	if !a.Available || a.SpotsLeft != 1 {
		t.Fatalf("want available with 1 spot, got %+v", a)
	}

	rs = append(rs, res("2024-06-01", "17:00-19:00", models.StatusPendingPayment))
	a = FromCache(rs, "2024-06-01", "17:00-19:00")
	if a.Available || a.SpotsLeft != 0 {
		t.Fatalf("want full, got %+v", a)
	}
}

func TestSpotsLeftNeverNegative(t *testing.T) {
	var rs []models.Reservation
	for i := 0; i < 6; i++ {
		rs = append(rs, res("2024-06-01", "17:00-19:00", models.StatusConfirmed))
	}
	a := FromCache(rs, "2024-06-01", "17:00-19:00")
	if a.Available || a.SpotsLeft != 0 {
		t.Fatalf("overbooked slot must report 0 spots, got %+v", a)
	}
}

// Rejecting a reservation frees exactly one table; rejecting it again
// changes nothing.
func TestRejectDecrementsOnce(t *testing.T) {
	rs := []models.Reservation{
		res("2024-06-01", "17:00-19:00", models.StatusConfirmed),
		res("2024-06-01", "17:00-19:00", models.StatusConfirmed),
	}
	before := Occupancy(rs, "2024-06-01", "17:00-19:00")

	rs[1].Status = models.StatusRejected
	after := Occupancy(rs, "2024-06-01", "17:00-19:00")
	if after != before-1 {
		t.Fatalf("reject: occupancy %d -> %d, want -1", before, after)
	}

	rs[1].Status = models.StatusRejected
	if again := Occupancy(rs, "2024-06-01", "17:00-19:00"); again != after {
		t.Fatalf("re-reject changed occupancy: %d -> %d", after, again)
	}
}

func TestFailClosedShape(t *testing.T) {
	a := Unavailable()
	if a.Available || a.SpotsLeft != 0 || a.Total != MaxTables {
		t.Fatalf("fail-closed answer wrong: %+v", a)
	}
}

// Dates are matched by exact string equality only; a datetime-suffixed value
// must not match the plain calendar form.
func TestDateComparisonIsStringExact(t *testing.T) {
	rs := []models.Reservation{res("2024-06-01T00:00:00", "17:00-19:00", models.StatusConfirmed)}
	if got := Occupancy(rs, "2024-06-01", "17:00-19:00"); got != 0 {
		t.Fatalf("unnormalized date must not match, got %d", got)
	}
}
