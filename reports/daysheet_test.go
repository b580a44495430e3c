package reports

import (
	"testing"

	"eltablero/models"
)

func TestDayRevenueSkipsRejected(t *testing.T) {
	list := []models.Reservation{
		{Total: 20000, Status: models.StatusConfirmed},
		{Total: 10000, Status: models.StatusPendingPayment},
		{Total: 30000, Status: models.StatusRejected},
	}
	if got := dayRevenue(list); got != 30000 {
		t.Fatalf("revenue = %d, want 30000", got)
	}
}

func TestBySlotGroupsByLabel(t *testing.T) {
	list := []models.Reservation{
		{ID: "r1", Time: "19:00 - 21:00"},
		{ID: "r2", Time: "21:00 - 23:00"},
		{ID: "r3", Time: "19:00 - 21:00"},
	}
	grouped := bySlot(list)
	if len(grouped["19:00 - 21:00"]) != 2 || len(grouped["21:00 - 23:00"]) != 1 {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
}
