package slots

import (
	"testing"

	"eltablero/models"
)

func TestNextRank(t *testing.T) {
	if got := nextRank(nil); got != 1 {
		t.Fatalf("empty catalog: got %d, want 1", got)
	}

	existing := []models.TimeSlot{
		{Label: "17:00 - 19:00", Order: 1},
		{Label: "21:00 - 23:00", Order: 5}, // ranks may be sparse after deletes
		{Label: "19:00 - 21:00", Order: 2},
	}
	if got := nextRank(existing); got != 6 {
		t.Fatalf("got %d, want max+1 = 6", got)
	}
}
