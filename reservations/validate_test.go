package reservations

import "testing"

func TestValidateBooking(t *testing.T) {
	good := bookingInput{Date: "2025-07-10", Time: "19:00 - 21:00", People: 4, Phone: "+54 11 5555-0001"}
	if err := validateBooking(good); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*bookingInput)
		want error
	}{
		{"timestamp date", func(b *bookingInput) { b.Date = "1720569600000" }, ErrBadDate},
		{"empty time", func(b *bookingInput) { b.Time = "  " }, ErrBadTime},
		{"zero people", func(b *bookingInput) { b.People = 0 }, ErrBadPeople},
		{"seven people", func(b *bookingInput) { b.People = 7 }, ErrBadPeople},
		{"letters in phone", func(b *bookingInput) { b.Phone = "call me" }, ErrBadPhone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := good
			tc.mut(&in)
			if err := validateBooking(in); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGameOrDefault(t *testing.T) {
	if got := gameOrDefault("  "); got != GameTBD {
		t.Fatalf("blank game = %q, want sentinel", got)
	}
	if got := gameOrDefault("Catan"); got != "Catan" {
		t.Fatalf("got %q", got)
	}
}

func TestEditSetNeverTouchesPrice(t *testing.T) {
	in := bookingInput{
		Date: "2025-07-10", Time: "19:00 - 21:00", People: 2,
		Phone: "555-0001", Status: "confirmed",
	}
	set, err := editSet(in)
	if err != nil {
		t.Fatalf("editSet: %v", err)
	}
	if _, ok := set["pricePerPerson"]; ok {
		t.Fatal("edit must not rewrite the snapshotted price")
	}
	if _, ok := set["total"]; ok {
		t.Fatal("total is derived by the handler from the stored snapshot")
	}
	if set["game"] != GameTBD {
		t.Fatalf("blank game should default, got %v", set["game"])
	}
}

func TestEditSetRejectsUnknownStatus(t *testing.T) {
	in := bookingInput{
		Date: "2025-07-10", Time: "19:00 - 21:00", People: 2,
		Phone: "555-0001", Status: "paid",
	}
	if _, err := editSet(in); err != ErrBadStatus {
		t.Fatalf("got %v, want ErrBadStatus", err)
	}
}
