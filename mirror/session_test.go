package mirror

import (
	"context"
	"encoding/json"
	"testing"

	"eltablero/models"
)

type sentEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func openSession(t *testing.T, res *fakeReservations, slots *fakeSlots, cfg *fakeConfig) (*Session, *[]sentEvent) {
	t.Helper()
	sent := &[]sentEvent{}
	send := func(data []byte) {
		var ev sentEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		*sent = append(*sent, ev)
	}

	s, err := NewSession(context.Background(), Sources{Reservations: res, TimeSlots: slots, Config: cfg}, send)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, sent
}

func lastOfType(sent []sentEvent, typ string) (json.RawMessage, bool) {
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].Type == typ {
			return sent[i].Data, true
		}
	}
	return nil, false
}

func TestSessionInitialPaint(t *testing.T) {
	res := &fakeReservations{}
	slots := &fakeSlots{snapshot: []models.TimeSlot{{Label: "17:00-19:00", Active: true, Order: 1}}}
	cfg := &fakeConfig{price: 5000}

	s, sent := openSession(t, res, slots, cfg)
	defer s.Close()

	for _, typ := range []string{"slots", "calendar", "summary"} {
		if _, ok := lastOfType(*sent, typ); !ok {
			t.Errorf("no initial %s event", typ)
		}
	}
}

func TestSessionCommandsDriveView(t *testing.T) {
	res := &fakeReservations{snapshot: []models.Reservation{
		{Date: "2024-06-01", Time: "17:00-19:00", Status: models.StatusConfirmed},
	}}
	slots := &fakeSlots{snapshot: []models.TimeSlot{{Label: "17:00-19:00", Active: true, Order: 1}}}
	cfg := &fakeConfig{price: 5000}

	s, sent := openSession(t, res, slots, cfg)
	defer s.Close()

	s.HandleMessage([]byte(`{"action":"selectDate","date":"2024-06-01"}`))
	s.HandleMessage([]byte(`{"action":"selectSlot","slot":"17:00-19:00"}`))
	s.HandleMessage([]byte(`{"action":"setPeople","people":4}`))

	data, ok := lastOfType(*sent, "slots")
	if !ok {
		t.Fatal("no slots event after selectDate")
	}
	var views []SlotView
	if err := json.Unmarshal(data, &views); err != nil {
		t.Fatalf("slots payload: %v", err)
	}
	if len(views) != 1 || !views[0].Checked || views[0].SpotsLeft != 3 {
		t.Fatalf("unexpected slot views: %+v", views)
	}

	data, ok = lastOfType(*sent, "summary")
	if !ok {
		t.Fatal("no summary event after commands")
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("summary payload: %v", err)
	}
	if summary.Time != "17:00-19:00" || summary.People != 4 || summary.Total != 20000 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSessionPushesStoreChanges(t *testing.T) {
	res := &fakeReservations{}
	slots := &fakeSlots{snapshot: []models.TimeSlot{{Label: "17:00-19:00", Active: true, Order: 1}}}
	cfg := &fakeConfig{price: 5000}

	s, sent := openSession(t, res, slots, cfg)
	defer s.Close()

	before := len(*sent)
	cfg.deliverPrice(7000)

	data, ok := lastOfType((*sent)[before:], "summary")
	if !ok {
		t.Fatal("price change did not push a summary event")
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("summary payload: %v", err)
	}
	if summary.Price != 7000 {
		t.Fatalf("summary price = %d, want 7000", summary.Price)
	}
}

func TestSessionCloseSilencesEvents(t *testing.T) {
	res := &fakeReservations{}
	slots := &fakeSlots{snapshot: []models.TimeSlot{{Label: "17:00-19:00", Active: true, Order: 1}}}
	cfg := &fakeConfig{price: 5000}

	s, sent := openSession(t, res, slots, cfg)
	s.Close()

	if res.cancels != 1 || slots.cancels != 1 || cfg.cancels != 3 {
		t.Fatalf("subscriptions not cancelled: res=%d slots=%d cfg=%d",
			res.cancels, slots.cancels, cfg.cancels)
	}

	before := len(*sent)
	s.HandleMessage([]byte(`{"action":"selectDate","date":"2024-06-01"}`))
	if len(*sent) != before {
		t.Fatal("closed session still emitted events")
	}
}

func TestSessionIgnoresMalformedCommands(t *testing.T) {
	res := &fakeReservations{}
	slots := &fakeSlots{snapshot: []models.TimeSlot{{Label: "17:00-19:00", Active: true, Order: 1}}}
	cfg := &fakeConfig{price: 5000}

	s, sent := openSession(t, res, slots, cfg)
	defer s.Close()

	before := len(*sent)
	s.HandleMessage([]byte(`not json`))
	s.HandleMessage([]byte(`{"action":"explode"}`))
	if len(*sent) != before {
		t.Fatal("malformed commands must be dropped without events")
	}
}
