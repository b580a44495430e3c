package mirror

import (
	"context"
	"encoding/json"
	"log"
)

// command is what the booking page sends over its websocket.
type command struct {
	Action string `json:"action"` // selectDate | selectSlot | setPeople
	Date   string `json:"date,omitempty"`
	Slot   string `json:"slot,omitempty"`
	People int    `json:"people,omitempty"`
}

// event is what the session pushes back: a render trigger with its payload.
type event struct {
	Type string      `json:"type"` // slots | calendar | summary
	Data interface{} `json:"data"`
}

// Session drives one booking page over a websocket connection. It owns a
// View whose render hooks marshal into events on the client's send queue;
// Close tears the View's subscriptions down when the page disconnects.
type Session struct {
	view *View
}

func NewSession(ctx context.Context, src Sources, send func([]byte)) (*Session, error) {
	push := func(typ string, data interface{}) {
		payload, err := json.Marshal(event{Type: typ, Data: data})
		if err != nil {
			log.Printf("mirror: marshal %s event failed: %v", typ, err)
			return
		}
		send(payload)
	}

	view, err := Open(ctx, src, Hooks{
		RenderSlots: func(views []SlotView) { push("slots", views) },
		RenderCalendar: func(blocked []string, special map[string]string) {
			push("calendar", map[string]interface{}{"blocked": blocked, "special": special})
		},
		RenderSummary: func(s Summary) { push("summary", s) },
	})
	if err != nil {
		return nil, err
	}

	s := &Session{view: view}

	// Initial paint so the page renders without waiting for a change.
	push("slots", view.SlotViews())
	blocked, special := view.Calendar()
	push("calendar", map[string]interface{}{"blocked": blocked, "special": special})
	push("summary", view.Summary())

	return s, nil
}

// HandleMessage applies one client command. Unknown actions and malformed
// payloads are dropped; the client re-renders from the next event.
func (s *Session) HandleMessage(data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return
	}
	switch cmd.Action {
	case "selectDate":
		s.view.SelectDate(cmd.Date)
	case "selectSlot":
		s.view.SelectSlot(cmd.Slot)
	case "setPeople":
		s.view.SetPeople(cmd.People)
	}
}

func (s *Session) Close() {
	s.view.Close()
}
