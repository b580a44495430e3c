// Package mirror keeps a per-view local copy of reservations, the time-slot
// catalog, calendar overrides and the current price, refreshed through store
// subscriptions, and drives re-rendering of the dependent view. A View is
// created when its page opens and closed when the page goes away; it is
// never a process-wide singleton.
package mirror

import (
	"context"
	"sort"
	"sync"

	"eltablero/availability"
	"eltablero/models"
)

// ReservationSource and SlotSource are satisfied by store.Collection.
type ReservationSource interface {
	Snapshot(context.Context) ([]models.Reservation, error)
	Subscribe(func([]models.Reservation)) func()
}

type SlotSource interface {
	Snapshot(context.Context) ([]models.TimeSlot, error)
	Subscribe(func([]models.TimeSlot)) func()
}

// ConfigSource is satisfied by store.Settings.
type ConfigSource interface {
	Price(context.Context) (int, error)
	BlockedDates(context.Context) ([]string, error)
	SpecialDates(context.Context) (map[string]string, error)
	SubscribePrice(func(int)) func()
	SubscribeBlockedDates(func([]string)) func()
	SubscribeSpecialDates(func(map[string]string)) func()
}

type Sources struct {
	Reservations ReservationSource
	TimeSlots    SlotSource
	Config       ConfigSource
}

// SlotView is one rendered time slot. Availability is only computed once the
// user has selected a date.
type SlotView struct {
	Label     string `json:"label"`
	Checked   bool   `json:"checked"`
	Available bool   `json:"available"`
	SpotsLeft int    `json:"spotsLeft"`
}

// Summary mirrors the booking-confirmation box: the live total follows the
// current price until the reservation is persisted.
type Summary struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	People int    `json:"people"`
	Price  int    `json:"pricePerPerson"`
	Total  int    `json:"total"`
}

// Hooks receive render triggers. Nil hooks are skipped.
type Hooks struct {
	RenderSlots    func([]SlotView)
	RenderCalendar func(blocked []string, special map[string]string)
	RenderSummary  func(Summary)
}

type View struct {
	mu    sync.Mutex
	hooks Hooks

	reservations []models.Reservation
	slots        []models.TimeSlot
	blocked      []string
	special      map[string]string
	price        int

	selectedDate string
	selectedTime string
	people       int

	cancels []func()
	closed  bool
}

// Open eagerly loads the caches, then attaches the change subscriptions.
// The reservation cache is populated before any availability computation
// can run; a failed initial read aborts the view.
func Open(ctx context.Context, src Sources, hooks Hooks) (*View, error) {
	v := &View{
		hooks:   hooks,
		special: map[string]string{},
		people:  1,
	}

	reservations, err := src.Reservations.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	v.reservations = reservations

	if slots, err := src.TimeSlots.Snapshot(ctx); err == nil {
		v.slots = sortedByRank(slots)
	}
	if blocked, err := src.Config.BlockedDates(ctx); err == nil {
		v.blocked = blocked
	}
	if special, err := src.Config.SpecialDates(ctx); err == nil {
		v.special = special
	}
	if price, err := src.Config.Price(ctx); err == nil {
		v.price = price
	}

	v.cancels = append(v.cancels,
		src.Reservations.Subscribe(v.onReservations),
		src.TimeSlots.Subscribe(v.onTimeSlots),
		src.Config.SubscribePrice(v.onPrice),
		src.Config.SubscribeBlockedDates(v.onBlockedDates),
		src.Config.SubscribeSpecialDates(v.onSpecialDates),
	)

	return v, nil
}

// Close cancels every subscription. No render hook fires afterwards.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	cancels := v.cancels
	v.cancels = nil
	v.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// --- subscription deliveries ---

func (v *View) onReservations(snapshot []models.Reservation) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.reservations = snapshot
	// Recomputing slot availability is meaningless without a selected date.
	render := v.selectedDate != ""
	var views []SlotView
	if render {
		views = v.slotViewsLocked()
	}
	v.mu.Unlock()

	if render && v.hooks.RenderSlots != nil {
		v.hooks.RenderSlots(views)
	}
}

func (v *View) onTimeSlots(snapshot []models.TimeSlot) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.slots = sortedByRank(snapshot)
	views := v.slotViewsLocked()
	v.mu.Unlock()

	if v.hooks.RenderSlots != nil {
		v.hooks.RenderSlots(views)
	}
}

func (v *View) onPrice(price int) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.price = price
	summary := v.summaryLocked()
	v.mu.Unlock()

	if v.hooks.RenderSummary != nil {
		v.hooks.RenderSummary(summary)
	}
}

func (v *View) onBlockedDates(dates []string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.blocked = dates
	blocked, special := v.calendarLocked()
	v.mu.Unlock()

	if v.hooks.RenderCalendar != nil {
		v.hooks.RenderCalendar(blocked, special)
	}
}

func (v *View) onSpecialDates(dates map[string]string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.special = dates
	blocked, special := v.calendarLocked()
	v.mu.Unlock()

	if v.hooks.RenderCalendar != nil {
		v.hooks.RenderCalendar(blocked, special)
	}
}

// --- user interaction ---

// SelectDate sets the active calendar date and clears the slot selection.
func (v *View) SelectDate(date string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.selectedDate = date
	v.selectedTime = ""
	views := v.slotViewsLocked()
	summary := v.summaryLocked()
	v.mu.Unlock()

	if v.hooks.RenderSlots != nil {
		v.hooks.RenderSlots(views)
	}
	if v.hooks.RenderSummary != nil {
		v.hooks.RenderSummary(summary)
	}
}

func (v *View) SelectSlot(label string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.selectedTime = label
	summary := v.summaryLocked()
	v.mu.Unlock()

	if v.hooks.RenderSummary != nil {
		v.hooks.RenderSummary(summary)
	}
}

// SetPeople clamps the party size to 1..6.
func (v *View) SetPeople(n int) {
	if n < 1 {
		n = 1
	}
	if n > 6 {
		n = 6
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.people = n
	summary := v.summaryLocked()
	v.mu.Unlock()

	if v.hooks.RenderSummary != nil {
		v.hooks.RenderSummary(summary)
	}
}

// --- reads ---

func (v *View) SlotViews() []SlotView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slotViewsLocked()
}

func (v *View) Summary() Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.summaryLocked()
}

// Calendar returns copies of the blocked set and the special-date map.
func (v *View) Calendar() ([]string, map[string]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calendarLocked()
}

func (v *View) Blocked(date string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, d := range v.blocked {
		if d == date {
			return true
		}
	}
	return false
}

func (v *View) SpecialLabel(date string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.special[date]
}

// --- internals, v.mu held ---

func (v *View) slotViewsLocked() []SlotView {
	views := []SlotView{}
	for _, slot := range v.slots {
		if !slot.Active {
			continue
		}
		sv := SlotView{Label: slot.Label}
		if v.selectedDate != "" {
			a := availability.FromCache(v.reservations, v.selectedDate, slot.Label)
			sv.Checked = true
			sv.Available = a.Available
			sv.SpotsLeft = a.SpotsLeft
		}
		views = append(views, sv)
	}
	return views
}

func (v *View) summaryLocked() Summary {
	return Summary{
		Date:   v.selectedDate,
		Time:   v.selectedTime,
		People: v.people,
		Price:  v.price,
		Total:  v.price * v.people,
	}
}

func (v *View) calendarLocked() ([]string, map[string]string) {
	blocked := append([]string{}, v.blocked...)
	special := make(map[string]string, len(v.special))
	for k, val := range v.special {
		special[k] = val
	}
	return blocked, special
}

func sortedByRank(slots []models.TimeSlot) []models.TimeSlot {
	sorted := append([]models.TimeSlot{}, slots...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}
