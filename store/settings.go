package store

import (
	"context"
	"log"
	"sync"
	"time"

	"eltablero/models"
	"eltablero/mq"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Settings holds the singleton configuration documents: current price,
// payment alias, blocked dates and special dates. Each behaves like its own
// tiny collection with get/set/subscribe.
type Settings struct {
	col *mongo.Collection

	price   *singleton[int]
	alias   *singleton[string]
	blocked *singleton[[]string]
	special *singleton[map[string]string]
}

const (
	DefaultPrice = 5000
	DefaultAlias = "ALIAS.DE.EJEMPLO"
)

func NewSettings(col *mongo.Collection) *Settings {
	s := &Settings{col: col}

	s.price = newSingleton("price", func(ctx context.Context) (int, error) {
		var doc models.PriceDoc
		err := col.FindOne(ctx, bson.M{"_id": "price"}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return DefaultPrice, nil
		}
		if err != nil {
			return 0, err
		}
		return doc.Value, nil
	})

	s.alias = newSingleton("paymentAlias", func(ctx context.Context) (string, error) {
		var doc models.AliasDoc
		err := col.FindOne(ctx, bson.M{"_id": "paymentAlias"}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return DefaultAlias, nil
		}
		if err != nil {
			return "", err
		}
		return doc.Value, nil
	})

	s.blocked = newSingleton("blockedDates", func(ctx context.Context) ([]string, error) {
		var doc models.BlockedDatesDoc
		err := col.FindOne(ctx, bson.M{"_id": "blockedDates"}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return []string{}, nil
		}
		if err != nil {
			return nil, err
		}
		if doc.Dates == nil {
			doc.Dates = []string{}
		}
		return doc.Dates, nil
	})

	s.special = newSingleton("specialDates", func(ctx context.Context) (map[string]string, error) {
		var doc models.SpecialDatesDoc
		err := col.FindOne(ctx, bson.M{"_id": "specialDates"}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, err
		}
		if doc.Dates == nil {
			doc.Dates = map[string]string{}
		}
		return doc.Dates, nil
	})

	return s
}

func (s *Settings) upsert(ctx context.Context, id string, doc interface{}) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// --- price ---

func (s *Settings) Price(ctx context.Context) (int, error) { return s.price.get(ctx) }

func (s *Settings) SetPrice(ctx context.Context, value int) error {
	doc := models.PriceDoc{ID: "price", Value: value, UpdatedAt: time.Now().Unix()}
	if err := s.upsert(ctx, "price", doc); err != nil {
		return err
	}
	s.price.changed(ctx)
	return nil
}

func (s *Settings) SubscribePrice(cb func(int)) func() { return s.price.subscribe(cb) }

// --- payment alias ---

func (s *Settings) Alias(ctx context.Context) (string, error) { return s.alias.get(ctx) }

func (s *Settings) SetAlias(ctx context.Context, value string) error {
	doc := models.AliasDoc{ID: "paymentAlias", Value: value, UpdatedAt: time.Now().Unix()}
	if err := s.upsert(ctx, "paymentAlias", doc); err != nil {
		return err
	}
	s.alias.changed(ctx)
	return nil
}

func (s *Settings) SubscribeAlias(cb func(string)) func() { return s.alias.subscribe(cb) }

// --- blocked dates ---

func (s *Settings) BlockedDates(ctx context.Context) ([]string, error) { return s.blocked.get(ctx) }

// ToggleBlockedDate flips a date's membership in the blocked set and returns
// the new set.
func (s *Settings) ToggleBlockedDate(ctx context.Context, date string) ([]string, error) {
	current, err := s.blocked.get(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(current)+1)
	found := false
	for _, d := range current {
		if d == date {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		next = append(next, date)
	}

	doc := models.BlockedDatesDoc{ID: "blockedDates", Dates: next, UpdatedAt: time.Now().Unix()}
	if err := s.upsert(ctx, "blockedDates", doc); err != nil {
		return nil, err
	}
	s.blocked.changed(ctx)
	return next, nil
}

func (s *Settings) SubscribeBlockedDates(cb func([]string)) func() { return s.blocked.subscribe(cb) }

// --- special dates ---

func (s *Settings) SpecialDates(ctx context.Context) (map[string]string, error) {
	return s.special.get(ctx)
}

func (s *Settings) SetSpecialDate(ctx context.Context, date, name string) error {
	current, err := s.special.get(ctx)
	if err != nil {
		return err
	}
	current[date] = name

	doc := models.SpecialDatesDoc{ID: "specialDates", Dates: current, UpdatedAt: time.Now().Unix()}
	if err := s.upsert(ctx, "specialDates", doc); err != nil {
		return err
	}
	s.special.changed(ctx)
	return nil
}

func (s *Settings) DeleteSpecialDate(ctx context.Context, date string) error {
	current, err := s.special.get(ctx)
	if err != nil {
		return err
	}
	delete(current, date)

	doc := models.SpecialDatesDoc{ID: "specialDates", Dates: current, UpdatedAt: time.Now().Unix()}
	if err := s.upsert(ctx, "specialDates", doc); err != nil {
		return err
	}
	s.special.changed(ctx)
	return nil
}

func (s *Settings) SubscribeSpecialDates(cb func(map[string]string)) func() {
	return s.special.subscribe(cb)
}

// --- singleton plumbing ---

type singleton[T any] struct {
	name string
	read func(context.Context) (T, error)

	mu   sync.Mutex
	subs map[int]func(T)
	next int
}

func newSingleton[T any](name string, read func(context.Context) (T, error)) *singleton[T] {
	s := &singleton[T]{name: name, read: read, subs: make(map[int]func(T))}
	register(name, s.notify)
	return s
}

func (s *singleton[T]) get(ctx context.Context) (T, error) { return s.read(ctx) }

func (s *singleton[T]) subscribe(cb func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = cb
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *singleton[T]) notify(ctx context.Context) {
	val, err := s.read(ctx)
	if err != nil {
		log.Printf("store: reading setting %s failed: %v", s.name, err)
		return
	}

	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		cb, ok := s.subs[id]
		s.mu.Unlock()
		if ok {
			cb(val)
		}
	}
}

func (s *singleton[T]) changed(ctx context.Context) {
	s.notify(ctx)
	mq.Emit(ctx, s.name)
}
