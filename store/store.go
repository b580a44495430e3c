// Package store is the thin service wrapper over the document database.
// Every collection exposes read, write, delete and change-subscription
// operations; subscriptions deliver the collection's full current snapshot
// on every change, never an incremental diff.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"eltablero/mq"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("document not found")

// Collection wraps one Mongo collection. The configured filter and sort
// define the snapshot every subscriber receives.
type Collection[T any] struct {
	name      string
	col       *mongo.Collection
	filter    bson.M
	sort      bson.D
	transform func(T) T

	mu   sync.Mutex
	subs map[int]func([]T)
	next int
}

func NewCollection[T any](name string, col *mongo.Collection, filter bson.M, sort bson.D, transform func(T) T) *Collection[T] {
	c := &Collection[T]{
		name:      name,
		col:       col,
		filter:    filter,
		sort:      sort,
		transform: transform,
		subs:      make(map[int]func([]T)),
	}
	register(name, c.notify)
	return c
}

// ReadAll returns documents matching filter (nil means the collection's
// default filter), in the collection's configured order.
func (c *Collection[T]) ReadAll(ctx context.Context, filter bson.M) ([]T, error) {
	if filter == nil {
		filter = c.filter
	}
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find()
	if c.sort != nil {
		opts.SetSort(c.sort)
	}

	cur, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if c.transform != nil {
		for i := range docs {
			docs[i] = c.transform(docs[i])
		}
	}
	return docs, nil
}

// Snapshot is the full current state as delivered to subscribers.
func (c *Collection[T]) Snapshot(ctx context.Context) ([]T, error) {
	return c.ReadAll(ctx, c.filter)
}

func (c *Collection[T]) ReadOne(ctx context.Context, id string) (T, bool, error) {
	var doc T
	err := c.col.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, err
	}
	if c.transform != nil {
		doc = c.transform(doc)
	}
	return doc, true, nil
}

func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	c.changed(ctx)
	return nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, set bson.M) error {
	res, err := c.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	c.changed(ctx)
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.col.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return err
	}
	c.changed(ctx)
	return nil
}

func (c *Collection[T]) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := c.col.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}}); err != nil {
		return err
	}
	c.changed(ctx)
	return nil
}

// Subscribe registers a snapshot callback and returns its disposer. After
// the disposer runs the callback is never invoked again.
func (c *Collection[T]) Subscribe(cb func([]T)) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = cb
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// notify fetches the current snapshot and delivers it to every subscriber.
// A failed read is logged and skipped; subscribers keep their last state.
func (c *Collection[T]) notify(ctx context.Context) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		log.Printf("store: snapshot of %s failed: %v", c.name, err)
		return
	}
	c.publish(snap)
}

func (c *Collection[T]) publish(snap []T) {
	c.mu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	for _, id := range ids {
		c.mu.Lock()
		cb, ok := c.subs[id]
		c.mu.Unlock()
		if ok {
			cb(snap)
		}
	}
}

func (c *Collection[T]) changed(ctx context.Context) {
	c.notify(ctx)
	mq.Emit(ctx, c.name)
}

// --- change registry ---

var (
	regMu    sync.Mutex
	registry = map[string][]func(context.Context){}
)

func register(name string, notify func(context.Context)) {
	regMu.Lock()
	registry[name] = append(registry[name], notify)
	regMu.Unlock()
}

// Poke re-delivers the named collection's snapshot to local subscribers.
// The mq change worker calls this when another process mutates the store.
func Poke(name string) {
	regMu.Lock()
	notifiers := registry[name]
	regMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, n := range notifiers {
		n(ctx)
	}
}
