package mq

import (
	"context"
	"encoding/json"
	"log"

	"eltablero/rdx"
)

const channel = "store-events"

// Change announces that a collection's contents changed. Deliveries carry no
// diff; subscribers re-read the whole snapshot.
type Change struct {
	Collection string `json:"collection"`
}

// Emit publishes a change event to Redis so other processes re-deliver
// snapshots to their own subscribers.
func Emit(ctx context.Context, collection string) {
	if rdx.Conn == nil {
		return
	}

	data, err := json.Marshal(Change{Collection: collection})
	if err != nil {
		log.Printf("[Emit] Failed to marshal change event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish change event for %s: %v", collection, err)
	}
}

// StartChangeWorker listens for change events and invokes onChange with the
// collection name. Runs until the subscription's channel closes.
func StartChangeWorker(onChange func(collection string)) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[ChangeWorker] Listening for store change events...")

	for msg := range ch {
		var event Change
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[ChangeWorker] Failed to parse event: %v", err)
			continue
		}
		onChange(event.Collection)
	}
}
