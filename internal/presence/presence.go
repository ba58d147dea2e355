// Package presence publishes connect/disconnect events over Redis
// pub/sub so external dashboards can watch who is online. It is
// optional: without REDIS_ADDR the server runs with no publisher.
package presence

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const channel = "holdem:presence"

type event struct {
	Kind      string `json:"kind"` // online / offline
	AccountID uint64 `json:"accountId"`
	Username  string `json:"username,omitempty"`
	TsMs      int64  `json:"tsMs"`
}

type Publisher struct {
	rdb *redis.Client
}

// FromEnv returns a publisher when REDIS_ADDR is set and reachable,
// nil otherwise. A nil *Publisher is safe to call.
func FromEnv() *Publisher {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[Presence] Redis at %s unreachable, presence disabled: %v", addr, err)
		rdb.Close()
		return nil
	}
	log.Printf("[Presence] Publishing to Redis at %s channel %s", addr, channel)
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Connected(accountID uint64, username string) {
	p.publish(event{Kind: "online", AccountID: accountID, Username: username, TsMs: time.Now().UnixMilli()})
}

func (p *Publisher) Disconnected(accountID uint64) {
	p.publish(event{Kind: "offline", AccountID: accountID, TsMs: time.Now().UnixMilli()})
}

func (p *Publisher) publish(evt event) {
	if p == nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.rdb.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Presence] publish failed: %v", err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.rdb.Close()
}
