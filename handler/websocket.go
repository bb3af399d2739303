package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"festival_manager/config"
	"festival_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const gateChannel = "gate:redemptions"

// gatePusher is what the fan-out needs from a connected dashboard.
type gatePusher interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

var (
	gateRedisOnce sync.Once
	gateRedis     *redis.Client

	gateSubOnce sync.Once

	gateClients = make(map[gatePusher]bool)
	gateMu      sync.Mutex
)

func gateRedisClient() *redis.Client {
	gateRedisOnce.Do(func() {
		gateRedis = redis.NewClient(&redis.Options{
			Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
		})
	})
	return gateRedis
}

// startGateSubscriber runs the single process-wide pubsub loop. One
// subscription feeds every connected client, so each redemption reaches each
// dashboard exactly once no matter how many gates are online.
func startGateSubscriber() {
	gateSubOnce.Do(func() {
		go func() {
			pubsub := gateRedisClient().Subscribe(context.Background(), gateChannel)
			defer pubsub.Close()

			for msg := range pubsub.Channel() {
				fanOutGateEvent([]byte(msg.Payload))
			}
		}()
	})
}

func fanOutGateEvent(payload []byte) {
	gateMu.Lock()
	defer gateMu.Unlock()
	for conn := range gateClients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(gateClients, conn)
		}
	}
}

// GateFeed streams redemption events to staff dashboards so every gate sees
// scans from every other gate live.
func GateFeed(c *websocket.Conn) {
	gateMu.Lock()
	gateClients[c] = true
	gateMu.Unlock()

	startGateSubscriber()

	defer func() {
		gateMu.Lock()
		delete(gateClients, c)
		gateMu.Unlock()
		c.Close()
	}()

	// Hold the connection open; the read loop only serves to notice the
	// client going away.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastRedemption publishes a scan to the gate feed. Best-effort.
func BroadcastRedemption(ticket model.Ticket, staff string) {
	event := map[string]interface{}{
		"qrCode":     ticket.QrCode,
		"ticketType": ticket.TicketType,
		"redeemedBy": staff,
		"usedAt":     time.Now().Format(time.RFC3339),
	}
	if ticket.Festival != nil {
		event["festival"] = ticket.Festival.Name
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode gate event for %s: %v", ticket.QrCode, err)
		return
	}
	if err := gateRedisClient().Publish(context.Background(), gateChannel, payload).Err(); err != nil {
		log.Printf("Failed to publish gate event for %s: %v", ticket.QrCode, err)
	}
}
