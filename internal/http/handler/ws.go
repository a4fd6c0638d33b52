package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"wklejka/internal/bus"
)

// UpgradeGate rejects plain HTTP requests to the websocket endpoint before
// the upgrade handler runs.
func UpgradeGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Events upgrades the connection and streams bus events to the viewer as JSON
// envelopes until the client disconnects. No client-to-server messages are
// part of the protocol; inbound frames are read only to detect the close.
func Events(events *bus.Broadcaster) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, _ := events.Subscribe(ctx)

		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteJSON(evt); err != nil {
					return
				}
			}
		}
	})
}
