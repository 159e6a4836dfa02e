package routes

import (
	"encoding/json"

	"autoparts/app/models"
	"autoparts/pkg/event"
	"autoparts/pkg/ws"
)

// OrderFeed streams order lifecycle events to connected admin dashboards.
var OrderFeed = ws.NewHub()

func init() {
	go OrderFeed.Run()
}

// wireOrderFeed forwards order events onto the WebSocket hub.
func wireOrderFeed() {
	forward := func(name string) event.Handler {
		return func(payload interface{}) {
			order, ok := payload.(models.Order)
			if !ok {
				return
			}
			msg, err := json.Marshal(map[string]interface{}{
				"event": name,
				"order": order,
			})
			if err != nil {
				return
			}
			OrderFeed.Broadcast <- msg
		}
	}

	event.Listen(event.OrderCreated, forward(event.OrderCreated))
	event.Listen(event.OrderStatusChanged, forward(event.OrderStatusChanged))
}
