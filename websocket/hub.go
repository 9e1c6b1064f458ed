package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// ScheduleEvent is pushed to every connected staff client whenever the
// class schedule or a booking changes.
type ScheduleEvent struct {
	Type      string    `json:"type"`
	ClassID   string    `json:"class_id,omitempty"`
	BookingID string    `json:"booking_id,omitempty"`
	MemberID  string    `json:"member_id,omitempty"`
	At        time.Time `json:"at"`
}

const (
	EventClassCreated     = "class.created"
	EventClassUpdated     = "class.updated"
	EventClassCancelled   = "class.cancelled"
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingPromoted  = "booking.promoted"
	EventCheckIn          = "booking.checked_in"
	EventNoShow           = "booking.no_show"
)

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan ScheduleEvent, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Schedule feed client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Schedule feed client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var dead []uuid.UUID
			for userID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error pushing schedule event to client %s: %v", userID, err)
					conn.Close()
					dead = append(dead, userID)
				}
			}
			clientsMu.RUnlock()
			if len(dead) > 0 {
				clientsMu.Lock()
				for _, userID := range dead {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish queues an event without blocking the caller; if the hub is
// backlogged the event is dropped, the feed is best effort.
func Publish(event ScheduleEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	select {
	case Broadcast <- event:
	default:
		log.Println("⚠️ Schedule feed backlogged, dropping event")
	}
}
