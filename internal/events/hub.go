// Package events broadcasts lost item lifecycle changes to connected
// websocket clients, typically staff dashboards.
package events

import (
	"log"
	"sync"
	"time"

	"github.com/campusops/lostfound/internal/types"
)

type EventType string

const (
	EventItemReported  EventType = "item_reported"
	EventItemClaimed   EventType = "item_claimed"
	EventItemCollected EventType = "item_collected"
)

type Event struct {
	Type      EventType      `json:"type"`
	Item      types.LostItem `json:"item"`
	Timestamp time.Time      `json:"timestamp"`
}

type Hub struct {
	log            *log.Logger
	clients        map[*Client]struct{}
	clientsLock    sync.Mutex
	registerChan   chan *Client
	deRegisterChan chan *Client
	broadcastChan  chan *Event
	stop           chan struct{}
	done           chan struct{}
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		log:            logger,
		clients:        make(map[*Client]struct{}),
		registerChan:   make(chan *Client),
		deRegisterChan: make(chan *Client),
		broadcastChan:  make(chan *Event, 256),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.registerChan:
			h.log.Printf("adding event feed connection for %q", client.user.Id)
			h.addClient(client)
		case client := <-h.deRegisterChan:
			h.log.Printf("removing event feed connection for %q", client.user.Id)
			h.removeClient(client)
		case evt := <-h.broadcastChan:
			h.clientsLock.Lock()
			for client := range h.clients {
				if !client.queueEvent(evt) {
					h.log.Printf("dropping event for slow client %q", client.user.Id)
				}
			}
			h.clientsLock.Unlock()
		case <-h.stop:
			h.clientsLock.Lock()
			for client := range h.clients {
				close(client.stop)
			}
			h.clientsLock.Unlock()

			close(h.done)
			return
		}
	}
}

func (h *Hub) RegisterClient(c *Client) {
	h.registerChan <- c
}

// Publish queues an event for all connected clients. Never blocks the
// caller; when the hub is saturated the event is dropped with a warning.
func (h *Hub) Publish(eventType EventType, item types.LostItem) {
	evt := &Event{
		Type:      eventType,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}

	select {
	case h.broadcastChan <- evt:
	default:
		h.log.Printf("event channel full, dropping %s for item %q", eventType, item.ReferenceId)
	}
}

func (h *Hub) Shutdown() {
	close(h.stop)
	<-h.done
}

func (h *Hub) addClient(c *Client) {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) removeClient(c *Client) {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()
	delete(h.clients, c)
}
