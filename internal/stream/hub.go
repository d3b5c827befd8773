// Package stream serves scene editing over websockets. Each scene gets a
// room whose goroutine owns the scene's engine.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/storiny/web-sub003/internal/engine"
	"github.com/storiny/web-sub003/internal/typeid"
)

// PlaygroundSceneID names the shared scene preloaded with sample content.
const PlaygroundSceneID = "playground"

// Loader builds the engine for a scene the first time a room opens it.
type Loader func(sceneID string) (*engine.Engine, error)

// NewLoader returns a Loader that opens the playground with the sample
// scene and any other valid scene id empty.
func NewLoader(opts engine.Options) Loader {
	return func(sceneID string) (*engine.Engine, error) {
		eng := engine.NewEngine(opts)
		if sceneID == PlaygroundSceneID {
			eng.LoadSampleScene()
			return eng, nil
		}
		if err := typeid.Validate(sceneID, typeid.PrefixScene); err != nil {
			return nil, err
		}
		return eng, nil
	}
}

// Hub tracks the open rooms. A room lives while websocket clients or
// in-flight queries hold it.
type Hub struct {
	mu         sync.Mutex
	rooms      map[string]*Room // sceneID -> room
	load       Loader
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub that opens scenes with load.
func NewHub(load Loader) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		load:       load,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes joins and leaves until ctx is done, then stops every room.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.stopAll()
			return
		}
	}
}

// Register queues a websocket client to join the room of its scene.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister queues a client to leave its room.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// CreateScene allocates a fresh scene id. The scene is checked to open and
// is kept only while a client or query holds it.
func (h *Hub) CreateScene() (string, error) {
	id := typeid.NewSceneID()
	room, err := h.acquire(id)
	if err != nil {
		return "", err
	}
	h.release(room)
	return id, nil
}

// Query runs a message against a scene outside any websocket connection
// and returns the replies. The room is held for the duration of the call.
func (h *Hub) Query(ctx context.Context, sceneID string, msg *Message) ([]*Message, error) {
	room, err := h.acquire(sceneID)
	if err != nil {
		return nil, err
	}
	defer h.release(room)
	return room.submit(ctx, nil, msg, true)
}

// acquire returns the room for sceneID, loading the scene if needed, and
// takes a reference on it.
func (h *Hub) acquire(sceneID string) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[sceneID]; ok {
		room.refs++
		return room, nil
	}
	eng, err := h.load(sceneID)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", sceneID, err)
	}
	room := NewRoom(sceneID, eng)
	room.start()
	room.refs = 1
	h.rooms[sceneID] = room
	return room, nil
}

// release drops a reference taken by acquire and stops the room when none
// remain.
func (h *Hub) release(room *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room.refs--
	if room.refs > 0 {
		return
	}
	if h.rooms[room.sceneID] == room {
		delete(h.rooms, room.sceneID)
	}
	room.stop()
}

func (h *Hub) addClient(client *Client) {
	room, err := h.acquire(client.SceneID)
	if err != nil {
		slog.Warn("client rejected", "client", client.ClientID, "error", err)
		client.Send(errorMessage("join", err))
		client.Close()
		return
	}
	select {
	case room.join <- client:
		client.room = room
	case <-room.done:
		h.release(room)
		client.Close()
	}
}

func (h *Hub) removeClient(client *Client) {
	room := client.room
	if room == nil {
		return
	}
	client.room = nil

	room.remove(client)
	// The room closes the client when it handles the leave; this covers a
	// room that had already stopped.
	client.Close()
	h.release(room)
	slog.Info("client left", "client", client.ClientID, "scene", client.SceneID)
}

// handleMessage forwards a client message to the room of its scene.
func (h *Hub) handleMessage(ctx context.Context, sender *Client, msg *Message) {
	h.mu.Lock()
	room, ok := h.rooms[sender.SceneID]
	h.mu.Unlock()
	if !ok {
		slog.Warn("message for closed scene", "client", sender.ClientID, "scene", sender.SceneID, "type", msg.Type)
		return
	}
	if _, err := room.submit(ctx, sender, msg, false); err != nil {
		slog.Debug("message dropped", "client", sender.ClientID, "error", err)
	}
}

func (h *Hub) stopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		room.stop()
		delete(h.rooms, id)
	}
}
