package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/engine"
	"github.com/storiny/web-sub003/internal/linear"
	"github.com/storiny/web-sub003/internal/scene"
	"github.com/storiny/web-sub003/internal/typeid"
)

var errNoSession = errors.New("no active editing session")

// Room owns the engine of one scene. Every message for the scene is
// handled on the room goroutine, so the engine is never shared. Clients in
// a room share its editing session.
type Room struct {
	sceneID string
	engine  *engine.Engine
	clients map[string]*Client // clientID -> client
	seq     int64

	// refs counts holders of the room; guarded by the hub mutex.
	refs int

	// Elements changed while handling the current message, in change order.
	dirty map[string]*scene.Element
	order []string

	join   chan *Client
	leave  chan leaveRequest
	inbox  chan request
	cancel context.CancelFunc
	done   chan struct{}
}

type request struct {
	sender *Client
	msg    *Message
	reply  chan []*Message
}

type leaveRequest struct {
	client *Client
	done   chan struct{}
}

// NewRoom creates a room around eng. The room loop starts with start.
func NewRoom(sceneID string, eng *engine.Engine) *Room {
	r := &Room{
		sceneID: sceneID,
		engine:  eng,
		clients: make(map[string]*Client),
		dirty:   make(map[string]*scene.Element),
		join:    make(chan *Client),
		leave:   make(chan leaveRequest),
		inbox:   make(chan request, 64),
		done:    make(chan struct{}),
	}
	eng.Scene().Subscribe(r.markDirty)
	return r
}

// SceneID returns the id of the scene the room serves.
func (r *Room) SceneID() string { return r.sceneID }

// start runs the room loop until stop is called.
func (r *Room) start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx)
}

func (r *Room) stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Room) run(ctx context.Context) {
	defer close(r.done)
	slog.Debug("room started", "scene", r.sceneID)
	for {
		select {
		case c := <-r.join:
			r.addClient(c)
		case req := <-r.leave:
			delete(r.clients, req.client.ClientID)
			req.client.Close()
			close(req.done)
		case req := <-r.inbox:
			replies := r.handle(req.msg)
			if req.reply != nil {
				req.reply <- replies
			} else if req.sender != nil {
				for _, m := range replies {
					req.sender.Send(m)
				}
			}
			r.flush()
		case <-ctx.Done():
			slog.Debug("room stopped", "scene", r.sceneID)
			return
		}
	}
}

// submit queues a message for the room loop. With wait set it blocks until
// the replies are ready and returns them.
func (r *Room) submit(ctx context.Context, sender *Client, msg *Message, wait bool) ([]*Message, error) {
	req := request{sender: sender, msg: msg}
	if wait {
		req.reply = make(chan []*Message, 1)
	}
	select {
	case r.inbox <- req:
	case <-r.done:
		return nil, fmt.Errorf("room %s closed", r.sceneID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if !wait {
		return nil, nil
	}
	select {
	case replies := <-req.reply:
		return replies, nil
	case <-r.done:
		return nil, fmt.Errorf("room %s closed", r.sceneID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// remove detaches a client and closes it. Replies still queued for the
// client are dropped by Client.Send.
func (r *Room) remove(c *Client) {
	req := leaveRequest{client: c, done: make(chan struct{})}
	select {
	case r.leave <- req:
		<-req.done
	case <-r.done:
	}
}

func (r *Room) addClient(c *Client) {
	r.clients[c.ClientID] = c

	if msg, err := newMessage(TypeWelcome, WelcomePayload{ClientID: c.ClientID, SceneID: r.sceneID}); err == nil {
		c.Send(msg)
	}
	full := SceneSyncPayload{Full: true, Elements: r.engine.Scene().NonDeleted()}
	if msg, err := newMessage(TypeSceneSync, full); err == nil {
		msg.Seq = r.seq
		c.Send(msg)
	}
	if _, ok := r.engine.Session(); ok {
		if msg, err := r.editorState(nil); err == nil {
			c.Send(msg)
		}
	}
	slog.Info("client joined", "client", c.ClientID, "scene", r.sceneID)
}

func (r *Room) markDirty(el *scene.Element) {
	if _, ok := r.dirty[el.ID]; !ok {
		r.order = append(r.order, el.ID)
	}
	r.dirty[el.ID] = el
}

// flush broadcasts the elements changed by the last message to every
// client in the room.
func (r *Room) flush() {
	if len(r.order) == 0 {
		return
	}
	els := make([]*scene.Element, 0, len(r.order))
	for _, id := range r.order {
		els = append(els, r.dirty[id])
	}
	clear(r.dirty)
	r.order = r.order[:0]

	msg, err := newMessage(TypeSceneSync, SceneSyncPayload{Elements: els})
	if err != nil {
		slog.Error("marshal scene sync", "error", err)
		return
	}
	r.seq++
	msg.Seq = r.seq
	msg.SceneID = r.sceneID
	for _, c := range r.clients {
		c.Send(msg)
	}
}

// handle applies one client message to the engine and returns the replies
// for its sender.
func (r *Room) handle(msg *Message) []*Message {
	reply, err := r.apply(msg)
	if err != nil {
		slog.Warn("message rejected", "type", msg.Type, "scene", r.sceneID, "client", msg.ClientID, "error", err)
		return []*Message{errorMessage(msg.Type, err)}
	}
	if reply == nil {
		return nil
	}
	reply.SceneID = r.sceneID
	return []*Message{reply}
}

func (r *Room) apply(msg *Message) (*Message, error) {
	switch msg.Type {
	case TypeEditorEnter:
		var p EditorEnterPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if err := typeid.Validate(p.ElementID, typeid.PrefixElement); err != nil {
			return nil, err
		}
		if _, err := r.engine.Element(p.ElementID); err != nil {
			return nil, err
		}
		if _, ok := r.engine.EnterEditor(p.ElementID); !ok {
			return nil, fmt.Errorf("element %s is not a linear element", p.ElementID)
		}
		return r.editorState(nil)

	case TypeEditorExit:
		if _, ok := r.engine.Session(); !ok {
			return nil, errNoSession
		}
		return r.editorState(r.engine.ExitEditor())

	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p linear.Pointer
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if _, ok := r.engine.Session(); !ok {
			return nil, errNoSession
		}
		switch msg.Type {
		case TypePointerDown:
			r.engine.PointerDown(p)
		case TypePointerMove:
			r.engine.PointerMove(p)
		default:
			r.engine.PointerUp(p)
		}
		return r.editorState(nil)

	case TypePointsDelete, TypePointsDuplicate:
		if _, ok := r.engine.Session(); !ok {
			return nil, errNoSession
		}
		if msg.Type == TypePointsDelete {
			r.engine.DeletePoints()
		} else {
			r.engine.DuplicatePoints()
		}
		return r.editorState(nil)

	case TypeViewportUpdate:
		var p ViewportPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if p.Zoom <= 0 {
			return nil, fmt.Errorf("invalid zoom %v", p.Zoom)
		}
		r.engine.SetViewport(p.Zoom, p.GridSize)
		return nil, nil

	case TypeBoundsQuery:
		var p BoundsQueryPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		return r.queryBounds(p)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

func (r *Room) queryBounds(p BoundsQueryPayload) (*Message, error) {
	out := BoundsResultPayload{Bounds: make(map[string]bounds.Coords, len(p.ElementIDs))}
	for _, id := range p.ElementIDs {
		if err := typeid.Validate(id, typeid.PrefixElement); err != nil {
			return nil, err
		}
		c, ok := r.engine.AbsoluteCoords(id, p.IncludeCaption)
		if !ok {
			out.Missing = append(out.Missing, id)
			continue
		}
		out.Bounds[id] = c
	}
	return newMessage(TypeBoundsResult, out)
}

// editorState builds the editor.state reply. A nil element means the
// current preview of the edited element. Changed reports whether the scene
// changed since the last broadcast.
func (r *Room) editorState(el *scene.Element) (*Message, error) {
	p := EditorStatePayload{Changed: len(r.order) > 0, Element: el}
	if s, ok := r.engine.Session(); ok {
		p.Session = s
		if el == nil {
			p.Element, _ = r.engine.Preview()
		}
	}
	return newMessage(TypeEditorState, p)
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("missing %s payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
	}
	return nil
}
