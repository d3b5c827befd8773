package stream

import (
	"encoding/json"
	"errors"

	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/linear"
	"github.com/storiny/web-sub003/internal/scene"
)

var ErrUnknownMessage = errors.New("unknown message type")

type Message struct {
	Type     string          `json:"type"`
	SceneID  string          `json:"sceneId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypeEditorEnter     = "editor.enter"
	TypeEditorExit      = "editor.exit"
	TypePointerDown     = "pointer.down"
	TypePointerMove     = "pointer.move"
	TypePointerUp       = "pointer.up"
	TypePointsDelete    = "points.delete"
	TypePointsDuplicate = "points.duplicate"
	TypeViewportUpdate  = "viewport.update"
	TypeBoundsQuery     = "bounds.query"

	// Server → client
	TypeWelcome      = "welcome"
	TypeEditorState  = "editor.state"
	TypeBoundsResult = "bounds.result"
	TypeSceneSync    = "scene.sync"
	TypeError        = "error"
)

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	SceneID  string `json:"sceneId"`
}

type EditorEnterPayload struct {
	ElementID string `json:"elementId"`
}

type ViewportPayload struct {
	Zoom     float64 `json:"zoom"`
	GridSize float64 `json:"gridSize"`
}

type BoundsQueryPayload struct {
	ElementIDs     []string `json:"elementIds"`
	IncludeCaption bool     `json:"includeCaption,omitempty"`
}

// EditorStatePayload reports the editing session after a command. Element
// is the edited element as it should be drawn, pending point included.
type EditorStatePayload struct {
	Session *linear.Session `json:"session"`
	Element *scene.Element  `json:"element,omitempty"`
	Changed bool            `json:"changed"`
}

type BoundsResultPayload struct {
	Bounds  map[string]bounds.Coords `json:"bounds"`
	Missing []string                 `json:"missing,omitempty"`
}

// SceneSyncPayload carries changed elements, or the whole scene when Full
// is set.
type SceneSyncPayload struct {
	Full     bool             `json:"full,omitempty"`
	Elements []*scene.Element `json:"elements"`
}

type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Message string `json:"message"`
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Payload: data}, nil
}

func errorMessage(request string, err error) *Message {
	data, _ := json.Marshal(ErrorPayload{Request: request, Message: err.Error()})
	return &Message{Type: TypeError, Payload: data}
}
