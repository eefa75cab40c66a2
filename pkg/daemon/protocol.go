package daemon

import (
	"encoding/json"

	"github.com/b/tabdeck/pkg/paths"
	"github.com/b/tabdeck/pkg/tabs"
)

// MessageType identifies the type of message
type MessageType string

const (
	MsgSubscribe   MessageType = "subscribe"
	MsgUnsubscribe MessageType = "unsubscribe"
	MsgOp          MessageType = "op"    // Client -> Daemon: apply one store operation
	MsgState       MessageType = "state" // Daemon -> Client: snapshot after a change
	MsgPing        MessageType = "ping"
	MsgPong        MessageType = "pong"
	MsgError       MessageType = "error"
)

// Message is the envelope for every line on the socket.
type Message struct {
	Type     MessageType `json:"type"`
	ClientID string      `json:"client_id,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}

// Op names accepted in OpPayload.Op.
const (
	OpAdd         = "add"
	OpClose       = "close"
	OpActivate    = "activate"
	OpMove        = "move"
	OpSetPosition = "set_position"
	OpToggleSplit = "toggle_split"
	OpReorder     = "reorder"
	OpEnterQuad   = "enter_quad"
	OpExitQuad    = "exit_quad"
	OpDrop        = "drop"
)

// Ops lists every op in the order `tabdeck send --help` shows them.
var Ops = []string{
	OpAdd, OpClose, OpActivate, OpMove, OpSetPosition,
	OpToggleSplit, OpReorder, OpEnterQuad, OpExitQuad, OpDrop,
}

// OpPayload carries one store operation. Which fields matter depends on Op.
type OpPayload struct {
	Op        string    `json:"op"`
	MenuID    int       `json:"menu_id,omitempty"`
	Pane      tabs.Pane `json:"pane,omitempty"`
	TabID     int       `json:"tab_id,omitempty"`
	OverTabID int       `json:"over_tab_id,omitempty"`
	FromPane  tabs.Pane `json:"from_pane,omitempty"` // drop source
	Force     bool      `json:"force,omitempty"`
}

// StatePayload is a snapshot tagged with its store version.
type StatePayload struct {
	Seq      uint64        `json:"seq"`
	Snapshot tabs.Snapshot `json:"snapshot"`
}

type ErrorPayload struct {
	Op      string `json:"op,omitempty"`
	Message string `json:"message"`
}

// decodePayload converts a generically decoded payload into v.
func decodePayload(payload interface{}, v interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SocketPath returns the daemon socket path for a session
func SocketPath(session string) string {
	return paths.SocketPath(session)
}

// PidPath returns the pidfile path for a session
func PidPath(session string) string {
	return paths.PidPath(session)
}
