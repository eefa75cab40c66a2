package daemon

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
)

// ErrRejected wraps error replies from the daemon.
var ErrRejected = errors.New("daemon rejected request")

// Client is one connection to a session daemon. It is not safe for concurrent use.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
	id      string
}

// Dial connects to the daemon serving session.
func Dial(session string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("unix", SocketPath(session), timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Client{conn: conn, scanner: scanner}, nil
}

// ID is the subscription id, empty until Subscribe.
func (c *Client) ID() string { return c.id }

// Subscribe registers for state broadcasts and returns the current state.
func (c *Client) Subscribe() (StatePayload, error) {
	c.id = uuid.NewString()
	if err := c.write(Message{Type: MsgSubscribe, ClientID: c.id}); err != nil {
		return StatePayload{}, err
	}
	return c.Next()
}

// Send applies one op. Unsubscribed clients get the resulting state back;
// subscribed clients receive it as the next broadcast when the op changed anything.
func (c *Client) Send(op OpPayload) (StatePayload, error) {
	if err := c.write(Message{Type: MsgOp, ClientID: c.id, Payload: op}); err != nil {
		return StatePayload{}, err
	}
	if c.id != "" {
		return StatePayload{}, nil
	}
	return c.Next()
}

// Next blocks for the next state message.
func (c *Client) Next() (StatePayload, error) {
	for {
		msg, err := c.read()
		if err != nil {
			return StatePayload{}, err
		}
		switch msg.Type {
		case MsgState:
			var st StatePayload
			if err := decodePayload(msg.Payload, &st); err != nil {
				return StatePayload{}, fmt.Errorf("decode state: %w", err)
			}
			return st, nil
		case MsgError:
			var e ErrorPayload
			_ = decodePayload(msg.Payload, &e)
			return StatePayload{}, fmt.Errorf("%w: %s", ErrRejected, e.Message)
		}
	}
}

// Ping round-trips a ping message.
func (c *Client) Ping() error {
	if err := c.write(Message{Type: MsgPing, ClientID: c.id}); err != nil {
		return err
	}
	for {
		msg, err := c.read()
		if err != nil {
			return err
		}
		if msg.Type == MsgPong {
			return nil
		}
	}
}

// Close unsubscribes, if needed, and closes the connection.
func (c *Client) Close() error {
	if c.id != "" {
		_ = c.write(Message{Type: MsgUnsubscribe, ClientID: c.id})
	}
	return c.conn.Close()
}

func (c *Client) write(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", msg.Type, err)
	}
	return nil
}

func (c *Client) read() (Message, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return Message{}, fmt.Errorf("read: %w", err)
		}
		return Message{}, fmt.Errorf("read: %w", net.ErrClosed)
	}
	var msg Message
	if err := json.Unmarshal(c.scanner.Bytes(), &msg); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}

