package daemon

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/b/tabdeck/pkg/tabs"
)

// clientInfo tracks a subscribed client
type clientInfo struct {
	conn    net.Conn
	writeMu sync.Mutex
}

// Server shares one tab store with every client on a session socket.
type Server struct {
	socketPath string
	pidPath    string
	listener   net.Listener
	clients    map[string]*clientInfo
	conns      map[net.Conn]struct{}
	clientsMu  sync.RWMutex
	done       chan struct{}
	wg         sync.WaitGroup

	dispatcher *Dispatcher
	logger     *slog.Logger

	// lastSent is the newest store version broadcast so far. seqMu serializes
	// broadcasts so subscribers never see a version go backwards.
	lastSent uint64
	seqMu    sync.Mutex
}

// NewServer creates a daemon server for session. State changes made through
// the dispatcher's store are broadcast to subscribers.
func NewServer(session string, dispatcher *Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		socketPath: SocketPath(session),
		pidPath:    PidPath(session),
		clients:    make(map[string]*clientInfo),
		conns:      make(map[net.Conn]struct{}),
		done:       make(chan struct{}),
		dispatcher: dispatcher,
		logger:     logger.With("component", "daemon", "session", session),
	}
	dispatcher.Store().OnChange(s.broadcast)
	return s
}

// Start begins listening for client connections
func (s *Server) Start() error {
	if err := s.checkAndClaimPid(); err != nil {
		return err
	}

	// Remove stale socket if exists (safe now that we own the pidfile)
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		os.Remove(s.pidPath)
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener
	s.logger.Info("listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// checkAndClaimPid checks for existing daemon and claims pidfile
func (s *Server) checkAndClaimPid() error {
	if data, err := os.ReadFile(s.pidPath); err == nil {
		pidStr := strings.TrimSpace(string(data))
		if pid, err := strconv.Atoi(pidStr); err == nil && pid > 0 && pid != os.Getpid() {
			if process, err := os.FindProcess(pid); err == nil {
				// On Unix, FindProcess always succeeds, so we need to send signal 0
				// EPERM means the process exists but belongs to someone else
				if err := process.Signal(syscall.Signal(0)); err == nil || errors.Is(err, syscall.EPERM) {
					return fmt.Errorf("daemon already running with pid %d", pid)
				}
			}
		}
		s.logger.Debug("removing stale pidfile", "path", s.pidPath)
		os.Remove(s.pidPath)
	}

	if err := os.WriteFile(s.pidPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

// Stop shuts down the server
func (s *Server) Stop() {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.clientsMu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	clear(s.clients)
	s.clientsMu.Unlock()
	s.wg.Wait()
	os.Remove(s.socketPath)
	os.Remove(s.pidPath)
	s.logger.Info("stopped")
}

// ClientCount returns the number of subscribed clients
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.logger.Warn("accept failed", "error", err)
				continue
			}
		}
		select {
		case <-s.done:
			conn.Close()
			return
		default:
		}
		s.clientsMu.Lock()
		s.conns[conn] = struct{}{}
		s.clientsMu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleClient(conn)
			s.clientsMu.Lock()
			delete(s.conns, conn)
			s.clientsMu.Unlock()
		}()
	}
}

// handleClient processes messages from one connection until it closes.
func (s *Server) handleClient(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var clientID string
	// unsubscribed connections serialize their own replies
	self := &clientInfo{conn: conn}

	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			s.logger.Debug("dropping malformed message", "error", err)
			continue
		}

		switch msg.Type {
		case MsgSubscribe:
			clientID = msg.ClientID
			if clientID == "" {
				clientID = uuid.NewString()
			}
			s.clientsMu.Lock()
			s.clients[clientID] = self
			s.clientsMu.Unlock()
			s.logger.Info("client subscribed", "client", clientID)
			s.sendState(self, clientID)

		case MsgUnsubscribe:
			s.removeClient(clientID)
			return

		case MsgOp:
			var op OpPayload
			if err := decodePayload(msg.Payload, &op); err != nil {
				s.sendMessage(self, Message{Type: MsgError, ClientID: clientID, Payload: ErrorPayload{Message: err.Error()}})
				continue
			}
			if err := s.dispatcher.Apply(op); err != nil {
				s.logger.Warn("rejected op", "op", op.Op, "error", err)
				s.sendMessage(self, Message{Type: MsgError, ClientID: clientID, Payload: ErrorPayload{Op: op.Op, Message: err.Error()}})
				continue
			}
			s.logger.Debug("applied op", "op", op.Op, "tab", op.TabID, "pane", op.Pane)
			// subscribers already got the broadcast
			if clientID == "" {
				s.sendState(self, "")
			}

		case MsgPing:
			s.sendMessage(self, Message{Type: MsgPong, ClientID: clientID})
		}
	}

	if clientID != "" {
		s.removeClient(clientID)
	}
}

func (s *Server) removeClient(clientID string) {
	s.clientsMu.Lock()
	delete(s.clients, clientID)
	s.clientsMu.Unlock()
	s.logger.Info("client left", "client", clientID)
}

// broadcast pushes a committed snapshot to every subscriber. The store version
// is the sequence number; a snapshot older than the last one sent is dropped.
func (s *Server) broadcast(snap tabs.Snapshot) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	if snap.Version <= s.lastSent {
		s.logger.Debug("dropping stale snapshot", "version", snap.Version, "last_sent", s.lastSent)
		return
	}
	s.lastSent = snap.Version

	s.clientsMu.RLock()
	targets := make(map[string]*clientInfo, len(s.clients))
	for id, c := range s.clients {
		targets[id] = c
	}
	s.clientsMu.RUnlock()

	for id, c := range targets {
		msg := Message{Type: MsgState, ClientID: id, Payload: StatePayload{Seq: snap.Version, Snapshot: snap}}
		if err := s.sendMessage(c, msg); err != nil {
			s.logger.Warn("broadcast failed", "client", id, "error", err)
		}
	}
}

// sendState replies with the current snapshot, sequenced by its version.
func (s *Server) sendState(c *clientInfo, clientID string) {
	snap := s.dispatcher.Store().Snapshot()
	s.sendMessage(c, Message{Type: MsgState, ClientID: clientID, Payload: StatePayload{Seq: snap.Version, Snapshot: snap}})
}

func (s *Server) sendMessage(c *clientInfo, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, err = c.conn.Write(append(data, '\n'))
	return err
}
