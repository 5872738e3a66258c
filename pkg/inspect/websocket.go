package inspect

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/protocol"
)

// wsConn serialises writes on one socket.
type wsConn struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

func (c *wsConn) write(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	return c.conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (c *wsConn) writeError(code, msg string, fatal bool) error {
	data, err := protocol.ErrorFrame(&protocol.ErrorMessage{Code: code, Message: msg, Fatal: fatal}).Encode()
	if err != nil {
		return err
	}
	return c.write(data)
}

// handleWebSocket streams patch frames out and reads event frames in.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the upgrade so no frame published after the
	// handshake is missed.
	frames, unsubscribe := s.host.Subscribe()
	defer unsubscribe()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	ws := &wsConn{conn: conn, timeout: s.writeTimeout}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for frame := range frames {
			if err := ws.write(frame); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				conn.Close()
				return
			}
		}
	}()

	s.readLoop(ws)

	unsubscribe()
	wg.Wait()
}

func (s *Server) readLoop(ws *wsConn) {
	for {
		_, data, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read failed", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil || frame.Type != protocol.FrameEvent {
			s.logger.Warn("bad frame from inspector client", "error", err)
			if !s.reply(ws, "VC031", "expected an event frame", false) {
				return
			}
			continue
		}
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			if !s.reply(ws, "VC031", err.Error(), false) {
				return
			}
			continue
		}
		if err := s.host.Send(ev.Path, ev.Message()); err != nil {
			code := errors.Code(err)
			fatal := code == "VC010"
			if !s.reply(ws, code, err.Error(), fatal) || fatal {
				return
			}
		}
	}
}

// reply sends an error frame. It reports false when the socket can no
// longer be written, which ends the read loop.
func (s *Server) reply(ws *wsConn, code, msg string, fatal bool) bool {
	if err := ws.writeError(code, msg, fatal); err != nil {
		s.logger.Debug("websocket error frame not sent", "code", code, "error", err)
		return false
	}
	return true
}
