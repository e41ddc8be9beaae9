package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sprite-ai/callguard/internal/clipboard"
	"github.com/sprite-ai/callguard/internal/metrics"
	"github.com/sprite-ai/callguard/internal/schedule"
	"github.com/sprite-ai/callguard/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tool; restrict when exposed
	},
}

// WebSocket message types from client.
const (
	wsMsgToggleSignal   = "toggle_signal"
	wsMsgSetText        = "set_text"
	wsMsgVoiceDemo      = "voice_demo"
	wsMsgStartCall      = "start_call"
	wsMsgIncoming       = "incoming"
	wsMsgAccept         = "accept"
	wsMsgDecline        = "decline"
	wsMsgEndCall        = "end_call"
	wsMsgMute           = "mute"
	wsMsgSpeaker        = "speaker"
	wsMsgBubble         = "bubble"
	wsMsgStartChallenge = "start_challenge"
	wsMsgStopChallenge  = "stop_challenge"
	wsMsgCopyScript     = "copy_script"
	wsMsgCallBack       = "callback"
	wsMsgStopReport     = "stop_report"
	wsMsgExport         = "export"
)

// WebSocket message types to client.
const (
	wsMsgState     = "state"
	wsMsgClipboard = "clipboard"
	wsMsgError     = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsID is the payload for toggle_signal and copy_script.
type wsID struct {
	ID string `json:"id"`
}

// wsText is the payload for set_text.
type wsText struct {
	Text string `json:"text"`
}

// wsBubble is the optional payload for bubble; without it the panel toggles.
type wsBubble struct {
	Open *bool `json:"open"`
}

// wsClipboard carries text the client should place on its clipboard.
type wsClipboard struct {
	Text string `json:"text"`
}

var errBadPayload = errors.New("invalid message data")

// liveSession binds one websocket to one call guard session. Only run's
// goroutine touches the session or writes to the connection.
type liveSession struct {
	conn   *websocket.Conn
	loop   *schedule.Loop
	sess   *session.Session
	clip   *clipboard.Buffer
	logger *slog.Logger
	dirty  bool
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	live := &liveSession{
		conn: conn,
		loop: schedule.NewLoop(16),
		clip: &clipboard.Buffer{},
	}
	defer live.loop.Close()

	opts := session.Options{
		Catalog:    s.cat,
		Scheduler:  live.loop,
		Clipboard:  live.clip,
		Directory:  s.cfg.Directory,
		CasePrefix: s.cfg.Case.Prefix,
		CanaryHost: s.cfg.Case.CanaryHost,
		Logger:     s.logger,
		OnTick:     func() { live.dirty = true },
	}
	newSession := session.New
	if r.URL.Query().Get("demo") != "" {
		newSession = session.NewDemo
	}
	live.sess, err = newSession(opts)
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}
	defer live.sess.Close()

	live.logger = s.logger.With("session", live.sess.ID(), "remote", r.RemoteAddr)
	live.logger.Info("session opened")
	metrics.SessionsActive.Inc()
	defer metrics.SessionsActive.Dec()

	live.run()
	live.logger.Info("session closed")
}

// run owns the session until the client goes away. Client messages and timer
// callbacks are both serialized through this loop.
func (l *liveSession) run() {
	incoming := make(chan wsMessage)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(incoming)
		for {
			_, raw, err := l.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					l.logger.Warn("websocket read", "error", err)
				}
				return
			}
			var msg wsMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				msg = wsMessage{Type: ""}
			}
			select {
			case incoming <- msg:
			case <-done:
				return
			}
		}
	}()

	l.sendState()
	for {
		select {
		case msg, ok := <-incoming:
			if !ok {
				return
			}
			if msg.Type == "" {
				sendWSError(l.conn, "invalid message format")
				continue
			}
			if err := l.handle(msg); err != nil {
				sendWSError(l.conn, err.Error())
				continue
			}
			metrics.ActionsTotal.WithLabelValues(msg.Type).Inc()
			l.sendState()
		case f := <-l.loop.Tasks():
			f()
			if l.dirty {
				l.sendState()
			}
		}
	}
}

func (l *liveSession) handle(msg wsMessage) error {
	s := l.sess
	l.logger.Debug("action", "type", msg.Type)

	switch msg.Type {
	case wsMsgToggleSignal:
		var req wsID
		if err := decode(msg.Data, &req); err != nil {
			return err
		}
		if err := s.ToggleSignal(req.ID); err != nil {
			return err
		}
		l.assessed()
	case wsMsgSetText:
		var req wsText
		if err := decode(msg.Data, &req); err != nil {
			return err
		}
		s.SetText(req.Text)
		l.assessed()
	case wsMsgVoiceDemo:
		s.VoiceDemo()
		l.assessed()
	case wsMsgStartCall:
		return s.StartCall()
	case wsMsgIncoming:
		return s.Incoming()
	case wsMsgAccept:
		return s.Accept()
	case wsMsgDecline:
		return s.Decline()
	case wsMsgEndCall:
		return s.EndCall()
	case wsMsgMute:
		return s.ToggleMute()
	case wsMsgSpeaker:
		return s.ToggleSpeaker()
	case wsMsgBubble:
		var req wsBubble
		if len(msg.Data) > 0 {
			if err := decode(msg.Data, &req); err != nil {
				return err
			}
		}
		switch {
		case req.Open == nil:
			s.ToggleBubble()
		case *req.Open:
			s.OpenBubble()
		default:
			s.CloseBubble()
		}
	case wsMsgStartChallenge:
		_, err := s.StartChallenge()
		return err
	case wsMsgStopChallenge:
		s.StopChallenge()
	case wsMsgCopyScript:
		var req wsID
		if err := decode(msg.Data, &req); err != nil {
			return err
		}
		ok, err := s.CopyScript(req.ID)
		if err != nil {
			return err
		}
		l.afterCopy(ok)
	case wsMsgCallBack:
		s.CallBack()
	case wsMsgStopReport:
		s.StopAndReport()
	case wsMsgExport:
		_, ok := s.ExportEvidence()
		l.afterCopy(ok)
	default:
		return errors.New("unknown message type: " + msg.Type)
	}
	return nil
}

func (l *liveSession) afterCopy(ok bool) {
	metrics.RecordClipboard(ok)
	if ok {
		sendWSMessage(l.conn, wsMsgClipboard, wsClipboard{Text: l.clip.Last()})
	}
}

func (l *liveSession) assessed() {
	metrics.AssessmentsTotal.WithLabelValues(l.sess.Assessment().Level.String()).Inc()
}

func (l *liveSession) sendState() {
	l.dirty = false
	sendWSMessage(l.conn, wsMsgState, l.sess.Snapshot())
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errBadPayload
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errBadPayload
	}
	return nil
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Warn("ws marshal", "error", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		slog.Debug("ws write", "error", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
