package web

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wtask/framechat/internal/chat/frame"
)

// wsTransport - chat transport over WebSocket connection, one WebSocket message is one chat message.
type wsTransport struct {
	ws           *websocket.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration

	wmu       sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func newTransport(ws *websocket.Conn, maxSize int, readTimeout, writeTimeout time.Duration) *wsTransport {
	ws.SetReadLimit(int64(maxSize))
	return &wsTransport{
		ws:           ws,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// ReadFrame - reads next text or binary message.
// Any closure of WebSocket by the peer, including abnormal one, results to io.EOF.
// Exceeded read limit results to frame.ErrTooLarge.
func (t *wsTransport) ReadFrame() ([]byte, error) {
	if t.readTimeout > 0 {
		if err := t.ws.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return nil, err
		}
	}
	_, p, err := t.ws.ReadMessage()
	var closeErr *websocket.CloseError
	switch {
	case err == nil:
		return p, nil
	case errors.As(err, &closeErr):
		return nil, io.EOF
	case errors.Is(err, websocket.ErrReadLimit):
		return nil, frame.ErrTooLarge
	default:
		return nil, err
	}
}

// WriteFrame - sends payload as text message.
func (t *wsTransport) WriteFrame(payload []byte) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()
	if t.writeTimeout > 0 {
		if err := t.ws.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
			return err
		}
	}
	return t.ws.WriteMessage(websocket.TextMessage, payload)
}

// Close - sends close message if possible and closes network connection.
func (t *wsTransport) Close() error {
	t.closeOnce.Do(func() {
		// WriteControl is safe to call concurrently with WriteMessage
		t.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		t.closeErr = t.ws.Close()
	})
	return t.closeErr
}

func (t *wsTransport) RemoteAddr() net.Addr {
	return t.ws.RemoteAddr()
}
