package target

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const closeGracePeriod = time.Second

// wsChannel sends every write as one binary WebSocket message. The peer
// sees the same byte stream it would read from a pipe, split at arbitrary
// message boundaries.
type wsChannel struct {
	conn *websocket.Conn
}

func (c *wsChannel) Write(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsChannel) Close() error {
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod),
	)
	return c.conn.Close()
}

func dialWebSocket(ctx context.Context, url string) (*Endpoint, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("target: dial %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("target: dial %s: %w", url, err)
	}
	ch := &wsChannel{conn: conn}
	return &Endpoint{
		Name:     url,
		Channel:  ch,
		closer:   ch,
		deadline: conn.SetWriteDeadline,
	}, nil
}
