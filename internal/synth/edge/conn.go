package edge

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Shared TLS session cache so repeated per-segment dials resume sessions
// instead of paying a full handshake each time.
var tlsSessionCache = tls.NewLRUClientSessionCache(64)

// connConfig holds websocket transport settings.
type connConfig struct {
	url            string
	connectTimeout time.Duration
	writeTimeout   time.Duration
}

// conn wraps a single websocket connection with a read pump feeding
// typed channels. One conn serves exactly one synthesis request.
type conn struct {
	config connConfig

	ws        *websocket.Conn
	mu        sync.Mutex
	readCh    chan []byte
	errorCh   chan error
	closeCh   chan struct{}
	closeOnce sync.Once
	connected bool
}

func newConn(config connConfig) *conn {
	return &conn{
		config:  config,
		readCh:  make(chan []byte, 64),
		errorCh: make(chan error, 1),
		closeCh: make(chan struct{}),
	}
}

// connect dials the gateway and starts the read pump.
func (c *conn) connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.connectTimeout,
		TLSClientConfig: &tls.Config{
			ClientSessionCache: tlsSessionCache,
		},
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.config.connectTimeout)
	defer cancel()

	ws, resp, err := dialer.DialContext(dialCtx, c.config.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket connect failed: %w, status: %d", err, resp.StatusCode)
		}
		return fmt.Errorf("websocket connect failed: %w", err)
	}

	c.ws = ws
	c.connected = true

	go c.readLoop()
	return nil
}

// readLoop pumps inbound messages until the connection dies.
func (c *conn) readLoop() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			select {
			case c.errorCh <- err:
			default:
			}
			return
		}
		select {
		case c.readCh <- data:
		case <-c.closeCh:
			return
		}
	}
}

// sendJSON writes a JSON message under the write deadline.
func (c *conn) sendJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}
	if c.config.writeTimeout > 0 {
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.config.writeTimeout))
	}
	return c.ws.WriteJSON(v)
}

func (c *conn) receiveChan() <-chan []byte { return c.readCh }
func (c *conn) errChan() <-chan error      { return c.errorCh }

// close tears the connection down. Safe to call more than once.
func (c *conn) close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.ws != nil {
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			err = c.ws.Close()
		}
		c.connected = false
	})
	return err
}
