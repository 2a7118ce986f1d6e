package preview

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/pkg/resubscribe"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketHandler 通过WebSocket向预览页推送视图，并接收用户操作
type WebSocketHandler struct {
	client   *resubscribe.Client
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(client *resubscribe.Client, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		client: client,
		logger: logger.With().Str("handler", "websocket").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
}

type outgoingMessage struct {
	Type      string            `json:"type"`
	View      *resubscribe.View `json:"view,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// handleWebSocket 处理WebSocket连接
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan outgoingMessage, 8)
	go h.writeLoop(ctx, cancel, conn, outbound)
	go h.forwardViews(ctx, outbound)

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Msg("read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if err := h.apply(msg.Type); err != nil {
			select {
			case outbound <- outgoingMessage{Type: "error", Error: err.Error(), Timestamp: time.Now().UnixMilli()}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// apply 把预览页的按钮操作映射到状态机
func (h *WebSocketHandler) apply(action string) error {
	switch action {
	case "accept":
		return h.client.Accept()
	case "cancel":
		return h.client.Cancel()
	case "close":
		return h.client.Close()
	default:
		return errUnknownAction(action)
	}
}

// forwardViews 订阅视图变化
func (h *WebSocketHandler) forwardViews(ctx context.Context, outbound chan<- outgoingMessage) {
	for v := range h.client.Watch(ctx) {
		v := v
		select {
		case outbound <- outgoingMessage{Type: "view", View: &v, Timestamp: time.Now().UnixMilli()}:
		case <-ctx.Done():
			return
		}
	}
}

// writeLoop 是唯一写连接的协程，同时负责心跳
func (h *WebSocketHandler) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, outbound <-chan outgoingMessage) {
	defer cancel()
	// Unblocks the read loop when writing fails first.
	defer conn.Close()
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-outbound:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug().Err(err).Msg("write failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				h.logger.Debug().Err(err).Msg("ping failed")
				return
			}
		}
	}
}
