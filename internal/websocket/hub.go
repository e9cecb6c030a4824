package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub bridges Redis pub/sub to websocket clients. Every client gets its
// user's private channel; clients watching a spot's live presences can add
// spot channels via the "spots" query param.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]context.CancelFunc
	redisClient *redis.Client
	jwtSecret   []byte
}

func NewHub(redisClient *redis.Client, jwtSecret string) *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]context.CancelFunc),
		redisClient: redisClient,
		jwtSecret:   []byte(jwtSecret),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	channels := []string{"user_updates:" + userID.String()}
	if spots := r.URL.Query().Get("spots"); spots != "" {
		for _, spotID := range strings.Split(spots, ",") {
			if spotID = strings.TrimSpace(spotID); spotID != "" {
				channels = append(channels, "spot_updates:"+spotID)
			}
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	h.mu.Lock()
	h.connections[conn] = cancel
	total := len(h.connections)
	h.mu.Unlock()

	go h.forward(ctx, conn, channels)
	log.Printf("WebSocket connected: user %s on %d channels (total conns: %d)", userID, len(channels), total)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cancel, ok := h.connections[conn]; ok {
		cancel()
		delete(h.connections, conn)
	}
	conn.Close()
	log.Printf("WebSocket disconnected (total conns: %d)", len(h.connections))
}

// forward pumps pub/sub messages for this connection's channels until the
// client goes away.
func (h *Hub) forward(ctx context.Context, conn *websocket.Conn, channels []string) {
	pubsub := h.redisClient.Subscribe(ctx, channels...)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.mu.RLock()
			err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
			h.mu.RUnlock()
			if err != nil {
				return
			}
		}
	}
}

// SendToConn pushes an ad-hoc message outside pub/sub, mainly for tests.
func (h *Hub) SendToConn(conn *websocket.Conn, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}
