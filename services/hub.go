package services

import (
	"encoding/json"
	"log"
	"quotes-backend/models"
	"sync"

	"github.com/gorilla/websocket"
)

// Client 是连接与 Hub 之间的桥梁
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte // 每个客户端独立的待发送消息队列

	// OnReport 播放回执的处理函数（由 ws handler 接到 PlayerManager 上）
	OnReport func(models.PlaybackReport)
}

// Hub 负责维护所有活跃客户端并处理消息广播
type Hub struct {
	Clients    map[*Client]bool
	broadcast  chan []byte  // 待广播的消息管道
	Register   chan *Client // 注册请求管道
	Unregister chan *Client // 注销请求管道
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Println("📱 新客户端已连接")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Println("👋 客户端已断开")
			}
		case message := <-h.broadcast:
			// 异步分发给所有客户端，不阻塞广播管道
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

func (h *Hub) Broadcast(payload models.WSMessage) {
	message, _ := json.Marshal(payload)
	h.broadcast <- message
}

// --- Client 相关方法 ---

// ReadPump 监听客户端上行：播放回执和心跳
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var report models.PlaybackReport
		if err := json.Unmarshal(message, &report); err != nil || report.Type == "" {
			continue // 心跳或者格式不对的消息，直接忽略
		}
		if c.OnReport != nil {
			c.OnReport(report)
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		}
	}
}

// HubSink 把 Hub 包装成播放控制器的扬声器端
type HubSink struct {
	Hub *Hub
}

func (s *HubSink) Play(event models.PlayEventData) error {
	s.Hub.Broadcast(models.WSMessage{Type: models.WSPlaybackPlay, Data: event})
	return nil
}

func (s *HubSink) Stop(userID string) {
	s.Hub.Broadcast(models.WSMessage{
		Type: models.WSPlaybackStop,
		Data: map[string]string{"user_id": userID},
	})
}
