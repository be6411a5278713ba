package handlers

import (
	"log"
	"net/http"
	"quotes-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func ServeWs(hub *services.Hub, players *services.PlayerManager, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Upgrade Error:", err)
		return
	}

	client := &services.Client{
		Hub:      hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		OnReport: players.Dispatch, // 播放回执直接路由进控制器
	}
	client.Hub.Register <- client

	// 启动读写协程
	go client.WritePump()
	go client.ReadPump()
}
