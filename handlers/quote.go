package handlers

import (
	"log"
	"quotes-backend/services"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	Client *services.QuoteClient
}

func NewQuoteHandler(client *services.QuoteClient) *QuoteHandler {
	return &QuoteHandler{Client: client}
}

// GetRandomQuote 透传上游随机名言
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.Client.Random(c.Request.Context())
	if err != nil {
		log.Printf("❌ 拉取随机名言失败: %v", err)
		c.JSON(502, gin.H{"error": "上游名言服务不可用"})
		return
	}
	c.JSON(200, quote)
}
