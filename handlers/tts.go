package handlers

import (
	"log"
	"quotes-backend/models"
	"quotes-backend/services"

	"github.com/gin-gonic/gin"
)

type TTSHandler struct {
	Audio services.AudioService
}

func NewTTSHandler(audio services.AudioService) *TTSHandler {
	return &TTSHandler{Audio: audio}
}

// TextToSpeech 语音合成代理：收文本，吐 mp3 字节流
func (h *TTSHandler) TextToSpeech(c *gin.Context) {
	var req models.TTSReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "text 不能为空"})
		return
	}

	voice := models.ResolveVoice(req.Voice)

	data, err := h.Audio.Synthesize(c.Request.Context(), req.Text, voice)
	if err != nil {
		log.Printf("❌ 语音合成失败: %v", err)
		c.JSON(500, gin.H{"error": "语音合成失败"})
		return
	}

	c.Data(200, "audio/mpeg", data)
}
