package services

import (
	"context"
)

// AudioService 定义语音合成的标准接口
type AudioService interface {
	// Synthesize 直接返回 mp3 字节流，给 /text-to-speech 代理接口用
	Synthesize(ctx context.Context, text string, voice string) ([]byte, error)
	// GenerateAudio 合成并落盘到静态目录，返回音频文件的 URL
	GenerateAudio(ctx context.Context, text string, identifier string, voice string) (string, error)
}
