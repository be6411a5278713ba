package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"quotes-backend/models"
	"time"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io"

type ElevenLabsAudioService struct {
	APIKey    string
	ModelID   string
	BaseURL   string // 测试时可以指到 httptest 服务
	StaticDir string
	client    *http.Client
}

func NewElevenLabsAudioService(apiKey, modelID, staticDir string) *ElevenLabsAudioService {
	return &ElevenLabsAudioService{
		APIKey:    apiKey,
		ModelID:   modelID,
		BaseURL:   defaultElevenLabsBaseURL,
		StaticDir: staticDir,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize 调 ElevenLabs 接口，音色名先查表换成 voice_id，不认识的回退默认
func (s *ElevenLabsAudioService) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	body := map[string]interface{}{
		"text":     text,
		"model_id": s.ModelID,
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.5,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	}
	payload, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.BaseURL, models.VoiceID(voice))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 ElevenLabs 失败: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ElevenLabs 返回 %d: %s", resp.StatusCode, string(errText))
	}

	return io.ReadAll(resp.Body)
}

// GenerateAudio 合成并写到静态目录；同名文件已存在就直接复用，不重复调 API 浪费钱
func (s *ElevenLabsAudioService) GenerateAudio(ctx context.Context, text string, identifier string, voice string) (string, error) {
	fileName := identifier + ".mp3"
	fullPath := filepath.Join(s.StaticDir, fileName)
	audioURL := "/static/audio/" + fileName

	if _, err := os.Stat(fullPath); err == nil {
		log.Printf("♻️ 文案未变，复用缓存音频: %s", fileName)
		return audioURL, nil
	}

	data, err := s.Synthesize(ctx, text, voice)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}
	log.Printf("✅ 音频合成成功! 文件路径: %s", audioURL)
	return audioURL, nil
}
