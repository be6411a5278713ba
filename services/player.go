package services

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"quotes-backend/logic"
	"quotes-backend/models"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrNoQuote 空闲状态下点播放但当前没有名言可读
var ErrNoQuote = errors.New("没有可播放的名言")

// PlayState 播放会话状态，三态互斥
type PlayState int32

const (
	StateIdle PlayState = iota
	StateRequesting
	StatePlaying
)

func (s PlayState) String() string {
	switch s {
	case StateRequesting:
		return "requesting"
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// PlayableResource 播放资源句柄：静态目录里的一个 mp3
// Release 只作废句柄本身，文件留着当指纹缓存，旧版本由 cleanupOldVersions 收
type PlayableResource struct {
	Path     string
	URL      string
	released int32
}

// Release 幂等：多次调用只有第一次生效
func (r *PlayableResource) Release() {
	atomic.CompareAndSwapInt32(&r.released, 0, 1)
}

func (r *PlayableResource) Released() bool {
	return atomic.LoadInt32(&r.released) == 1
}

// PlaybackSink 实际出声的一端。ws 连上来的客户端就是扬声器
type PlaybackSink interface {
	Play(event models.PlayEventData) error
	Stop(userID string)
}

// PlaybackController 单槽位播放控制器：一个用户同时最多一个会话
// 状态机：Idle -> Requesting -> Playing -> Idle；任何出错边都回 Idle 并释放句柄
type PlaybackController struct {
	userID    uuid.UUID
	audio     AudioService
	sink      PlaybackSink
	staticDir string

	mu       sync.Mutex
	state    PlayState
	resource *PlayableResource
}

func NewPlaybackController(userID uuid.UUID, audio AudioService, sink PlaybackSink, staticDir string) *PlaybackController {
	return &PlaybackController{
		userID:    userID,
		audio:     audio,
		sink:      sink,
		staticDir: staticDir,
		state:     StateIdle,
	}
}

// State 当前状态快照
func (c *PlaybackController) State() PlayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle 播放开关
//   - Playing：立即停，不发网络请求
//   - Requesting：忽略，防止同一槽位并发两个合成请求
//   - Idle：合成 -> 下发播放指令，收到客户端的 started 回执才算 Playing
func (c *PlaybackController) Toggle(ctx context.Context, quote *models.RandomQuote, voice string) (PlayState, error) {
	c.mu.Lock()
	switch c.state {
	case StateRequesting:
		c.mu.Unlock()
		return StateRequesting, nil
	case StatePlaying:
		c.stopLocked()
		c.mu.Unlock()
		return StateIdle, nil
	}

	if quote == nil {
		c.mu.Unlock()
		return StateIdle, ErrNoQuote
	}
	c.state = StateRequesting
	c.mu.Unlock()

	// 合成期间不持锁，界面保持可响应；重入的 Toggle 会撞上 Requesting 被忽略
	text := logic.BuildNarration(quote.Quote, quote.Author)
	voice = models.ResolveVoice(voice)
	identifier := fmt.Sprintf("%s_%s_%s", c.userID.String(), voice, shortHash(text))

	audioURL, err := c.audio.GenerateAudio(ctx, text, identifier, voice)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRequesting {
		// 合成期间被 OnPlaybackError 之类的回执打断过，本次结果作废
		return c.state, nil
	}
	if err != nil {
		c.state = StateIdle
		return StateIdle, fmt.Errorf("语音合成失败: %w", err)
	}

	// 换播前先拆旧句柄，保证任何时刻最多一个在外面
	if c.resource != nil {
		c.resource.Release()
		c.resource = nil
	}
	c.resource = &PlayableResource{
		Path: filepath.Join(c.staticDir, identifier+".mp3"),
		URL:  audioURL,
	}

	if err := c.sink.Play(models.PlayEventData{
		UserID:   c.userID.String(),
		AudioURL: audioURL,
		Text:     text,
		Voice:    voice,
	}); err != nil {
		c.resource.Release()
		c.resource = nil
		c.state = StateIdle
		return StateIdle, fmt.Errorf("下发播放指令失败: %w", err)
	}

	go c.cleanupOldVersions(identifier)

	return StateRequesting, nil
}

// stopLocked 停止当前播放并释放句柄，调用方必须持锁
func (c *PlaybackController) stopLocked() {
	c.sink.Stop(c.userID.String())
	if c.resource != nil {
		c.resource.Release()
		c.resource = nil
	}
	c.state = StateIdle
}

// OnPlaybackStarted 客户端回执：声音真正出来了
func (c *PlaybackController) OnPlaybackStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRequesting {
		c.state = StatePlaying
	}
}

// OnPlaybackEnded 客户端回执：自然播完
func (c *PlaybackController) OnPlaybackEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying {
		return
	}
	if c.resource != nil {
		c.resource.Release()
		c.resource = nil
	}
	c.state = StateIdle
}

// OnPlaybackError 客户端回执：播放失败。不管当前什么状态都回 Idle
func (c *PlaybackController) OnPlaybackError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resource != nil {
		c.resource.Release()
		c.resource = nil
	}
	if c.state != StateIdle {
		log.Printf("❌ 客户端播放失败 [user=%s]，会话回收", c.userID)
	}
	c.state = StateIdle
}

// cleanupOldVersions 异步清掉该用户旧指纹的音频，防止磁盘被历史版本占满
func (c *PlaybackController) cleanupOldVersions(currentIdentifier string) {
	pattern := filepath.Join(c.staticDir, c.userID.String()+"_*.mp3")
	files, _ := filepath.Glob(pattern)
	for _, f := range files {
		if !strings.Contains(f, currentIdentifier) {
			os.Remove(f)
		}
	}
}

func shortHash(text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf("%x", sum)[:8]
}

// PlayerManager 按用户懒加载控制器，一个用户一个槽位
type PlayerManager struct {
	audio     AudioService
	sink      PlaybackSink
	staticDir string

	mu          sync.Mutex
	controllers map[uuid.UUID]*PlaybackController
}

func NewPlayerManager(audio AudioService, sink PlaybackSink, staticDir string) *PlayerManager {
	return &PlayerManager{
		audio:       audio,
		sink:        sink,
		staticDir:   staticDir,
		controllers: make(map[uuid.UUID]*PlaybackController),
	}
}

// Controller 取该用户的控制器，没有就建
func (m *PlayerManager) Controller(userID uuid.UUID) *PlaybackController {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.controllers[userID]; ok {
		return c
	}
	c := NewPlaybackController(userID, m.audio, m.sink, m.staticDir)
	m.controllers[userID] = c
	return c
}

// Dispatch 把 ws 上行的播放回执路由到对应控制器
func (m *PlayerManager) Dispatch(report models.PlaybackReport) {
	userID, err := uuid.Parse(report.UserID)
	if err != nil {
		return
	}

	m.mu.Lock()
	c, ok := m.controllers[userID]
	m.mu.Unlock()
	if !ok {
		return
	}

	switch report.Type {
	case models.ReportPlaybackStarted:
		c.OnPlaybackStarted()
	case models.ReportPlaybackEnded:
		c.OnPlaybackEnded()
	case models.ReportPlaybackError:
		c.OnPlaybackError()
	}
}
