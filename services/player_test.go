package services

import (
	"context"
	"errors"
	"quotes-backend/models"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeAudio struct {
	calls int32
	gate  chan struct{} // 非 nil 时 GenerateAudio 会卡住等放行
	err   error
}

func (f *fakeAudio) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3-bytes"), nil
}

func (f *fakeAudio) GenerateAudio(ctx context.Context, text string, identifier string, voice string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return "", f.err
	}
	return "/static/audio/" + identifier + ".mp3", nil
}

type fakeSink struct {
	plays int32
	stops int32
	err   error
}

func (f *fakeSink) Play(event models.PlayEventData) error {
	if f.err != nil {
		return f.err
	}
	atomic.AddInt32(&f.plays, 1)
	return nil
}

func (f *fakeSink) Stop(userID string) {
	atomic.AddInt32(&f.stops, 1)
}

func waitForState(t *testing.T, c *PlaybackController, want PlayState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("等状态 %v 超时, 当前 %v", want, c.State())
}

func testQuote() *models.RandomQuote {
	return &models.RandomQuote{ID: 1, Quote: "Stay hungry", Author: "Jobs"}
}

// 正常一圈：Idle -> Requesting -> (started) Playing -> (toggle) Idle
func TestToggleFullCycle(t *testing.T) {
	audio := &fakeAudio{}
	sink := &fakeSink{}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	state, err := c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	if err != nil {
		t.Fatalf("Toggle 失败: %v", err)
	}
	if state != StateRequesting {
		t.Fatalf("下发播放指令后应该还在 requesting, got %v", state)
	}
	if c.resource == nil {
		t.Fatal("应该持有一个播放句柄")
	}

	// 字节到手不算播，客户端回执 started 才算
	c.OnPlaybackStarted()
	if c.State() != StatePlaying {
		t.Fatalf("收到 started 回执后应该是 playing, got %v", c.State())
	}

	// 播放中再点一下：立即停，不发网络请求
	state, err = c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	if err != nil || state != StateIdle {
		t.Fatalf("播放中 Toggle 应该直接停, got %v %v", state, err)
	}
	if n := atomic.LoadInt32(&audio.calls); n != 1 {
		t.Fatalf("停止不应该再发合成请求, got %d", n)
	}
	if atomic.LoadInt32(&sink.stops) != 1 {
		t.Fatal("应该给客户端发了停止指令")
	}
	if c.resource != nil {
		t.Fatal("停止后句柄应该已经释放置空")
	}
}

// 请求在路上时重复点击被忽略：只发出一个合成请求
func TestToggleWhileRequestingIgnored(t *testing.T) {
	audio := &fakeAudio{gate: make(chan struct{})}
	sink := &fakeSink{}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	}()
	waitForState(t, c, StateRequesting)

	// 第二次点击：应该是无操作
	state, err := c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	if err != nil {
		t.Fatalf("重入 Toggle 不应该报错: %v", err)
	}
	if state != StateRequesting {
		t.Fatalf("重入 Toggle 应该原样返回 requesting, got %v", state)
	}

	close(audio.gate)
	<-done

	if n := atomic.LoadInt32(&audio.calls); n != 1 {
		t.Fatalf("应该只发出一个合成请求, got %d", n)
	}
	if n := atomic.LoadInt32(&sink.plays); n != 1 {
		t.Fatalf("应该只下发一次播放指令, got %d", n)
	}
}

// 合成失败：确定性回到 Idle，不能卡在 Requesting
func TestSynthFailureReturnsToIdle(t *testing.T) {
	audio := &fakeAudio{err: errors.New("上游 500")}
	sink := &fakeSink{}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	state, err := c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	if err == nil {
		t.Fatal("合成失败应该返回错误")
	}
	if state != StateIdle || c.State() != StateIdle {
		t.Fatalf("失败后必须回 idle, got %v", c.State())
	}
	if atomic.LoadInt32(&sink.plays) != 0 {
		t.Fatal("失败时不应该下发播放指令")
	}
	if c.resource != nil {
		t.Fatal("失败时不应该残留句柄")
	}
}

// 下发播放指令失败：句柄释放，回 Idle
func TestSinkFailureReleasesHandle(t *testing.T) {
	audio := &fakeAudio{}
	sink := &fakeSink{err: errors.New("hub 不可用")}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	state, err := c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	if err == nil || state != StateIdle {
		t.Fatalf("下发失败应该报错并回 idle, got %v %v", state, err)
	}
	if c.resource != nil {
		t.Fatal("下发失败后句柄应该已释放置空")
	}
}

// 自然播完：回 Idle、句柄释放，但不给客户端发停止指令
func TestNaturalEndReleasesHandle(t *testing.T) {
	audio := &fakeAudio{}
	sink := &fakeSink{}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	c.OnPlaybackStarted()

	res := c.resource
	c.OnPlaybackEnded()

	if c.State() != StateIdle {
		t.Fatalf("播完应该回 idle, got %v", c.State())
	}
	if !res.Released() {
		t.Fatal("播完后句柄应该已释放")
	}
	if c.resource != nil {
		t.Fatal("播完后不应该还持有句柄")
	}
	if atomic.LoadInt32(&sink.stops) != 0 {
		t.Fatal("自然播完不应该下发停止指令")
	}
}

// 客户端播放出错：无论什么状态都回 Idle 并释放句柄
func TestPlaybackErrorReport(t *testing.T) {
	audio := &fakeAudio{}
	sink := &fakeSink{}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	res := c.resource

	c.OnPlaybackError()
	if c.State() != StateIdle {
		t.Fatalf("出错后应该回 idle, got %v", c.State())
	}
	if !res.Released() {
		t.Fatal("出错后句柄应该已释放")
	}
}

// 任何时刻最多一个句柄：新会话开始前旧句柄必须先释放
func TestAtMostOneHandle(t *testing.T) {
	audio := &fakeAudio{}
	sink := &fakeSink{}
	c := NewPlaybackController(uuid.New(), audio, sink, t.TempDir())

	c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	c.OnPlaybackStarted()
	first := c.resource

	// 停掉再开新的
	c.Toggle(context.Background(), testQuote(), models.VoiceRachel)
	c.Toggle(context.Background(), &models.RandomQuote{ID: 2, Quote: "Less is more", Author: "Rohe"}, models.VoiceDrew)

	if !first.Released() {
		t.Fatal("旧句柄应该在新会话前释放")
	}
	if c.resource == nil || c.resource == first {
		t.Fatal("应该持有一个新的句柄")
	}
}

// 空闲时没名言可播
func TestToggleWithoutQuote(t *testing.T) {
	c := NewPlaybackController(uuid.New(), &fakeAudio{}, &fakeSink{}, t.TempDir())

	_, err := c.Toggle(context.Background(), nil, models.VoiceRachel)
	if !errors.Is(err, ErrNoQuote) {
		t.Fatalf("应该报 ErrNoQuote, got %v", err)
	}
}

// Release 幂等：多次调用只生效一次
func TestResourceReleaseIdempotent(t *testing.T) {
	r := &PlayableResource{Path: "x", URL: "/static/audio/x.mp3"}
	r.Release()
	r.Release()
	if !r.Released() {
		t.Fatal("句柄应该处于已释放状态")
	}
}

// 回执路由：按 user_id 送到对的控制器，不认识的直接丢弃
func TestManagerDispatch(t *testing.T) {
	manager := NewPlayerManager(&fakeAudio{}, &fakeSink{}, t.TempDir())
	userID := uuid.New()

	c := manager.Controller(userID)
	if manager.Controller(userID) != c {
		t.Fatal("同一用户应该拿到同一个控制器")
	}

	c.Toggle(context.Background(), testQuote(), models.VoiceRachel)

	// 别人的回执不影响这个会话
	manager.Dispatch(models.PlaybackReport{Type: models.ReportPlaybackStarted, UserID: uuid.New().String()})
	if c.State() != StateRequesting {
		t.Fatalf("别人的回执不该动到状态, got %v", c.State())
	}

	manager.Dispatch(models.PlaybackReport{Type: models.ReportPlaybackStarted, UserID: userID.String()})
	if c.State() != StatePlaying {
		t.Fatalf("started 回执应该把状态推到 playing, got %v", c.State())
	}

	manager.Dispatch(models.PlaybackReport{Type: models.ReportPlaybackEnded, UserID: userID.String()})
	if c.State() != StateIdle {
		t.Fatalf("ended 回执应该回 idle, got %v", c.State())
	}

	// 非法 user_id 不炸
	manager.Dispatch(models.PlaybackReport{Type: models.ReportPlaybackStarted, UserID: "not-a-uuid"})
}
