package models

// WSMessage 推给客户端的统一包装
type WSMessage struct {
	Type string      `json:"type"` // 例如 "PLAYBACK_PLAY"
	Data interface{} `json:"data,omitempty"`
}

// PlayEventData 单次播放指令：客户端收到后去拉 AudioURL 并播放
type PlayEventData struct {
	UserID   string `json:"user_id"`
	AudioURL string `json:"audio_url"`
	Text     string `json:"text"`
	Voice    string `json:"voice"`
}

// PlaybackReport 客户端上行：播放真正开始/结束/出错时上报
// 控制器只有收到 started 才进入 Playing，避免界面先于声音变状态
type PlaybackReport struct {
	Type   string `json:"type"` // PLAYBACK_STARTED / PLAYBACK_ENDED / PLAYBACK_ERROR
	UserID string `json:"user_id"`
}

const (
	WSPlaybackPlay = "PLAYBACK_PLAY"
	WSPlaybackStop = "PLAYBACK_STOP"

	ReportPlaybackStarted = "PLAYBACK_STARTED"
	ReportPlaybackEnded   = "PLAYBACK_ENDED"
	ReportPlaybackError   = "PLAYBACK_ERROR"
)
