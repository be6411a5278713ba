package models

import "time"

// Quote 共享名言库：同一条名言被多个用户收藏时只存一行
// 不变量：行存在 => 至少被一个用户收藏，最后一个用户取消收藏时整行删除
type Quote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID int64     `gorm:"index" json:"externalId"` // 上游接口给的 ID，不保证全局唯一
	Content    string    `gorm:"type:text;not null" json:"content"`
	Author     string    `gorm:"not null" json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
	Users      []User    `gorm:"many2many:user_favorites;" json:"-"`
}

// RandomQuote 上游随机名言接口的返回结构（dummyjson 风格）
type RandomQuote struct {
	ID     int64  `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type AddFavoriteReq struct {
	ExternalID int64  `json:"externalId"`
	Content    string `json:"content" binding:"required"`
	Author     string `json:"author" binding:"required"`
}

type TTSReq struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"` // 空则用默认音色
}

// PlaybackToggleReq 播放开关：正在播就停，空闲就合成并播
type PlaybackToggleReq struct {
	Quote *RandomQuote `json:"quote"`
	Voice string       `json:"voice"`
}
