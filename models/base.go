package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 模型：UUID 主键 + 时间戳，目前只有 User 用
// Quote 不嵌入它：对外删除接口走数字 ID，而且必须硬删（见 repositories.RemoveFavorite）
type Base struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate 钩子：创建前自动生成 UUID
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
