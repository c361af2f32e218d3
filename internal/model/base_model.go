package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 各实体共用的主键、时间戳与软删除字段
type BaseModel struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
