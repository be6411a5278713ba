package models

type User struct {
	Base
	Username string  `gorm:"uniqueIndex;not null" json:"username"`
	Password string  `gorm:"not null" json:"-"` // json:"-" 确保密码不会被返回给前端
	Email    string  `json:"email"`             // 懒创建的用户可能为空，等客户端补录
	Quotes   []Quote `gorm:"many2many:user_favorites;" json:"-"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email"`
}
