package handlers

import (
	"quotes-backend/conf"
	"quotes-backend/models"
	"quotes-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB  *gorm.DB
	cfg conf.AuthConfig
}

func NewAuthHandler(DB *gorm.DB, cfg conf.AuthConfig) *AuthHandler {
	return &AuthHandler{DB: DB, cfg: cfg}
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数校验失败"})
		return
	}

	// 密码哈希
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	user := models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(500, gin.H{"error": "用户名已存在或注册失败"})
		return
	}

	c.JSON(200, gin.H{"message": "注册成功"})
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "输入不合法"})
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(401, gin.H{"error": "用户不存在"})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(401, gin.H{"error": "密码错误"})
		return
	}

	// 签发 Token
	token, _ := utils.GenerateToken(user.ID, h.cfg)
	c.JSON(200, gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
	})
}
