package repositories

import (
	"errors"
	"quotes-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAlreadyFavorited 同一用户对同一 externalId 重复收藏
	ErrAlreadyFavorited = errors.New("已经收藏过这条名言")
	// ErrNotFound 目标不存在，或者不是这个用户的收藏（两种情况对外不区分）
	ErrNotFound = errors.New("收藏不存在")
)

type FavoriteRepository interface {
	EnsureUser(userID uuid.UUID) (*models.User, error)
	ListFavorites(userID uuid.UUID) ([]models.Quote, error)
	AddFavorite(userID uuid.UUID, externalID int64, content, author string) (*models.Quote, error)
	RemoveFavorite(userID uuid.UUID, quoteID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// EnsureUser 实现接口：用户行不存在就建一个空的
// 全系统只有这一处会懒创建 User，Load 和 Add 都走这里
func (r *favoriteRepository) EnsureUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.ensureUser(r.db, userID, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *favoriteRepository) ensureUser(tx *gorm.DB, userID uuid.UUID, user *models.User) error {
	err := tx.First(user, "id = ?", userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	// 懒创建：email 留空等注册流程补。username 占位成 uuid，避免撞唯一索引
	*user = models.User{
		Base:     models.Base{ID: userID},
		Username: userID.String(),
		Email:    "",
	}
	return tx.Create(user).Error
}

// ListFavorites 实现接口：查该用户的全部收藏，按收藏入库时间倒序
func (r *favoriteRepository) ListFavorites(userID uuid.UUID) ([]models.Quote, error) {
	var user models.User
	if err := r.ensureUser(r.db, userID, &user); err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, 0) // 即使为空也返回 [] 而不是 nil
	err := r.db.Model(&models.Quote{}).
		Joins("JOIN user_favorites uf ON uf.quote_id = quotes.id").
		Where("uf.user_id = ?", userID).
		Order("quotes.created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

// AddFavorite 实现接口：收藏一条名言
// 去重规则：(externalId, content, author) 三元组完全一致才算同一条，
// externalId 单独不可信（上游不保证唯一），命中就复用现有行，只加关联不建新行
func (r *favoriteRepository) AddFavorite(userID uuid.UUID, externalID int64, content, author string) (*models.Quote, error) {
	var quote models.Quote

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := r.ensureUser(tx, userID, &user); err != nil {
			return err
		}

		// 幂等保护：这个用户是否已经收藏过这个 externalId
		var existing models.Quote
		err := tx.Model(&models.Quote{}).
			Joins("JOIN user_favorites uf ON uf.quote_id = quotes.id").
			Where("uf.user_id = ? AND quotes.external_id = ?", userID, externalID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyFavorited
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 三元组匹配已有行；没有才新建。复用时内容字段一律不动
		err = tx.Where("external_id = ? AND content = ? AND author = ?", externalID, content, author).
			First(&quote).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			quote = models.Quote{
				ExternalID: externalID,
				Content:    content,
				Author:     author,
			}
			if err := tx.Create(&quote).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.Model(&quote).Association("Users").Append(&user)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// RemoveFavorite 实现接口：取消收藏
// 解除关联 -> 重新计数 -> 计数归零就删整行，全程一个事务并对 Quote 行加锁，
// 防止计数和删除之间有别的用户刚好收藏进来
func (r *favoriteRepository) RemoveFavorite(userID uuid.UUID, quoteID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		locked := tx
		// sqlite（测试用）不支持 FOR UPDATE，事务本身已经串行
		if tx.Dialector.Name() == "postgres" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var quote models.Quote
		if err := locked.First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// 归属校验：不是你的收藏 => 按不存在处理，不暴露别人收藏了什么
		var owned int64
		if err := tx.Table("user_favorites").
			Where("quote_id = ? AND user_id = ?", quoteID, userID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned == 0 {
			return ErrNotFound
		}

		if err := tx.Exec("DELETE FROM user_favorites WHERE quote_id = ? AND user_id = ?", quoteID, userID).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Table("user_favorites").
			Where("quote_id = ?", quoteID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			// 最后一个收藏者走了，整行回收，不留孤儿
			return tx.Delete(&models.Quote{}, quoteID).Error
		}
		return nil
	})
}
