package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/careslot/appointment-service/internal/cache"
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
)

type userPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewUserPostgreSQL(db *gorm.DB, cacheHelper *cache.CacheHelper) repositories.UserRepository {
	return &userPostgreSQL{db: db, cache: cacheHelper}
}

const doctorListCacheKey = "all"

func (r *userPostgreSQL) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	if user.Role == models.RoleDoctor {
		_ = r.cache.Delete(ctx, cache.DoctorListCacheConfig, doctorListCacheKey)
	}
	return nil
}

func (r *userPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPostgreSQL) Update(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	if user.Role == models.RoleDoctor {
		_ = r.cache.Delete(ctx, cache.DoctorListCacheConfig, doctorListCacheKey)
	}
	return nil
}

func (r *userPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *userPostgreSQL) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&count).Error
	return count > 0, err
}

func (r *userPostgreSQL) ListDoctors(ctx context.Context) ([]*models.User, error) {
	var cached []*models.User
	if err := r.cache.Get(ctx, cache.DoctorListCacheConfig, doctorListCacheKey, &cached); err == nil {
		return cached, nil
	}

	var doctors []*models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", models.RoleDoctor).
		Order("last_name, first_name").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, cache.DoctorListCacheConfig, doctorListCacheKey, doctors)
	return doctors, nil
}
