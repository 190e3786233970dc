package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/careslot/appointment-service/internal/cache"
	"github.com/careslot/appointment-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
	cacheHelper *cache.CacheHelper

	user         repositories.UserRepository
	appointment  repositories.AppointmentRepository
	notification repositories.NotificationRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository manager with all
// sub-repositories wired to one gorm handle.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheHelper := cache.NewCacheHelper(config.RedisClient, "appointment-service:")

	return &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheHelper:  cacheHelper,
		user:         NewUserPostgreSQL(config.DB, cacheHelper),
		appointment:  NewAppointmentPostgreSQL(config.DB),
		notification: NewNotificationPostgreSQL(config.DB, cacheHelper),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Appointment() repositories.AppointmentRepository {
	return r.appointment
}

func (r *PostgreSQLRepository) Notification() repositories.NotificationRepository {
	return r.notification
}

// WithTransaction runs fn against a repository bound to one transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheHelper:  r.cacheHelper,
			user:         NewUserPostgreSQL(tx, r.cacheHelper),
			appointment:  NewAppointmentPostgreSQL(tx),
			notification: NewNotificationPostgreSQL(tx, r.cacheHelper),
		}
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
