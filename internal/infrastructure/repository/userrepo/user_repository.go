package userrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/infrastructure/database"
	"jan-server/services/messaging-api/internal/infrastructure/database/entities"
	"jan-server/services/messaging-api/internal/infrastructure/database/transaction"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) Create(ctx context.Context, u *user.User) error {
	err := repo.db.GetTx(ctx).Create(entities.NewSchemaUser(u)).Error
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict,
			"Username already exists: "+u.Username,
			err,
			"d4e0f6a2-5b7c-4d91-8e3f-9a0b1c2d3e43",
		)
	}
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeDatabaseError,
		"failed to create user",
		err,
		"e5f1a7b3-6c8d-4ea2-9f40-0b1c2d3e4f54",
	)
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var entity entities.User
	err := repo.db.GetTx(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by ID",
			err,
			"f6a2b8c4-7d9e-4fb3-a051-1c2d3e4f5a65",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var entity entities.User
	err := repo.db.GetTx(ctx).
		Where("username = ?", username).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by username",
			err,
			"a7b3c9d5-8e0f-4ac4-b162-2d3e4f5a6b76",
		)
	}
	return entity.EtoD(), nil
}

// List returns users in registration order.
func (repo *UserGormRepository) List(ctx context.Context, pagination query.Pagination) ([]*user.User, error) {
	var rows []entities.User
	err := repo.db.GetTx(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Size).
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list users",
			err,
			"b8c4d0e6-9f1a-4bd5-8273-3e4f5a6b7c87",
		)
	}
	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].EtoD())
	}
	return users, nil
}

func (repo *UserGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.GetTx(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count users",
			err,
			"c9d5e1f7-0a2b-4ce6-9384-4f5a6b7c8d98",
		)
	}
	return count, nil
}
