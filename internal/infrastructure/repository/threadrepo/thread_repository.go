package threadrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/infrastructure/database"
	"jan-server/services/messaging-api/internal/infrastructure/database/entities"
	"jan-server/services/messaging-api/internal/infrastructure/database/transaction"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

type ThreadGormRepository struct {
	db *transaction.Database
}

var _ thread.Repository = (*ThreadGormRepository)(nil)

func NewThreadGormRepository(db *transaction.Database) *ThreadGormRepository {
	return &ThreadGormRepository{db: db}
}

// Create inserts the thread row and its participant rows. Callers run it inside a transaction.
func (repo *ThreadGormRepository) Create(ctx context.Context, t *thread.Thread) error {
	entity := entities.NewSchemaThread(t)
	tx := repo.db.GetTx(ctx)

	if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"Direct thread already exists",
				err,
				"d0e6f2a8-1b3c-4df7-a495-5a6b7c8d9ea9",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create thread",
			err,
			"e1f7a3b9-2c4d-4e08-b5a6-6b7c8d9e0fba",
		)
	}

	if err := repo.db.GetTx(ctx).Create(&entity.Participants).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to add thread participants",
			err,
			"f2a8b4c0-3d5e-4f19-86b7-7c8d9e0f1acb",
		)
	}
	return nil
}

func (repo *ThreadGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*thread.Thread, error) {
	return repo.findOne(ctx, "failed to find thread by ID", "a3b9c5d1-4e6f-4a2a-97c8-8d9e0f1a2bdc", "id = ?", id)
}

func (repo *ThreadGormRepository) FindDirectByKey(ctx context.Context, directKey string) (*thread.Thread, error) {
	return repo.findOne(ctx, "failed to find direct thread", "b4c0d6e2-5f7a-4b3b-a8d9-9e0f1a2b3ced", "direct_key = ?", directKey)
}

func (repo *ThreadGormRepository) findOne(ctx context.Context, message, errID string, where string, args ...any) (*thread.Thread, error) {
	var entity entities.Thread
	err := repo.db.GetTx(ctx).
		Preload("Participants").
		Where(where, args...).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, message, err, errID)
	}
	return entity.EtoD(), nil
}

// FindByParticipant lists the user's threads, most recently updated first.
func (repo *ThreadGormRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, pagination query.Pagination) ([]*thread.Thread, error) {
	var rows []entities.Thread
	err := repo.db.GetTx(ctx).
		Preload("Participants").
		Where("id IN (?)", repo.participantThreadIDs(ctx, userID)).
		Order("updated_at DESC").
		Order("created_at DESC").
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
			"failed to list threads for user",
			err,
			"c5d1e7f3-6a8b-4c4c-b9ea-0f1a2b3c4dfe",
		)
	}
	threads := make([]*thread.Thread, 0, len(rows))
	for i := range rows {
		threads = append(threads, rows[i].EtoD())
	}
	return threads, nil
}

func (repo *ThreadGormRepository) CountByParticipant(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.GetTx(ctx).
		Model(&entities.ThreadParticipant{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count threads for user",
			err,
			"d6e2f8a4-7b9c-4d5d-8afb-1a2b3c4d5e0f",
		)
	}
	return count, nil
}

// Touch moves updated_at forward to at; a later stored value wins.
func (repo *ThreadGormRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.GetTx(ctx).
		Model(&entities.Thread{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("GREATEST(updated_at, ?)", at))
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to touch thread",
			result.Error,
			"e7f3a9b5-8c0d-4e6e-9b0c-2b3c4d5e6f10",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"Thread not found",
			nil,
			"f8a4b0c6-9d1e-4f7f-8c1d-3c4d5e6f7a21",
		)
	}
	return nil
}

func (repo *ThreadGormRepository) participantThreadIDs(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return repo.db.GetTx(ctx).
		Model(&entities.ThreadParticipant{}).
		Select("thread_id").
		Where("user_id = ?", userID)
}
