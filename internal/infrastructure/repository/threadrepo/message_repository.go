package threadrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/infrastructure/database/entities"
	"jan-server/services/messaging-api/internal/infrastructure/database/transaction"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

type MessageGormRepository struct {
	db *transaction.Database
}

var _ thread.MessageRepository = (*MessageGormRepository)(nil)

func NewMessageGormRepository(db *transaction.Database) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (repo *MessageGormRepository) Create(ctx context.Context, m *thread.Message) error {
	if err := repo.db.GetTx(ctx).Create(entities.NewSchemaMessage(m)).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"a9b5c1d7-0e2f-4a8a-9d2e-4d5e6f7a8b32",
		)
	}
	return nil
}

func (repo *MessageGormRepository) FindByIDAndThread(ctx context.Context, threadID, messageID uuid.UUID) (*thread.Message, error) {
	var entity entities.Message
	err := repo.db.GetTx(ctx).
		Where("id = ? AND thread_id = ?", messageID, threadID).
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
			"failed to find message",
			err,
			"b0c6d2e8-1f3a-4b9b-8e3f-5e6f7a8b9c43",
		)
	}
	return entity.EtoD(), nil
}

// FindByThread lists messages oldest first; seq breaks timestamp ties.
func (repo *MessageGormRepository) FindByThread(ctx context.Context, threadID uuid.UUID, pagination query.Pagination) ([]*thread.Message, error) {
	var rows []entities.Message
	err := repo.db.GetTx(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Order("seq ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Size).
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"c1d7e3f9-2a4b-4cac-9f40-6f7a8b9c0d54",
		)
	}
	messages := make([]*thread.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].EtoD())
	}
	return messages, nil
}

func (repo *MessageGormRepository) CountByThread(ctx context.Context, threadID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.GetTx(ctx).
		Model(&entities.Message{}).
		Where("thread_id = ?", threadID).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count messages",
			err,
			"d2e8f4a0-3b5c-4dbd-8051-7a8b9c0d1e65",
		)
	}
	return count, nil
}
