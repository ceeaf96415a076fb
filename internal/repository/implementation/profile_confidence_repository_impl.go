package implementation

import (
	"context"
	"errors"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/mapper"
	"ai-profiling-be/internal/model"
	"ai-profiling-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileConfidenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RefinementMapper
}

func NewProfileConfidenceRepository(db *gorm.DB) contract.ProfileConfidenceRepository {
	return &ProfileConfidenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewRefinementMapper(),
	}
}

func (r *ProfileConfidenceRepositoryImpl) Get(ctx context.Context, userId uuid.UUID) (*entity.ProfileConfidence, error) {
	var m model.ProfileConfidence
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConfidenceToEntity(&m), nil
}

func (r *ProfileConfidenceRepositoryImpl) Save(ctx context.Context, userId uuid.UUID, score int) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO profile_confidences (id, user_id, score, updated_at)
		VALUES (?, ?, ?, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()
	`, uuid.New(), userId, score).Error
}
