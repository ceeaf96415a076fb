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

type IntakeProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeProfileRepository(db *gorm.DB) contract.IntakeProfileRepository {
	return &IntakeProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.IntakeProfile) error {
	m := r.mapper.ProfileToModel(profile)
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO intake_profiles (id, user_id, tone, goals, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET tone = EXCLUDED.tone, goals = EXCLUDED.goals, updated_at = NOW()
	`, m.Id, m.UserId, m.Tone, m.Goals).Error
}

func (r *IntakeProfileRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.IntakeProfile, error) {
	var m model.IntakeProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToEntity(&m), nil
}
