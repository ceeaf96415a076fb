package implementation

import (
	"context"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/mapper"
	"ai-profiling-be/internal/model"
	"ai-profiling-be/internal/repository/contract"
	"ai-profiling-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowUpAnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RefinementMapper
}

func NewFollowUpAnswerRepository(db *gorm.DB) contract.FollowUpAnswerRepository {
	return &FollowUpAnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewRefinementMapper(),
	}
}

func (r *FollowUpAnswerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert relies on the unique index over (user_id, question_id): re-answering
// the same question rewrites the text in place, never producing a second row.
func (r *FollowUpAnswerRepositoryImpl) Upsert(ctx context.Context, answer *entity.FollowUpAnswer) error {
	m := r.mapper.FollowUpAnswerToModel(answer)
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO follow_up_answers (id, user_id, question_id, question_text, answer_text, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, question_id)
		DO UPDATE SET answer_text = EXCLUDED.answer_text, updated_at = NOW()
	`, m.Id, m.UserId, m.QuestionId, m.QuestionText, m.AnswerText, m.Category).Error
}

func (r *FollowUpAnswerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FollowUpAnswer, error) {
	var models []*model.FollowUpAnswer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.FollowUpAnswersToEntities(models), nil
}

func (r *FollowUpAnswerRepositoryImpl) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FollowUpAnswer{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count, err
}

func (r *FollowUpAnswerRepositoryImpl) Categories(ctx context.Context, userId uuid.UUID) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.FollowUpAnswer{}).
		Distinct("category").
		Where("user_id = ?", userId).
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
