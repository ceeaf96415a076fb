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

type IntakeAnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeAnswerRepository(db *gorm.DB) contract.IntakeAnswerRepository {
	return &IntakeAnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeAnswerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeAnswerRepositoryImpl) Create(ctx context.Context, answer *entity.IntakeAnswer) error {
	m := r.mapper.AnswerToModel(answer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*answer = *r.mapper.AnswerToEntity(m)
	return nil
}

func (r *IntakeAnswerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeAnswer, error) {
	var models []*model.IntakeAnswer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.AnswersToEntities(models), nil
}

func (r *IntakeAnswerRepositoryImpl) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.IntakeAnswer{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count, err
}
