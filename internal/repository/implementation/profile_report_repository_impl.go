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

type ProfileReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RefinementMapper
}

func NewProfileReportRepository(db *gorm.DB) contract.ProfileReportRepository {
	return &ProfileReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewRefinementMapper(),
	}
}

func (r *ProfileReportRepositoryImpl) Upsert(ctx context.Context, report *entity.ProfileReport) error {
	m := r.mapper.ReportToModel(report)
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO profile_reports (id, user_id, content, stale, generated_at)
		VALUES (?, ?, ?, false, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET content = EXCLUDED.content, stale = false, generated_at = NOW()
	`, m.Id, m.UserId, m.Content).Error
}

func (r *ProfileReportRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.ProfileReport, error) {
	var m model.ProfileReport
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReportToEntity(&m), nil
}

func (r *ProfileReportRepositoryImpl) MarkStale(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ProfileReport{}).
		Where("user_id = ?", userId).
		Update("stale", true).Error
}
