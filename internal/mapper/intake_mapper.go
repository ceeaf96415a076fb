package mapper

import (
	"encoding/json"
	"time"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/model"

	"gorm.io/datatypes"
)

type IntakeMapper struct{}

func NewIntakeMapper() *IntakeMapper {
	return &IntakeMapper{}
}

func (m *IntakeMapper) AnswerToEntity(a *model.IntakeAnswer) *entity.IntakeAnswer {
	if a == nil {
		return nil
	}
	return &entity.IntakeAnswer{
		Id:             a.Id,
		UserId:         a.UserId,
		QuestionText:   a.QuestionText,
		AnswerText:     a.AnswerText,
		DerivedInsight: a.DerivedInsight,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *IntakeMapper) AnswerToModel(a *entity.IntakeAnswer) *model.IntakeAnswer {
	if a == nil {
		return nil
	}
	return &model.IntakeAnswer{
		Id:             a.Id,
		UserId:         a.UserId,
		QuestionText:   a.QuestionText,
		AnswerText:     a.AnswerText,
		DerivedInsight: a.DerivedInsight,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *IntakeMapper) AnswersToEntities(models []*model.IntakeAnswer) []*entity.IntakeAnswer {
	entities := make([]*entity.IntakeAnswer, 0, len(models))
	for _, a := range models {
		entities = append(entities, m.AnswerToEntity(a))
	}
	return entities
}

func (m *IntakeMapper) ProfileToEntity(p *model.IntakeProfile) *entity.IntakeProfile {
	if p == nil {
		return nil
	}

	var goals []string
	if len(p.Goals) > 0 {
		// Malformed rows degrade to no goals rather than failing the read
		_ = json.Unmarshal(p.Goals, &goals)
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.IntakeProfile{
		Id:        p.Id,
		UserId:    p.UserId,
		Tone:      p.Tone,
		Goals:     goals,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *IntakeMapper) ProfileToModel(p *entity.IntakeProfile) *model.IntakeProfile {
	if p == nil {
		return nil
	}

	goals, _ := json.Marshal(p.Goals)

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.IntakeProfile{
		Id:        p.Id,
		UserId:    p.UserId,
		Tone:      p.Tone,
		Goals:     datatypes.JSON(goals),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
