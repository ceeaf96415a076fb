package unitofwork

import (
	"context"
	"fmt"

	"ai-profiling-be/internal/repository/contract"
	"ai-profiling-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) IntakeAnswerRepository() contract.IntakeAnswerRepository {
	return implementation.NewIntakeAnswerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) IntakeProfileRepository() contract.IntakeProfileRepository {
	return implementation.NewIntakeProfileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FollowUpAnswerRepository() contract.FollowUpAnswerRepository {
	return implementation.NewFollowUpAnswerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProfileConfidenceRepository() contract.ProfileConfidenceRepository {
	return implementation.NewProfileConfidenceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProfileReportRepository() contract.ProfileReportRepository {
	return implementation.NewProfileReportRepository(u.getDB())
}
