package repository

import (
	"errors"

	"rawabit/internal/database"
	"rawabit/internal/models"

	"gorm.io/gorm"
)

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// wrapErr converts gorm.ErrRecordNotFound into a not-found AppError and
// anything else into an internal error.
func wrapErr(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

func asInternal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}

func paginate(db *gorm.DB, page models.PageRequest) *gorm.DB {
	return db.Limit(page.Limit).Offset(page.Offset())
}
