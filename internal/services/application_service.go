package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobtracker/internal/dtos"
	"jobtracker/internal/models"
	"jobtracker/internal/query"
)

// ErrNotFound covers both a missing record and a record owned by another
// user. The two are deliberately indistinguishable so ids cannot be
// probed for existence.
var ErrNotFound = errors.New("application not found")

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// List returns the user's applications filtered and ordered per p.
func (s *ApplicationService) List(ctx context.Context, userID uint, p query.Params) ([]models.Application, error) {
	apps := []models.Application{}
	err := p.Apply(s.DB.WithContext(ctx), userID).Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) Get(ctx context.Context, userID, id uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) Create(ctx context.Context, userID uint, req dtos.ApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		UserID:      userID,
		Company:     req.Company,
		Title:       req.Title,
		URL:         req.URL,
		Status:      req.Status,
		AppliedDate: req.AppliedAt(),
		Notes:       req.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Update replaces every mutable field of the record. The ownership check
// is folded into the WHERE clause, so a foreign id reports not-found.
func (s *ApplicationService) Update(ctx context.Context, userID, id uint, req dtos.ApplicationRequest) (*models.Application, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"company":      req.Company,
			"title":        req.Title,
			"url":          req.URL,
			"status":       req.Status,
			"applied_date": req.AppliedAt(),
			"notes":        req.Notes,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id uint) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
