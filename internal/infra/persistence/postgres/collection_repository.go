package postgres

import (
	"context"
	"time"

	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/repository"
	"numatu/internal/errors"
	"numatu/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	orderOldestFirst = "requested_at ASC, id ASC"
	orderNewestFirst = "requested_at DESC, id DESC"
)

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a GORM-backed collection repository.
// It works against any dialect the *gorm.DB was opened with.
func NewCollectionRepository(db *gorm.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

// AutoMigrate creates or updates the collections table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.CollectionModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate collections table")
	}

	return nil
}

func (repo *collectionRepository) FindAll(ctx context.Context) ([]*entity.Collection, error) {
	return repo.find(ctx, repo.db.WithContext(ctx).Order(orderOldestFirst), "failed to list collections")
}

func (repo *collectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	var m model.CollectionModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCollectionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find collection by ID")
	}

	return toCollectionDomain(&m), nil
}

func (repo *collectionRepository) FindByStatus(ctx context.Context, statuses ...entity.CollectionStatus) ([]*entity.Collection, error) {
	query := repo.db.WithContext(ctx)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusValues(statuses))
	}

	return repo.find(ctx, query.Order(orderOldestFirst), "failed to find collections by status")
}

func (repo *collectionRepository) FindByGenerator(ctx context.Context, generatorID uuid.UUID) ([]*entity.Collection, error) {
	query := repo.db.WithContext(ctx).Where("generator_id = ?", generatorID).Order(orderNewestFirst)

	return repo.find(ctx, query, "failed to find collections by generator")
}

func (repo *collectionRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, statuses ...entity.CollectionStatus) ([]*entity.Collection, error) {
	query := repo.db.WithContext(ctx).Where("collector_id = ?", collectorID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusValues(statuses))
	}

	return repo.find(ctx, query.Order(orderNewestFirst), "failed to find collections by collector")
}

func (repo *collectionRepository) FindExpired(ctx context.Context, now time.Time) ([]*entity.Collection, error) {
	query := repo.db.WithContext(ctx).
		Where("status IN ?", statusValues([]entity.CollectionStatus{entity.StatusAccepted, entity.StatusEnRoute})).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now.UTC()).
		Order("expires_at ASC, id ASC")

	return repo.find(ctx, query, "failed to find expired collections")
}

func (repo *collectionRepository) Create(ctx context.Context, c *entity.Collection) error {
	m := fromCollectionDomain(c)
	m.Version = 1

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCollection
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create collection")
	}

	c.Version = 1

	return nil
}

func (repo *collectionRepository) Update(ctx context.Context, c *entity.Collection, expectedVersion int64) error {
	m := fromCollectionDomain(c)
	m.Version = expectedVersion + 1

	// Select("*") writes zero values too, so cleared pointers and codes reach the row.
	result := repo.db.WithContext(ctx).
		Model(&model.CollectionModel{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Select("*").
		Omit("id", "generator_id", "requested_at").
		Updates(m)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update collection")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.CollectionModel{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check collection existence")
		}
		if count == 0 {
			return repository.ErrCollectionNotFound
		}

		return repository.ErrStaleCollection
	}

	c.Version = m.Version

	return nil
}

func (repo *collectionRepository) find(ctx context.Context, query *gorm.DB, details string) ([]*entity.Collection, error) {
	var models []model.CollectionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, details)
	}

	collections := make([]*entity.Collection, 0, len(models))
	for i := range models {
		collections = append(collections, toCollectionDomain(&models[i]))
	}

	return collections, nil
}

func statusValues(statuses []entity.CollectionStatus) []string {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = s.String()
	}

	return values
}

// Mapper functions
func toCollectionDomain(m *model.CollectionModel) *entity.Collection {
	return &entity.Collection{
		ID:          m.ID,
		GeneratorID: m.GeneratorID,
		CollectorID: m.CollectorID,
		Status:      entity.CollectionStatus(m.Status),
		Material:    entity.Material(m.Material),
		Title:       m.Title,
		Description: m.Description,
		Notes:       m.Notes,
		Priority:    entity.Priority(m.Priority),
		WeightKg:    m.WeightKg,
		Location: entity.Location{
			Coordinates:  entity.Coordinates{Lat: m.Latitude, Lng: m.Longitude},
			Address:      m.Address,
			Neighborhood: m.Neighborhood,
			City:         m.City,
		},
		PhotoURLs:        m.PhotoURLs,
		ConfirmationCode: m.ConfirmationCode,
		RequestedAt:      m.RequestedAt.UTC(),
		AcceptedAt:       utcPtr(m.AcceptedAt),
		EnRouteAt:        utcPtr(m.EnRouteAt),
		ArrivedAt:        utcPtr(m.ArrivedAt),
		CompletedAt:      utcPtr(m.CompletedAt),
		CancelledAt:      utcPtr(m.CancelledAt),
		ExpiresAt:        utcPtr(m.ExpiresAt),
		UpdatedAt:        m.UpdatedAt.UTC(),
		Version:          m.Version,
	}
}

func fromCollectionDomain(c *entity.Collection) *model.CollectionModel {
	return &model.CollectionModel{
		ID:               c.ID,
		GeneratorID:      c.GeneratorID,
		CollectorID:      c.CollectorID,
		Status:           c.Status.String(),
		Material:         c.Material.String(),
		Title:            c.Title,
		Description:      c.Description,
		Notes:            c.Notes,
		Priority:         string(c.Priority),
		WeightKg:         c.WeightKg,
		Latitude:         c.Location.Lat,
		Longitude:        c.Location.Lng,
		Address:          c.Location.Address,
		Neighborhood:     c.Location.Neighborhood,
		City:             c.Location.City,
		PhotoURLs:        c.PhotoURLs,
		ConfirmationCode: c.ConfirmationCode,
		RequestedAt:      c.RequestedAt.UTC(),
		AcceptedAt:       utcPtr(c.AcceptedAt),
		EnRouteAt:        utcPtr(c.EnRouteAt),
		ArrivedAt:        utcPtr(c.ArrivedAt),
		CompletedAt:      utcPtr(c.CompletedAt),
		CancelledAt:      utcPtr(c.CancelledAt),
		ExpiresAt:        utcPtr(c.ExpiresAt),
		UpdatedAt:        c.UpdatedAt.UTC(),
		Version:          c.Version,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()

	return &v
}
