package usecase

import (
	"context"

	"numatu/internal/domain/entity"
)

// PositionResult tells the reporting collector what the sample caused
type PositionResult struct {
	Arrived    bool               `json:"arrived"`
	Collection *entity.Collection `json:"collection,omitempty"`
}

// ProximityUsecase defines the use cases fed by collector positions
type ProximityUsecase interface {
	// ReportPosition handles one position sample and fires the automatic arrival when in range
	ReportPosition(ctx context.Context, sample entity.PositionSample) (*PositionResult, error)
}
