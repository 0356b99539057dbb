package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/repomanager"
)

type HospitalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHospitalService(db *sql.DB, m repomanager.RepositoryManager) *HospitalService {
	return &HospitalService{db: db, repomanager: m}
}

func (s *HospitalService) List(ctx context.Context) ([]*models.Hospital, error) {
	items, err := s.repomanager.Hospitals(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list hospitals: %v", common.ErrorInternal, err)
	}
	return items, nil
}

func (s *HospitalService) Get(ctx context.Context, id int64) (*models.Hospital, error) {
	h, err := s.repomanager.Hospitals(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get hospital: %v", common.ErrorInternal, err)
	}
	return h, nil
}
