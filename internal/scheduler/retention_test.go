package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestRetentionService_RunRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)

	service := &RetentionService{
		datasetRepo: mockDatasetRepo,
		vendaRepo:   mockVendaRepo,
		config:      RetentionConfig{Days: 365, Enabled: true},
	}

	expirados := []*domain.Dataset{
		{ID: "ds1", UserID: 1},
		{ID: "ds2", UserID: 2},
	}

	mockDatasetRepo.EXPECT().ListOlderThan(365).Return(expirados, nil)

	mockVendaRepo.EXPECT().DeleteByDataset("ds1").Return(int64(100), nil)
	mockDatasetRepo.EXPECT().Delete("ds1").Return(nil)

	// Falha em um dataset não interrompe a varredura dos demais.
	mockVendaRepo.EXPECT().DeleteByDataset("ds2").Return(int64(0), errors.New("timeout"))

	err := service.RunRetention()

	assert.NoError(t, err)

	status := service.Status()
	assert.Equal(t, false, status["running"])
	assert.NotEmpty(t, status["last_started_at"])
	assert.NotEmpty(t, status["last_completed_at"])
}

func TestRetentionService_RunRetention_SemExpirados(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)

	service := &RetentionService{
		datasetRepo: mockDatasetRepo,
		vendaRepo:   mockVendaRepo,
		config:      RetentionConfig{Days: 30},
	}

	mockDatasetRepo.EXPECT().ListOlderThan(30).Return([]*domain.Dataset{}, nil)

	assert.NoError(t, service.RunRetention())
}

func TestRetentionService_RunRetention_ErroAoListar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)

	service := &RetentionService{
		datasetRepo: mockDatasetRepo,
		vendaRepo:   mockVendaRepo,
		config:      RetentionConfig{Days: 30},
	}

	falha := errors.New("conexão perdida")
	mockDatasetRepo.EXPECT().ListOlderThan(30).Return(nil, falha)

	assert.ErrorIs(t, service.RunRetention(), falha)
}
