package ingesting

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const csvExemplo = `Data;Produto;Qtd;Valor Total (R$)
15/03/2024;Notebook;2;7000,00
16/03/2024;Mouse;5;250,00
;;;
17/03/2024;Teclado;1;150,00`

func TestService_IngestFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)

	var salvo *domain.Dataset
	mockDatasetRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(dataset *domain.Dataset) error {
			salvo = dataset
			return nil
		})

	var inseridas []domain.Venda
	mockVendaRepo.EXPECT().
		InsertBatch(7, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ int, _ string, vendas []domain.Venda) error {
			inseridas = vendas
			return nil
		})

	service := NewService(mockVendaRepo, mockDatasetRepo)

	dataset, err := service.IngestFile(7, "vendas_marco.csv", strings.NewReader(csvExemplo))

	assert.NoError(t, err)
	assert.Equal(t, salvo, dataset)
	assert.Equal(t, 7, dataset.UserID)
	assert.Equal(t, "vendas_marco.csv", dataset.NomeArquivo)

	// A linha totalmente vazia é descartada.
	assert.Equal(t, 3, dataset.TotalLinhas)
	assert.Zero(t, dataset.LinhasComErro)

	assert.Len(t, inseridas, 3)
	assert.Equal(t, "2024-03-15", inseridas[0].Data)
	assert.Equal(t, "Notebook", inseridas[0].Produto)
	assert.Equal(t, 2, inseridas[0].Quantidade)
	assert.Equal(t, 7000.0, inseridas[0].Receita)
}

func TestService_IngestFile_ExtensaoNaoSuportada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockVendaRepository(ctrl), mocks.NewMockDatasetRepository(ctrl))

	dataset, err := service.IngestFile(7, "vendas.pdf", strings.NewReader("dados"))

	assert.Nil(t, dataset)
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestService_IngestFile_SomenteCabecalho(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockVendaRepository(ctrl), mocks.NewMockDatasetRepository(ctrl))

	dataset, err := service.IngestFile(7, "vazio.csv", strings.NewReader("Data,Produto,Qtd\n"))

	assert.Nil(t, dataset)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestService_IngestFile_FalhaDeInsercaoDesfazDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)

	falha := errors.New("violação de constraint")

	var datasetID string
	mockDatasetRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(dataset *domain.Dataset) error {
			datasetID = dataset.ID
			return nil
		})
	mockVendaRepo.EXPECT().
		InsertBatch(7, gomock.Any(), gomock.Any()).
		Return(falha)
	mockDatasetRepo.EXPECT().
		Delete(gomock.Any()).
		DoAndReturn(func(id string) error {
			assert.Equal(t, datasetID, id)
			return nil
		})

	service := NewService(mockVendaRepo, mockDatasetRepo)

	dataset, err := service.IngestFile(7, "vendas.csv", strings.NewReader(csvExemplo))

	assert.Nil(t, dataset)
	assert.ErrorIs(t, err, falha)
}

func TestService_DeleteDataset_DeOutroUsuario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)

	mockDatasetRepo.EXPECT().
		GetByID("abc123").
		Return(&domain.Dataset{ID: "abc123", UserID: 99}, nil)

	service := NewService(mockVendaRepo, mockDatasetRepo)

	err := service.DeleteDataset(7, "abc123")

	assert.ErrorIs(t, err, repository.ErrDatasetNotFound)
}

func TestService_DeleteDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := mocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)

	mockDatasetRepo.EXPECT().
		GetByID("abc123").
		Return(&domain.Dataset{ID: "abc123", UserID: 7}, nil)
	mockVendaRepo.EXPECT().
		DeleteByDataset("abc123").
		Return(int64(42), nil)
	mockDatasetRepo.EXPECT().
		Delete("abc123").
		Return(nil)

	service := NewService(mockVendaRepo, mockDatasetRepo)

	assert.NoError(t, service.DeleteDataset(7, "abc123"))
}

func TestDetectarSeparador(t *testing.T) {
	tests := []struct {
		name     string
		amostra  string
		expected rune
	}{
		{"Ponto e vírgula", "Data;Produto;Qtd\n15/03;Mouse;2", ';'},
		{"Vírgula", "Data,Produto,Qtd\n15/03,Mouse,2", ','},
		{"Vírgula por padrão", "Data\tProduto", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectarSeparador([]byte(tt.amostra)))
		})
	}
}
