// Package ingesting recebe planilhas de vendas (CSV/XLSX), normaliza as
// linhas para o esquema canônico e grava o resultado por usuário. Uma célula
// ruim nunca derruba o arquivo: o valor degrada para o default do campo.
package ingesting

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/normalizing"
	"github.com/vfg2006/vendas-insight-api/pkg/utils"
)

var (
	// ErrUnsupportedFile indica extensão fora de .csv/.xlsx/.xls.
	ErrUnsupportedFile = errors.New("formato de arquivo não suportado")
	// ErrEmptyFile indica planilha sem linhas de dados além do cabeçalho.
	ErrEmptyFile = errors.New("planilha sem linhas de dados")
)

type Ingester interface {
	IngestFile(userID int, filename string, file io.Reader) (*domain.Dataset, error)
	ListDatasets(userID int) ([]*domain.Dataset, error)
	DeleteDataset(userID int, datasetID string) error
}

type Service struct {
	vendaRepo   repository.VendaRepository
	datasetRepo repository.DatasetRepository
}

func NewService(
	vendaRepo repository.VendaRepository,
	datasetRepo repository.DatasetRepository,
) Ingester {
	return &Service{
		vendaRepo:   vendaRepo,
		datasetRepo: datasetRepo,
	}
}

// IngestFile lê a planilha, normaliza cada linha e grava tudo em uma
// transação junto com o registro do dataset.
func (s *Service) IngestFile(userID int, filename string, file io.Reader) (*domain.Dataset, error) {
	linhas, err := lerPlanilha(filename, file)
	if err != nil {
		return nil, err
	}

	if len(linhas) < 2 {
		return nil, ErrEmptyFile
	}

	cabecalhos := linhas[0]
	headerMap := normalizing.BuildHeaderMap(cabecalhos)

	vendas := make([]domain.Venda, 0, len(linhas)-1)
	linhasSemData := 0

	for _, linha := range linhas[1:] {
		if linhaVazia(linha) {
			continue
		}

		raw := make(map[string]string, len(cabecalhos))
		for i, h := range cabecalhos {
			if i < len(linha) {
				raw[h] = linha[i]
			}
		}

		venda := normalizing.NormalizeRow(raw, headerMap)
		if !venda.TemData() {
			linhasSemData++
		}
		vendas = append(vendas, venda)
	}

	if len(vendas) == 0 {
		return nil, ErrEmptyFile
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	dataset := &domain.Dataset{
		ID:            id,
		UserID:        userID,
		NomeArquivo:   filepath.Base(filename),
		TotalLinhas:   len(vendas),
		LinhasComErro: linhasSemData,
	}

	if err := s.datasetRepo.Save(dataset); err != nil {
		return nil, err
	}

	if err := s.vendaRepo.InsertBatch(userID, dataset.ID, vendas); err != nil {
		// Desfaz o registro do dataset para não deixar planilha fantasma.
		if delErr := s.datasetRepo.Delete(dataset.ID); delErr != nil {
			logrus.WithError(delErr).WithField("dataset_id", dataset.ID).Error("Erro ao remover dataset após falha de inserção")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":         userID,
		"dataset_id":      dataset.ID,
		"arquivo":         dataset.NomeArquivo,
		"total_linhas":    dataset.TotalLinhas,
		"linhas_sem_data": linhasSemData,
	}).Info("Planilha ingerida com sucesso")

	return dataset, nil
}

func (s *Service) ListDatasets(userID int) ([]*domain.Dataset, error) {
	return s.datasetRepo.ListByUser(userID)
}

// DeleteDataset remove a planilha e as vendas dela, validando que o dataset
// pertence ao usuário.
func (s *Service) DeleteDataset(userID int, datasetID string) error {
	dataset, err := s.datasetRepo.GetByID(datasetID)
	if err != nil {
		return err
	}
	if dataset == nil || dataset.UserID != userID {
		return repository.ErrDatasetNotFound
	}

	removidas, err := s.vendaRepo.DeleteByDataset(datasetID)
	if err != nil {
		return err
	}

	if err := s.datasetRepo.Delete(datasetID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":          userID,
		"dataset_id":       datasetID,
		"vendas_removidas": removidas,
	}).Info("Dataset removido")

	return nil
}

// lerPlanilha despacha para o leitor certo pela extensão do arquivo.
func lerPlanilha(filename string, file io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return lerCSV(file)
	case ".xlsx", ".xls":
		return lerXLSX(file)
	default:
		return nil, ErrUnsupportedFile
	}
}

func linhaVazia(linha []string) bool {
	for _, celula := range linha {
		if strings.TrimSpace(celula) != "" {
			return false
		}
	}
	return true
}
