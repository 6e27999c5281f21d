package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/vendas-insight-api/infrastructure/database/postgres"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

const (
	datasetsTable = "datasets"
)

// ErrDatasetNotFound indica dataset inexistente ou de outro usuário.
var ErrDatasetNotFound = errors.New("dataset não encontrado")

type DatasetRepository interface {
	Save(dataset *domain.Dataset) error
	GetByID(id string) (*domain.Dataset, error)
	ListByUser(userID int) ([]*domain.Dataset, error)
	CountByUser(userID int) (int, error)
	Delete(id string) error
	ListOlderThan(days int) ([]*domain.Dataset, error)
}

type datasetRepository struct {
	conn *postgres.Connection
}

func NewDatasetRepository(conn *postgres.Connection) DatasetRepository {
	return &datasetRepository{
		conn: conn,
	}
}

func (r *datasetRepository) Save(dataset *domain.Dataset) error {
	query, args, err := squirrel.
		Insert(datasetsTable).
		Columns("id", "user_id", "nome_arquivo", "total_linhas", "linhas_com_erro").
		Values(dataset.ID, dataset.UserID, dataset.NomeArquivo, dataset.TotalLinhas, dataset.LinhasComErro).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar dataset: %w", err)
	}

	return nil
}

func (r *datasetRepository) GetByID(id string) (*domain.Dataset, error) {
	query, args, err := squirrel.
		Select("d.id, d.user_id, d.nome_arquivo, d.total_linhas, d.linhas_com_erro, d.created_at").
		From(datasetsTable + " d").
		Where(squirrel.Eq{"d.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	dataset, err := scanDataset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear dataset: %w", err)
	}

	return dataset, nil
}

func (r *datasetRepository) ListByUser(userID int) ([]*domain.Dataset, error) {
	query, args, err := squirrel.
		Select("d.id, d.user_id, d.nome_arquivo, d.total_linhas, d.linhas_com_erro, d.created_at").
		From(datasetsTable + " d").
		Where(squirrel.Eq{"d.user_id": userID}).
		OrderBy("d.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	datasets := make([]*domain.Dataset, 0)
	for rows.Next() {
		var d domain.Dataset
		if err := rows.Scan(&d.ID, &d.UserID, &d.NomeArquivo, &d.TotalLinhas, &d.LinhasComErro, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear dataset: %w", err)
		}
		datasets = append(datasets, &d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return datasets, nil
}

func (r *datasetRepository) CountByUser(userID int) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(1)").
		From(datasetsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar datasets: %w", err)
	}

	return total, nil
}

func (r *datasetRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(datasetsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao remover dataset: %w", err)
	}

	return nil
}

// ListOlderThan lista datasets criados há mais de N dias, candidatos da
// rotina de retenção.
func (r *datasetRepository) ListOlderThan(days int) ([]*domain.Dataset, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Select("d.id, d.user_id, d.nome_arquivo, d.total_linhas, d.linhas_com_erro, d.created_at").
		From(datasetsTable + " d").
		Where(squirrel.Lt{"d.created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	datasets := make([]*domain.Dataset, 0)
	for rows.Next() {
		var d domain.Dataset
		if err := rows.Scan(&d.ID, &d.UserID, &d.NomeArquivo, &d.TotalLinhas, &d.LinhasComErro, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear dataset: %w", err)
		}
		datasets = append(datasets, &d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return datasets, nil
}

func scanDataset(row *sql.Row) (*domain.Dataset, error) {
	var d domain.Dataset
	err := row.Scan(&d.ID, &d.UserID, &d.NomeArquivo, &d.TotalLinhas, &d.LinhasComErro, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
