package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/vendas-insight-api/infrastructure/database/postgres"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

const (
	vendasTable = "vendas"
)

type VendaRepository interface {
	InsertBatch(userID int, datasetID string, vendas []domain.Venda) error
	ListByUser(userID int) ([]domain.Venda, error)
	GetAvailablePeriods(userID int) (*domain.AvailablePeriods, error)
	DeleteByDataset(datasetID string) (int64, error)
	DeleteOlderThan(days int) (int64, error)
}

type vendaRepository struct {
	conn *postgres.Connection
}

func NewVendaRepository(conn *postgres.Connection) VendaRepository {
	return &vendaRepository{
		conn: conn,
	}
}

// InsertBatch grava todas as linhas normalizadas de uma planilha em uma única
// transação: ou a planilha inteira entra, ou nada entra.
func (r *vendaRepository) InsertBatch(userID int, datasetID string, vendas []domain.Venda) error {
	if len(vendas) == 0 {
		return nil
	}

	stmtSQL := `INSERT INTO vendas
		(user_id, dataset_id, data, ano, mes, trimestre, id_transacao, produto, categoria, regiao, quantidade, preco_unitario, receita_total, extras)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	tx, err := r.conn.Begin()
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}

	stmt, err := tx.Prepare(stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("erro ao preparar statement de vendas: %w", err)
	}
	defer stmt.Close()

	for i := range vendas {
		v := &vendas[i]

		var data any
		if v.TemData() {
			data = v.Data
		}

		var extrasJSON []byte
		if len(v.Extras) > 0 {
			extrasJSON, err = json.Marshal(v.Extras)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("erro ao serializar colunas extras: %w", err)
			}
		}

		_, err = stmt.Exec(
			userID,
			datasetID,
			data,
			v.Ano,
			v.Mes,
			v.Trimestre,
			v.IDTransacao,
			v.Produto,
			v.Categoria,
			v.Regiao,
			v.Quantidade,
			v.PrecoUnit,
			v.Receita,
			extrasJSON,
		)
		if err != nil {
			_ = tx.Rollback()
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao inserir venda: %w", err)
		}
	}

	return tx.Commit()
}

// ListByUser devolve o consolidado do usuário na ordem de inserção, que é a
// ordem que o filtro e o agregador preservam.
func (r *vendaRepository) ListByUser(userID int) ([]domain.Venda, error) {
	query, args, err := squirrel.
		Select("v.data, v.ano, v.mes, v.trimestre, v.id_transacao, v.produto, v.categoria, v.regiao, v.quantidade, v.preco_unitario, v.receita_total, v.extras").
		From(vendasTable + " v").
		Where(squirrel.Eq{"v.user_id": userID}).
		OrderBy("v.id ASC").
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

	vendas := make([]domain.Venda, 0)
	for rows.Next() {
		venda, err := scanVenda(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		vendas = append(vendas, venda)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return vendas, nil
}

func scanVenda(rows *sql.Rows) (domain.Venda, error) {
	var (
		venda      domain.Venda
		data       sql.NullTime
		extrasJSON []byte
	)

	err := rows.Scan(
		&data,
		&venda.Ano,
		&venda.Mes,
		&venda.Trimestre,
		&venda.IDTransacao,
		&venda.Produto,
		&venda.Categoria,
		&venda.Regiao,
		&venda.Quantidade,
		&venda.PrecoUnit,
		&venda.Receita,
		&extrasJSON,
	)
	if err != nil {
		return venda, err
	}

	if data.Valid {
		venda.Data = data.Time.Format(time.DateOnly)
	}

	if len(extrasJSON) > 0 {
		if err := json.Unmarshal(extrasJSON, &venda.Extras); err != nil {
			return venda, fmt.Errorf("erro ao desserializar colunas extras: %w", err)
		}
	}

	return venda, nil
}

// GetAvailablePeriods lista os períodos (mm-yyyy), anos e meses distintos com
// vendas do usuário. Linhas sem data interpretada (ano zero) ficam de fora.
func (r *vendaRepository) GetAvailablePeriods(userID int) (*domain.AvailablePeriods, error) {
	query, args, err := squirrel.
		Select("DISTINCT v.ano, v.mes").
		From(vendasTable + " v").
		Where(squirrel.Eq{"v.user_id": userID}).
		Where(squirrel.Gt{"v.ano": 0}).
		OrderBy("v.ano ASC", "v.mes ASC").
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

	periods := &domain.AvailablePeriods{
		Periods: make([]string, 0),
		Years:   make([]string, 0),
		Months:  make([]string, 0),
	}

	anosVistos := make(map[int]bool)
	mesesVistos := make(map[int]bool)

	for rows.Next() {
		var ano, mes int
		if err := rows.Scan(&ano, &mes); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}

		periods.Periods = append(periods.Periods, fmt.Sprintf("%02d-%d", mes, ano))

		if !anosVistos[ano] {
			anosVistos[ano] = true
			periods.Years = append(periods.Years, fmt.Sprintf("%d", ano))
		}
		if !mesesVistos[mes] {
			mesesVistos[mes] = true
			periods.Months = append(periods.Months, fmt.Sprintf("%02d", mes))
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

func (r *vendaRepository) DeleteByDataset(datasetID string) (int64, error) {
	query, args, err := squirrel.
		Delete(vendasTable).
		Where(squirrel.Eq{"dataset_id": datasetID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}

// DeleteOlderThan remove vendas carregadas há mais de N dias. Usado pela
// rotina de retenção.
func (r *vendaRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(vendasTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}
