package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/client-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

const (
	syncLogsTable = "sync_logs sl"
)

type SyncLogRepository interface {
	Create(log *domain.SyncLog) error
	Complete(logID string, status domain.SyncStatus, recordsSynced int, errorMessage *string) error
	LatestSuccessByClientID(clientID string) (*domain.SyncLog, error)
	ListByClientID(clientID string, limit int) ([]*domain.SyncLog, error)
	MarkStaleRunning(olderThanHours int) (int64, error)
}

type syncLogRepository struct {
	conn *postgres.Connection
}

func NewSyncLogRepository(conn *postgres.Connection) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

func (r *syncLogRepository) Create(log *domain.SyncLog) error {
	query := squirrel.StatementBuilder.
		Insert("sync_logs").
		Columns("id", "client_id", "ad_account_id", "platform", "status", "date_range_start", "date_range_end", "records_synced", "started_at").
		Values(
			log.ID,
			log.ClientID,
			log.AdAccountID,
			log.Platform,
			log.Status,
			log.DateRangeStart,
			log.DateRangeEnd,
			log.RecordsSynced,
			log.StartedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Complete finaliza um registro em running. O filtro por status garante que um
// registro finalizado nunca é sobrescrito
func (r *syncLogRepository) Complete(logID string, status domain.SyncStatus, recordsSynced int, errorMessage *string) error {
	sqlQuery, args, err := squirrel.
		Update("sync_logs").
		Set("status", status).
		Set("records_synced", recordsSynced).
		Set("error_message", errorMessage).
		Set("completed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": logID, "status": domain.SyncStatusRunning}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncLogRepository) LatestSuccessByClientID(clientID string) (*domain.SyncLog, error) {
	query, args, err := squirrel.
		Select("sl.id, sl.client_id, sl.ad_account_id, sl.platform, sl.status, sl.date_range_start::text, sl.date_range_end::text, sl.records_synced, sl.error_message, sl.started_at, sl.completed_at").
		From(syncLogsTable).
		Where(squirrel.Eq{"sl.client_id": clientID, "sl.status": domain.SyncStatusSuccess}).
		OrderBy("sl.completed_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	log, err := r.scanLog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear sync log: %w", err)
	}

	return log, nil
}

func (r *syncLogRepository) ListByClientID(clientID string, limit int) ([]*domain.SyncLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := squirrel.
		Select("sl.id, sl.client_id, sl.ad_account_id, sl.platform, sl.status, sl.date_range_start::text, sl.date_range_end::text, sl.records_synced, sl.error_message, sl.started_at, sl.completed_at").
		From(syncLogsTable).
		Where(squirrel.Eq{"sl.client_id": clientID}).
		OrderBy("sl.started_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.SyncLog, 0)
	for rows.Next() {
		log := &domain.SyncLog{}
		if err := rows.Scan(
			&log.ID,
			&log.ClientID,
			&log.AdAccountID,
			&log.Platform,
			&log.Status,
			&log.DateRangeStart,
			&log.DateRangeEnd,
			&log.RecordsSynced,
			&log.ErrorMessage,
			&log.StartedAt,
			&log.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear sync log: %w", err)
		}
		logs = append(logs, log)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}

// MarkStaleRunning finaliza como erro registros presos em running há mais de
// olderThanHours. Cobre o caso de crash do processo no meio de uma sincronização
func (r *syncLogRepository) MarkStaleRunning(olderThanHours int) (int64, error) {
	sqlQuery, args, err := squirrel.
		Update("sync_logs").
		Set("status", domain.SyncStatusError).
		Set("error_message", "sincronização expirada: processo interrompido antes de finalizar").
		Set("completed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.SyncStatusRunning}).
		Where(squirrel.Expr("started_at < NOW() - make_interval(hours => ?)", olderThanHours)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *syncLogRepository) scanLog(row *sql.Row) (*domain.SyncLog, error) {
	log := &domain.SyncLog{}

	if err := row.Scan(
		&log.ID,
		&log.ClientID,
		&log.AdAccountID,
		&log.Platform,
		&log.Status,
		&log.DateRangeStart,
		&log.DateRangeEnd,
		&log.RecordsSynced,
		&log.ErrorMessage,
		&log.StartedAt,
		&log.CompletedAt,
	); err != nil {
		return nil, err
	}

	return log, nil
}
