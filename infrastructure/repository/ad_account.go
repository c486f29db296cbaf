package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/client-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

const (
	adAccountsTable = "ad_accounts aa"
)

type AccountRepository interface {
	GetByID(accountID string) (*domain.AdAccount, error)
	ListByClientID(clientID string) ([]*domain.AdAccount, error)
	SaveOrUpdate(account *domain.AdAccount) error
	UpdateTokens(accountID, accessToken string, expiresAt *time.Time) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) GetByID(accountID string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.client_id, aa.platform, aa.account_id, aa.account_name, aa.access_token, aa.refresh_token, aa.token_expires_at, aa.created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	account, err := r.scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta: %w", err)
	}

	return account, nil
}

func (r *accountRepository) ListByClientID(clientID string) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.client_id, aa.platform, aa.account_id, aa.account_name, aa.access_token, aa.refresh_token, aa.token_expires_at, aa.created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.client_id": clientID}).
		OrderBy("aa.platform ASC, aa.account_name ASC").
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

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account := &domain.AdAccount{}
		if err := rows.Scan(
			&account.ID,
			&account.ClientID,
			&account.Platform,
			&account.AccountID,
			&account.AccountName,
			&account.AccessToken,
			&account.RefreshToken,
			&account.TokenExpiresAt,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

// SaveOrUpdate insere a conta ou, se (client_id, platform, account_id) já
// existir, atualiza nome e tokens. Reconectar a mesma conta nunca duplica
func (r *accountRepository) SaveOrUpdate(account *domain.AdAccount) error {
	query := squirrel.StatementBuilder.
		Insert("ad_accounts").
		Columns("id", "client_id", "platform", "account_id", "account_name", "access_token", "refresh_token", "token_expires_at").
		Values(
			account.ID,
			account.ClientID,
			account.Platform,
			account.AccountID,
			account.AccountName,
			account.AccessToken,
			account.RefreshToken,
			account.TokenExpiresAt,
		).
		Suffix(`
			ON CONFLICT (client_id, platform, account_id) DO UPDATE SET
				account_name = EXCLUDED.account_name,
				access_token = EXCLUDED.access_token,
				refresh_token = COALESCE(EXCLUDED.refresh_token, ad_accounts.refresh_token),
				token_expires_at = EXCLUDED.token_expires_at
		`).
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

// UpdateTokens persiste um access token renovado e sua nova expiração
func (r *accountRepository) UpdateTokens(accountID, accessToken string, expiresAt *time.Time) error {
	sqlQuery, args, err := squirrel.
		Update("ad_accounts").
		Set("access_token", accessToken).
		Set("token_expires_at", expiresAt).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("ad account not found")
	}

	return nil
}

func (r *accountRepository) scanAccount(row *sql.Row) (*domain.AdAccount, error) {
	account := &domain.AdAccount{}

	if err := row.Scan(
		&account.ID,
		&account.ClientID,
		&account.Platform,
		&account.AccountID,
		&account.AccountName,
		&account.AccessToken,
		&account.RefreshToken,
		&account.TokenExpiresAt,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}

	return account, nil
}
