package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/client-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

const (
	clientsTable = "clients c"
)

type ClientRepository interface {
	Create(client *domain.Client) error
	GetByID(clientID string) (*domain.Client, error)
	GetByDashboardToken(token string) (*domain.Client, error)
	List() ([]*domain.Client, error)
	Update(client *domain.UpdateClientRequest) error
	RotateDashboardToken(clientID, newToken string) error
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) Create(client *domain.Client) error {
	query := squirrel.StatementBuilder.
		Insert("clients").
		Columns("id", "name", "email", "slug", "logo_url", "dashboard_token").
		Values(
			client.ID,
			client.Name,
			client.Email,
			client.Slug,
			client.LogoURL,
			client.DashboardToken,
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

func (r *clientRepository) GetByID(clientID string) (*domain.Client, error) {
	return r.getClient(squirrel.Eq{"c.id": clientID})
}

func (r *clientRepository) GetByDashboardToken(token string) (*domain.Client, error) {
	return r.getClient(squirrel.Eq{"c.dashboard_token": token})
}

func (r *clientRepository) getClient(whereClause map[string]interface{}) (*domain.Client, error) {
	query, args, err := squirrel.
		Select("c.id, c.name, c.email, c.slug, c.logo_url, c.dashboard_token, c.created_at, c.updated_at").
		From(clientsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	client, err := r.scanClient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) List() ([]*domain.Client, error) {
	query, args, err := squirrel.
		Select("c.id, c.name, c.email, c.slug, c.logo_url, c.dashboard_token, c.created_at, c.updated_at").
		From(clientsTable).
		OrderBy("c.name ASC").
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

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{}
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.Slug,
			&client.LogoURL,
			&client.DashboardToken,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) Update(client *domain.UpdateClientRequest) error {
	if client.ID == "" {
		return errors.New("ID is required")
	}

	queryBuilder := squirrel.
		Update("clients").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": client.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if client.Name != nil {
		queryBuilder = queryBuilder.Set("name", *client.Name)
	}

	if client.LogoURL != nil {
		queryBuilder = queryBuilder.Set("logo_url", *client.LogoURL)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("client not found")
	}

	return nil
}

// RotateDashboardToken substitui o token de dashboard do cliente. O token
// antigo deixa de funcionar imediatamente
func (r *clientRepository) RotateDashboardToken(clientID, newToken string) error {
	sqlQuery, args, err := squirrel.
		Update("clients").
		Set("dashboard_token", newToken).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": clientID}).
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
		return errors.New("client not found")
	}

	return nil
}

func (r *clientRepository) scanClient(row *sql.Row) (*domain.Client, error) {
	client := &domain.Client{}

	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Slug,
		&client.LogoURL,
		&client.DashboardToken,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return client, nil
}
