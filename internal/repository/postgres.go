package repository

import (
	"context"
	"errors"
	"fmt"

	"clientmap-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrClientNotFound is returned when no client has the requested id.
var ErrClientNotFound = errors.New("repository: client not found")

// Schema creates the directory tables. It is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		central_address VARCHAR(512) NOT NULL
	);
	CREATE TABLE IF NOT EXISTS branches (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		address VARCHAR(512) NOT NULL,
		contact_firstname VARCHAR(255) NOT NULL DEFAULT '',
		contact_lastname VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS branches_client_id_idx ON branches (client_id);
`

// Repository reads the client directory from PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CountClients returns the number of clients in the directory
func (r *Repository) CountClients(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count clients: %w", err)
	}
	return count, nil
}

// ListClients returns one page of clients ordered by id, branches included
func (r *Repository) ListClients(ctx context.Context, limit, offset int) ([]models.Client, error) {
	sql := `
		SELECT id, name, email, phone, central_address
		FROM clients
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CentralAddress); err != nil {
			return nil, fmt.Errorf("repository: failed to scan client: %w", err)
		}
		c.Branches = []models.Branch{}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	if err := r.attachBranches(ctx, clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// GetClient returns a single client with its branches
func (r *Repository) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	sql := `
		SELECT id, name, email, phone, central_address
		FROM clients
		WHERE id = $1
	`

	var c models.Client
	err := r.db.QueryRow(ctx, sql, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CentralAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("repository: failed to fetch client: %w", err)
	}
	c.Branches = []models.Branch{}

	clients := []models.Client{c}
	if err := r.attachBranches(ctx, clients); err != nil {
		return nil, err
	}
	return &clients[0], nil
}

func (r *Repository) attachBranches(ctx context.Context, clients []models.Client) error {
	if len(clients) == 0 {
		return nil
	}

	ids := make([]int64, len(clients))
	byID := make(map[int64]int, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
		byID[c.ID] = i
	}

	sql := `
		SELECT id, client_id, address, contact_firstname, contact_lastname, phone
		FROM branches
		WHERE client_id = ANY($1)
		ORDER BY client_id, id
	`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("repository: failed to execute branch query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.ClientID, &b.Address, &b.ContactFirstname, &b.ContactLastname, &b.Phone); err != nil {
			return fmt.Errorf("repository: failed to scan branch: %w", err)
		}
		i := byID[b.ClientID]
		clients[i].Branches = append(clients[i].Branches, b)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return nil
}
