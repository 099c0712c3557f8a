package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"laundry-backend/internal/auth"
	"laundry-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres SQLSTATE for unique-constraint errors
const uniqueViolation = "23505"

// PostgresStore targets a networked Postgres database via pgx.
type PostgresStore struct {
	pool      *pgxpool.Pool
	adminPass string
}

// OpenPostgres connects to the database at url. adminPass seeds the default
// admin account when Init finds an empty users table.
func OpenPostgres(ctx context.Context, url, adminPass string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool, adminPass: adminPass}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS users(
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('admin','wash_tech')),
		full_name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS laundries(id SERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS factories(id SERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS departments(id SERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS customers(id SERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS wash_categories(id SERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS wash_issues(id SERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS entries(
		id SERIAL PRIMARY KEY,
		created_at TEXT NOT NULL,
		created_by TEXT NOT NULL,

		customer_name TEXT,
		style_no TEXT,
		contract_no TEXT,

		customer_order_qty INTEGER,
		factory_order_qty INTEGER,
		total_shipment_qty INTEGER,
		wash_receive_qty INTEGER,
		wash_delivery_qty INTEGER,

		planned_pcd_date TEXT,
		actual_pcd_date TEXT,

		wash_receive_date TEXT,
		wash_closing_date TEXT,

		shade_band_submission_date TEXT,
		shade_band_approval_date TEXT,

		agreed_ex_factory TEXT,
		actual_ex_factory TEXT,

		factory_name TEXT,
		laundry_name TEXT,
		department_name TEXT,
		wash_category TEXT,

		subcontract_washing TEXT,

		issue_1 TEXT,
		issue_2 TEXT,
		issue_3 TEXT,
		other_issue_text TEXT,

		remarks TEXT,
		image_path TEXT
	)`,
}

// Init creates all tables and seeds the default admin on a cold database.
func (s *PostgresStore) Init(ctx context.Context) error {
	for _, stmt := range pgSchema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(s.adminPass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO users(username, password, role, full_name) VALUES($1, $2, $3, $4)`,
		"admin", hash, models.RoleAdmin, "Default Admin")
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMaster(ctx context.Context, category MasterCategory) ([]models.MasterItem, error) {
	table, err := category.table()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MasterItem
	for rows.Next() {
		var item models.MasterItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) AddMaster(ctx context.Context, category MasterCategory, name string) error {
	table, err := category.table()
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s(name) VALUES($1) ON CONFLICT (name) DO NOTHING`, table), name)
	return err
}

func (s *PostgresStore) DeleteMaster(ctx context.Context, category MasterCategory, name string) error {
	table, err := category.table()
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE name=$1`, table), name)
	return err
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, password, role, COALESCE(full_name, '') FROM users WHERE username=$1`,
		username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users(username, password, role, full_name)
         VALUES($1, $2, $3, $4)
         RETURNING id`,
		user.Username, user.PasswordHash, user.Role, user.FullName,
	).Scan(&user.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUsernameTaken
	}
	return err
}

func (s *PostgresStore) SaveEntry(ctx context.Context, entry *models.Entry) error {
	placeholders := make([]string, len(entryColumns))
	for i, col := range entryColumns {
		p := fmt.Sprintf("$%d", i+1)
		if dateColumn[col] {
			p = fmt.Sprintf("NULLIF(%s, '')", p)
		}
		placeholders[i] = p
	}

	query := fmt.Sprintf(`INSERT INTO entries(%s) VALUES(%s) RETURNING id`,
		strings.Join(entryColumns, ", "), strings.Join(placeholders, ", "))
	return s.pool.QueryRow(ctx, query, entryValues(entry)...).Scan(&entry.ID)
}

func (s *PostgresStore) ReadEntries(ctx context.Context, dateFrom, dateTo string) ([]models.Entry, error) {
	query := `SELECT ` + entrySelectList() + ` FROM entries`

	var where []string
	var args []any
	if dateFrom != "" {
		args = append(args, dateFrom)
		where = append(where, fmt.Sprintf("substr(created_at, 1, 10) >= $%d", len(args)))
	}
	if dateTo != "" {
		args = append(args, dateTo)
		where = append(where, fmt.Sprintf("substr(created_at, 1, 10) <= $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
