package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"laundry-backend/internal/auth"
	"laundry-backend/internal/models"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLiteStore targets an embedded database file, for deployments without a
// reachable Postgres (the single-laptop setup).
type SQLiteStore struct {
	db        *sql.DB
	adminPass string
}

// OpenSQLite opens (and creates if needed) the database file at path.
// adminPass seeds the default admin account when Init finds no users.
func OpenSQLite(path, adminPass string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLiteStore{db: db, adminPass: adminPass}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('admin','wash_tech')),
		full_name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS laundries(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS factories(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS departments(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS customers(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS wash_categories(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS wash_issues(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS entries(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
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
func (s *SQLiteStore) Init(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(s.adminPass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users(username, password, role, full_name) VALUES(?, ?, ?, ?)`,
		"admin", hash, models.RoleAdmin, "Default Admin")
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListMaster(ctx context.Context, category MasterCategory) ([]models.MasterItem, error) {
	table, err := category.table()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name`, table))
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

func (s *SQLiteStore) AddMaster(ctx context.Context, category MasterCategory, name string) error {
	table, err := category.table()
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT OR IGNORE INTO %s(name) VALUES(?)`, table), name)
	return err
}

func (s *SQLiteStore) DeleteMaster(ctx context.Context, category MasterCategory, name string) error {
	table, err := category.table()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE name=?`, table), name)
	return err
}

func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, COALESCE(full_name, '') FROM users WHERE username=?`,
		username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username, password, role, full_name) VALUES(?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.Role, user.FullName)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

func (s *SQLiteStore) SaveEntry(ctx context.Context, entry *models.Entry) error {
	placeholders := make([]string, len(entryColumns))
	for i, col := range entryColumns {
		if dateColumn[col] {
			placeholders[i] = "NULLIF(?, '')"
		} else {
			placeholders[i] = "?"
		}
	}

	query := fmt.Sprintf(`INSERT INTO entries(%s) VALUES(%s)`,
		strings.Join(entryColumns, ", "), strings.Join(placeholders, ", "))
	res, err := s.db.ExecContext(ctx, query, entryValues(entry)...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = int(id)
	return nil
}

func (s *SQLiteStore) ReadEntries(ctx context.Context, dateFrom, dateTo string) ([]models.Entry, error) {
	query := `SELECT ` + entrySelectList() + ` FROM entries`

	var where []string
	var args []any
	if dateFrom != "" {
		where = append(where, "date(created_at) >= date(?)")
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		where = append(where, "date(created_at) <= date(?)")
		args = append(args, dateTo)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ Store = (*SQLiteStore)(nil)
var _ Store = (*PostgresStore)(nil)
