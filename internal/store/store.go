// Package store owns schema, connections and CRUD for the laundry KPI data.
// Two backends implement the same contract: a networked Postgres store
// (selected when a DATABASE_URL is configured) and an embedded SQLite file
// for single-laptop deployments. Placeholder and conflict-clause dialects
// never leak past the implementations.
package store

import (
	"context"
	"errors"

	"laundry-backend/internal/config"
	"laundry-backend/internal/models"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by CreateUser on a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUnknownCategory is returned for a master category outside the enum.
	ErrUnknownCategory = errors.New("unknown master category")
)

// MasterCategory is the closed set of master lists. Each value maps to its
// table at definition time so no query is ever built from caller input.
type MasterCategory string

const (
	Laundries      MasterCategory = "laundries"
	Factories      MasterCategory = "factories"
	Departments    MasterCategory = "departments"
	Customers      MasterCategory = "customers"
	WashCategories MasterCategory = "wash_categories"
	WashIssues     MasterCategory = "wash_issues"
)

// AllMasterCategories lists every category, in schema order.
func AllMasterCategories() []MasterCategory {
	return []MasterCategory{Laundries, Factories, Departments, Customers, WashCategories, WashIssues}
}

// table resolves the category to its fixed table name.
func (c MasterCategory) table() (string, error) {
	switch c {
	case Laundries:
		return "laundries", nil
	case Factories:
		return "factories", nil
	case Departments:
		return "departments", nil
	case Customers:
		return "customers", nil
	case WashCategories:
		return "wash_categories", nil
	case WashIssues:
		return "wash_issues", nil
	}
	return "", ErrUnknownCategory
}

// Valid reports whether c is one of the enumerated categories.
func (c MasterCategory) Valid() bool {
	_, err := c.table()
	return err == nil
}

// Store is the persistence contract shared by both backends.
type Store interface {
	// Init idempotently creates all tables and seeds the default admin
	// user when the users table is empty. Safe on every process start.
	Init(ctx context.Context) error

	ListMaster(ctx context.Context, category MasterCategory) ([]models.MasterItem, error)
	// AddMaster inserts the trimmed name; empty or duplicate names are
	// silent no-ops.
	AddMaster(ctx context.Context, category MasterCategory, name string) error
	// DeleteMaster removes the named row; a missing name is a silent no-op.
	DeleteMaster(ctx context.Context, category MasterCategory, name string) error

	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	SaveEntry(ctx context.Context, entry *models.Entry) error
	// ReadEntries returns entries whose creation date falls inside the
	// inclusive [dateFrom, dateTo] range ("2006-01-02"; either bound may
	// be empty), newest first.
	ReadEntries(ctx context.Context, dateFrom, dateTo string) ([]models.Entry, error)

	Close() error
}

// createdAtLayout is how created_at is persisted in both backends.
const createdAtLayout = "2006-01-02 15:04:05"

// entryColumns is the insert/select column order for entries, shared by both
// backends so scans stay aligned with the schema.
var entryColumns = []string{
	"created_at", "created_by",
	"customer_name", "style_no", "contract_no",
	"customer_order_qty", "factory_order_qty", "total_shipment_qty",
	"wash_receive_qty", "wash_delivery_qty",
	"planned_pcd_date", "actual_pcd_date",
	"wash_receive_date", "wash_closing_date",
	"shade_band_submission_date", "shade_band_approval_date",
	"agreed_ex_factory", "actual_ex_factory",
	"factory_name", "laundry_name", "department_name", "wash_category",
	"subcontract_washing",
	"issue_1", "issue_2", "issue_3", "other_issue_text",
	"remarks", "image_path",
}

// entryValues flattens an entry into entryColumns order.
func entryValues(e *models.Entry) []any {
	return []any{
		e.CreatedAt.Format(createdAtLayout), e.CreatedBy,
		e.CustomerName, e.StyleNo, e.ContractNo,
		e.CustomerOrderQty, e.FactoryOrderQty, e.TotalShipmentQty,
		e.WashReceiveQty, e.WashDeliveryQty,
		e.PlannedPCDDate, e.ActualPCDDate,
		e.WashReceiveDate, e.WashClosingDate,
		e.ShadeBandSubmissionDate, e.ShadeBandApprovalDate,
		e.AgreedExFactory, e.ActualExFactory,
		e.FactoryName, e.LaundryName, e.DepartmentName, e.WashCategory,
		e.SubcontractWashing,
		e.Issue1, e.Issue2, e.Issue3, e.OtherIssueText,
		e.Remarks, e.ImagePath,
	}
}

// Open selects the backend: Postgres when a connection URL is configured,
// otherwise the embedded SQLite file.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.Database.URL != "" {
		return OpenPostgres(ctx, cfg.Database.URL, cfg.Admin.Password)
	}
	return OpenSQLite(cfg.Database.SQLitePath, cfg.Admin.Password)
}
