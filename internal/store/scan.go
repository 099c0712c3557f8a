package store

import (
	"fmt"
	"strings"

	"laundry-backend/internal/models"
	"laundry-backend/internal/timeutil"
)

// dateColumn marks the optional calendar-date columns; they are stored as
// NULL when absent, every other text column as ''.
var dateColumn = map[string]bool{
	"planned_pcd_date":           true,
	"actual_pcd_date":            true,
	"wash_receive_date":          true,
	"wash_closing_date":          true,
	"shade_band_submission_date": true,
	"shade_band_approval_date":   true,
	"agreed_ex_factory":          true,
	"actual_ex_factory":          true,
}

var quantityColumn = map[string]bool{
	"customer_order_qty": true,
	"factory_order_qty":  true,
	"total_shipment_qty": true,
	"wash_receive_qty":   true,
	"wash_delivery_qty":  true,
}

// entrySelectList builds the SELECT list for entries. COALESCE keeps NULLs
// out of the scan; the syntax is identical in both dialects.
func entrySelectList() string {
	cols := make([]string, 0, len(entryColumns)+1)
	cols = append(cols, "id")
	for _, col := range entryColumns {
		if quantityColumn[col] {
			cols = append(cols, fmt.Sprintf("COALESCE(%s, 0)", col))
		} else {
			cols = append(cols, fmt.Sprintf("COALESCE(%s, '')", col))
		}
	}
	return strings.Join(cols, ", ")
}

// rowScanner is satisfied by pgx rows and database/sql rows alike.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one row produced by entrySelectList.
func scanEntry(rs rowScanner) (models.Entry, error) {
	var e models.Entry
	var createdAt string
	err := rs.Scan(
		&e.ID,
		&createdAt, &e.CreatedBy,
		&e.CustomerName, &e.StyleNo, &e.ContractNo,
		&e.CustomerOrderQty, &e.FactoryOrderQty, &e.TotalShipmentQty,
		&e.WashReceiveQty, &e.WashDeliveryQty,
		&e.PlannedPCDDate, &e.ActualPCDDate,
		&e.WashReceiveDate, &e.WashClosingDate,
		&e.ShadeBandSubmissionDate, &e.ShadeBandApprovalDate,
		&e.AgreedExFactory, &e.ActualExFactory,
		&e.FactoryName, &e.LaundryName, &e.DepartmentName, &e.WashCategory,
		&e.SubcontractWashing,
		&e.Issue1, &e.Issue2, &e.Issue3, &e.OtherIssueText,
		&e.Remarks, &e.ImagePath,
	)
	if err != nil {
		return models.Entry{}, err
	}
	e.CreatedAt, err = timeutil.ParseInBST(createdAtLayout, createdAt)
	if err != nil {
		return models.Entry{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return e, nil
}
