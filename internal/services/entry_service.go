package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"laundry-backend/internal/models"
	"laundry-backend/internal/store"
	"laundry-backend/internal/timeutil"
)

const maxOtherIssueLen = 20

type EntryService struct {
	Store     store.Store
	UploadDir string
}

func NewEntryService(st store.Store, uploadDir string) *EntryService {
	return &EntryService{Store: st, UploadDir: uploadDir}
}

// SaveImage persists an uploaded style image under the upload directory,
// prefixing the filename with a timestamp to avoid collisions. Returns the
// stored path.
func (s *EntryService) SaveImage(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ts := timeutil.Now().Format("20060102_150405")
	safeName := strings.ReplaceAll(ts+"_"+filepath.Base(filename), " ", "_")
	outPath := filepath.Join(s.UploadDir, safeName)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return filepath.ToSlash(outPath), nil
}

// CreateEntry validates and saves one entry. CreatedAt/CreatedBy must be set
// by the caller before saving; CreatedAt defaults to now when zero.
func (s *EntryService) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.CreatedBy == "" {
		return fmt.Errorf("created_by is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timeutil.Now()
	}

	for name, qty := range map[string]int{
		"customer_order_qty": entry.CustomerOrderQty,
		"factory_order_qty":  entry.FactoryOrderQty,
		"total_shipment_qty": entry.TotalShipmentQty,
		"wash_receive_qty":   entry.WashReceiveQty,
		"wash_delivery_qty":  entry.WashDeliveryQty,
	} {
		if qty < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	for name, value := range map[string]string{
		"planned_pcd_date":           entry.PlannedPCDDate,
		"actual_pcd_date":            entry.ActualPCDDate,
		"wash_receive_date":          entry.WashReceiveDate,
		"wash_closing_date":          entry.WashClosingDate,
		"shade_band_submission_date": entry.ShadeBandSubmissionDate,
		"shade_band_approval_date":   entry.ShadeBandApprovalDate,
		"agreed_ex_factory":          entry.AgreedExFactory,
		"actual_ex_factory":          entry.ActualExFactory,
	} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("%s must be a YYYY-MM-DD date", name)
		}
	}

	switch entry.SubcontractWashing {
	case "YES", "NO":
	case "":
		entry.SubcontractWashing = "NO"
	default:
		return fmt.Errorf("subcontract_washing must be YES or NO")
	}

	entry.OtherIssueText = strings.TrimSpace(entry.OtherIssueText)
	if utf8.RuneCountInString(entry.OtherIssueText) > maxOtherIssueLen {
		return fmt.Errorf("other_issue_text must be at most %d characters", maxOtherIssueLen)
	}
	entry.StyleNo = strings.TrimSpace(entry.StyleNo)
	entry.ContractNo = strings.TrimSpace(entry.ContractNo)
	entry.Remarks = strings.TrimSpace(entry.Remarks)

	return s.Store.SaveEntry(ctx, entry)
}

// ListEntries returns entries inside the inclusive date range, newest first.
func (s *EntryService) ListEntries(ctx context.Context, dateFrom, dateTo string) ([]models.Entry, error) {
	for _, bound := range []string{dateFrom, dateTo} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", bound); err != nil {
			return nil, fmt.Errorf("date bound must be YYYY-MM-DD: %q", bound)
		}
	}
	return s.Store.ReadEntries(ctx, dateFrom, dateTo)
}
