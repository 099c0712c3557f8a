package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"laundry-backend/internal/auth"
	"laundry-backend/internal/models"
	"laundry-backend/internal/timeutil"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), "admin123")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func testEntry(createdAt time.Time) *models.Entry {
	return &models.Entry{
		CreatedAt: createdAt,
		CreatedBy: "admin",

		CustomerName: "Marks & Spencer",
		StyleNo:      "ST-1041",
		ContractNo:   "CN-88",

		CustomerOrderQty: 1200,
		FactoryOrderQty:  1500,
		TotalShipmentQty: 1100,
		WashReceiveQty:   1400,
		WashDeliveryQty:  1350,

		PlannedPCDDate:          "2024-05-01",
		ActualPCDDate:           "2024-05-03",
		WashReceiveDate:         "2024-05-05",
		WashClosingDate:         "2024-05-12",
		ShadeBandSubmissionDate: "2024-05-06",
		ShadeBandApprovalDate:   "2024-05-08",
		AgreedExFactory:         "2024-05-20",
		ActualExFactory:         "2024-05-22",

		FactoryName:    "Apex Apparels",
		LaundryName:    "Blue Denim Wash",
		DepartmentName: "Denim",
		WashCategory:   "Enzyme Wash",

		SubcontractWashing: "NO",

		Issue1:         "Shade variation",
		Issue2:         "Crocking",
		OtherIssueText: "Torn pocket",

		Remarks:   "Re-wash approved by QA",
		ImagePath: "data/uploads/20240510_093000_style.jpg",
	}
}

func TestInitSeedsDefaultAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Init must stay idempotent on a warm store
	if err := s.Init(ctx); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	admin, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, models.RoleAdmin)
	}
	if admin.FullName != "Default Admin" {
		t.Errorf("admin full name = %q", admin.FullName)
	}
	if !auth.VerifyPassword(admin.PasswordHash, "admin123") {
		t.Error("seeded admin password does not verify")
	}

	// The seed happened exactly once: the username stays unique
	err = s.CreateUser(ctx, &models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate admin err = %v, want ErrUsernameTaken", err)
	}
}

func TestAddMasterIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddMaster(ctx, Laundries, "  Blue Denim Wash  "); err != nil {
		t.Fatalf("AddMaster: %v", err)
	}
	if err := s.AddMaster(ctx, Laundries, "Blue Denim Wash"); err != nil {
		t.Fatalf("duplicate AddMaster: %v", err)
	}
	if err := s.AddMaster(ctx, Laundries, "   "); err != nil {
		t.Fatalf("blank AddMaster: %v", err)
	}

	items, err := s.ListMaster(ctx, Laundries)
	if err != nil {
		t.Fatalf("ListMaster: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d laundries, want 1", len(items))
	}
	if items[0].Name != "Blue Denim Wash" {
		t.Errorf("name = %q, want trimmed value", items[0].Name)
	}
}

func TestListMasterSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Gamma", "Alpha", "Beta"} {
		if err := s.AddMaster(ctx, Factories, name); err != nil {
			t.Fatalf("AddMaster(%q): %v", name, err)
		}
	}

	items, err := s.ListMaster(ctx, Factories)
	if err != nil {
		t.Fatalf("ListMaster: %v", err)
	}
	got := make([]string, len(items))
	for i, item := range items {
		got[i] = item.Name
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDeleteMaster(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddMaster(ctx, WashIssues, "Crocking"); err != nil {
		t.Fatalf("AddMaster: %v", err)
	}
	if err := s.DeleteMaster(ctx, WashIssues, "Crocking"); err != nil {
		t.Fatalf("DeleteMaster: %v", err)
	}
	// Deleting a name that is not there stays a silent no-op
	if err := s.DeleteMaster(ctx, WashIssues, "Crocking"); err != nil {
		t.Fatalf("DeleteMaster missing: %v", err)
	}

	items, err := s.ListMaster(ctx, WashIssues)
	if err != nil {
		t.Fatalf("ListMaster: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d wash issues, want 0", len(items))
	}
}

func TestUnknownMasterCategory(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ListMaster(context.Background(), MasterCategory("entries"))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createdAt := time.Date(2024, 5, 10, 9, 30, 15, 0, timeutil.BST)
	want := testEntry(createdAt)
	if err := s.SaveEntry(ctx, want); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	if want.ID == 0 {
		t.Fatal("SaveEntry did not assign an id")
	}

	entries, err := s.ReadEntries(ctx, "2024-05-10", "2024-05-10")
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	got := entries[0]
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, createdAt)
	}
	got.CreatedAt = want.CreatedAt // compared above; Equal, not ==
	if got != *want {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, *want)
	}
}

func TestEntryRoundTripEmptyOptionals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := &models.Entry{
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, timeutil.BST),
		CreatedBy: "tech1",
	}
	if err := s.SaveEntry(ctx, want); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}

	entries, err := s.ReadEntries(ctx, "", "")
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.PlannedPCDDate != "" || got.ImagePath != "" || got.Issue1 != "" {
		t.Errorf("optional fields not empty after round trip: %+v", got)
	}
	if got.CustomerOrderQty != 0 {
		t.Errorf("customer_order_qty = %d, want 0", got.CustomerOrderQty)
	}
}

func TestReadEntriesInclusiveBoundsAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	days := []string{"2024-05-01", "2024-05-02", "2024-05-03"}
	for _, day := range days {
		createdAt, err := timeutil.ParseInBST("2006-01-02 15:04:05", day+" 10:00:00")
		if err != nil {
			t.Fatalf("parse %s: %v", day, err)
		}
		e := &models.Entry{CreatedAt: createdAt, CreatedBy: "tech1", StyleNo: day}
		if err := s.SaveEntry(ctx, e); err != nil {
			t.Fatalf("SaveEntry %s: %v", day, err)
		}
	}

	cases := []struct {
		name     string
		from, to string
		want     []string // expected style_no values, newest first
	}{
		{"both bounds inclusive", "2024-05-01", "2024-05-02", []string{"2024-05-02", "2024-05-01"}},
		{"single day", "2024-05-02", "2024-05-02", []string{"2024-05-02"}},
		{"from only", "2024-05-03", "", []string{"2024-05-03"}},
		{"to only", "", "2024-05-01", []string{"2024-05-01"}},
		{"unbounded", "", "", []string{"2024-05-03", "2024-05-02", "2024-05-01"}},
		{"empty range", "2024-06-01", "2024-06-30", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := s.ReadEntries(ctx, tc.from, tc.to)
			if err != nil {
				t.Fatalf("ReadEntries: %v", err)
			}
			if len(entries) != len(tc.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tc.want))
			}
			for i, style := range tc.want {
				if entries[i].StyleNo != style {
					t.Errorf("entries[%d].StyleNo = %q, want %q", i, entries[i].StyleNo, style)
				}
			}
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Username: "tech1", PasswordHash: "hash", Role: models.RoleWashTech, FullName: "Tech One"}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("CreateUser did not assign an id")
	}

	err := s.CreateUser(ctx, &models.User{Username: "tech1", PasswordHash: "other", Role: models.RoleWashTech})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateUser(context.Background(), &models.User{Username: "x", PasswordHash: "h", Role: "supervisor"})
	if err == nil {
		t.Fatal("expected schema CHECK to reject unknown role")
	}
}
