/*
seed.go - Demo tenant loader

PURPOSE:
  Populates an empty database with a realistic demo tenant so the server is
  usable immediately after first start: a small Hungarian team, the leave
  type catalogue, current-year balances, and a handful of sample requests
  in every lifecycle state.

DEMO ACCOUNTS:
  toth.adam@demo.hu    company_admin, 25 days annual leave
  kiss.judit@demo.hu   staff, 22 days
  nagy.gabor@demo.hu   staff, 28 days
  varga.eva@demo.hu    staff, 20 days

NOTE:
  Seeding only runs when the users table is empty. Only use the demo secret
  and accounts in development environments.
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/leave"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/store/sqlite"
)

// DemoTenantID is the tenant all seeded records belong to.
const DemoTenantID = "tenant-demo"

type seedUser struct {
	id     string
	email  string
	name   string
	role   identity.Role
	annual int
}

var seedUsers = []seedUser{
	{"user-toth-adam", "toth.adam@demo.hu", "Tóth Ádám", identity.RoleCompanyAdmin, 25},
	{"user-kiss-judit", "kiss.judit@demo.hu", "Kiss Judit", identity.RoleStaff, 22},
	{"user-nagy-gabor", "nagy.gabor@demo.hu", "Nagy Gábor", identity.RoleStaff, 28},
	{"user-varga-eva", "varga.eva@demo.hu", "Varga Éva", identity.RoleStaff, 20},
}

type seedLeaveType struct {
	id     string
	name   string
	code   string
	isPaid bool
	color  string
}

var seedLeaveTypes = []seedLeaveType{
	{"type-annual", "Éves szabadság", "annual", true, "#2563eb"},
	{"type-sick", "Betegszabadság", "sick", true, "#dc2626"},
	{"type-unpaid", "Fizetés nélküli szabadság", "unpaid", false, "#6b7280"},
}

// sick and unpaid day allowances are flat for everyone
const (
	seedSickDays   = 15
	seedUnpaidDays = 30
)

type seedRequest struct {
	id         string
	userID     string
	typeCode   string
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
	status     leave.Status
	reason     string
}

// Sample requests anchored to the current year so the calendar and the
// pending queue have content on first start. Day counts are computed from
// the working-day calendar, and the seeded balances carry the matching
// pending/used reservations.
var seedRequests = []seedRequest{
	{"req-csaladi-nyaralas", "user-kiss-judit", "annual", time.February, 10, time.February, 14, leave.StatusApproved, "Családi nyaralás"},
	{"req-hosszu-hetvege", "user-nagy-gabor", "annual", time.March, 15, time.March, 17, leave.StatusPending, "Hosszú hétvége"},
	{"req-uzleti-talalkozo", "user-nagy-gabor", "annual", time.February, 20, time.February, 21, leave.StatusRejected, "Üzleti találkozó"},
	{"req-orvosi-vizsgalat", "user-kiss-judit", "sick", time.March, 5, time.March, 5, leave.StatusPending, "Orvosi vizsgálat"},
}

const seedRejectionReason = "Nincs elegendő fedezet ebben az időszakban"

// SeedDemoTenant loads the demo tenant when the database is empty.
func SeedDemoTenant(ctx context.Context, store *sqlite.Store) error {
	existing, err := store.ListUsers(ctx, DemoTenantID)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	typeIDs := make(map[string]string, len(seedLeaveTypes))
	for _, lt := range seedLeaveTypes {
		typeIDs[lt.code] = lt.id
		err := store.SaveLeaveType(ctx, leave.LeaveType{
			ID:               lt.id,
			TenantID:         DemoTenantID,
			Name:             lt.name,
			Code:             lt.code,
			IsPaid:           lt.isPaid,
			Color:            lt.color,
			RequiresApproval: true,
		})
		if err != nil {
			return fmt.Errorf("seed leave type %s: %w", lt.code, err)
		}
	}

	year := time.Now().Year()
	now := time.Now().UTC()
	cal := calendar.Hungarian()

	// Plan the sample requests first so the seeded balances can carry the
	// matching pending/used reservations.
	type plannedRequest struct {
		record leave.Request
		target leave.Status
	}
	var planned []plannedRequest
	pendingDays := make(map[leave.BalanceKey]decimal.Decimal)
	usedDays := make(map[leave.BalanceKey]decimal.Decimal)
	for _, sr := range seedRequests {
		start := calendar.Date(year, sr.startMonth, sr.startDay)
		end := calendar.Date(year, sr.endMonth, sr.endDay)
		days := cal.WorkingDays(start, end)
		if days == 0 {
			// the range falls entirely on weekends/holidays this year
			continue
		}

		record := leave.Request{
			ID:          sr.id,
			TenantID:    DemoTenantID,
			UserID:      sr.userID,
			LeaveTypeID: typeIDs[sr.typeCode],
			StartDate:   start,
			EndDate:     end,
			DaysCount:   days,
			Status:      leave.StatusPending,
			Reason:      sr.reason,
			CreatedAt:   now.AddDate(0, 0, -3),
			UpdatedAt:   now.AddDate(0, 0, -3),
		}

		key := record.BalanceKey()
		switch sr.status {
		case leave.StatusApproved:
			usedDays[key] = usedDays[key].Add(decimal.NewFromInt(int64(days)))
		case leave.StatusPending:
			pendingDays[key] = pendingDays[key].Add(decimal.NewFromInt(int64(days)))
		}

		planned = append(planned, plannedRequest{record: record, target: sr.status})
	}

	for _, u := range seedUsers {
		err := store.SaveUser(ctx, identity.User{
			ID:       u.id,
			TenantID: DemoTenantID,
			Email:    u.email,
			FullName: u.name,
			Role:     u.role,
			IsActive: true,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}

		for _, lt := range seedLeaveTypes {
			total := u.annual
			switch lt.code {
			case "sick":
				total = seedSickDays
			case "unpaid":
				total = seedUnpaidDays
			}
			key := leave.BalanceKey{
				TenantID:    DemoTenantID,
				UserID:      u.id,
				LeaveTypeID: lt.id,
				Year:        year,
			}
			err := store.SaveBalance(ctx, leave.Balance{
				ID:          uuid.NewString(),
				TenantID:    DemoTenantID,
				UserID:      u.id,
				LeaveTypeID: lt.id,
				Year:        year,
				TotalDays:   decimal.NewFromInt(int64(total)),
				UsedDays:    usedDays[key],
				PendingDays: pendingDays[key],
			})
			if err != nil {
				return fmt.Errorf("seed balance for %s/%s: %w", u.email, lt.code, err)
			}
		}
	}

	for _, pr := range planned {
		if err := store.CreateRequest(ctx, &pr.record); err != nil {
			return fmt.Errorf("seed request %s: %w", pr.record.ID, err)
		}

		switch pr.target {
		case leave.StatusApproved:
			meta := leave.StatusMeta{ActorID: "user-toth-adam", At: now.AddDate(0, 0, -2)}
			if _, err := store.UpdateRequestStatus(ctx, pr.record.ID, leave.StatusPending, leave.StatusApproved, meta); err != nil {
				return fmt.Errorf("seed request %s: %w", pr.record.ID, err)
			}
		case leave.StatusRejected:
			meta := leave.StatusMeta{ActorID: "user-toth-adam", At: now.AddDate(0, 0, -1), Reason: seedRejectionReason}
			if _, err := store.UpdateRequestStatus(ctx, pr.record.ID, leave.StatusPending, leave.StatusRejected, meta); err != nil {
				return fmt.Errorf("seed request %s: %w", pr.record.ID, err)
			}
		}
	}

	return nil
}
