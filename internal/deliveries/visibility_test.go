package deliveries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/alerts"
	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

func listIDs(t *testing.T, store *Store, actor authz.Actor, f ListFilter) []int64 {
	t.Helper()
	records, err := store.List(context.Background(), actor, f)
	require.NoError(t, err)
	ids := make([]int64, len(records))
	for i, d := range records {
		ids[i] = d.ID
	}
	return ids
}

func TestDriverSeesDeliveryTaggedWithDriverRecordID(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	seedDriver(t, gdb, 101, 16, 1)
	seedDelivery(t, gdb, &Delivery{ID: 5, CompanyID: 1, DriverID: i64(101), Status: StatusInTransit})
	seedDelivery(t, gdb, &Delivery{ID: 6, CompanyID: 1, DriverID: i64(999), Status: StatusPending})

	ids := listIDs(t, store, driverActor, ListFilter{})
	assert.Contains(t, ids, int64(5))
	assert.NotContains(t, ids, int64(6))
}

func TestDriverSeesDeliveryTaggedWithUserID(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	// Historical rows stored the users.id in driver_id.
	seedDriver(t, gdb, 101, 16, 1)
	seedDelivery(t, gdb, &Delivery{ID: 30, CompanyID: 1, DriverID: i64(16), Status: StatusPending})

	ids := listIDs(t, store, driverActor, ListFilter{})
	assert.Contains(t, ids, int64(30))
}

func TestDriverWithoutRecordFailsClosedToLiteralUserID(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	// No driver row at all: only rows literally tagged with the user id.
	seedDelivery(t, gdb, &Delivery{ID: 31, CompanyID: 1, DriverID: i64(16), Status: StatusPending})
	seedDelivery(t, gdb, &Delivery{ID: 32, CompanyID: 1, DriverID: i64(101), Status: StatusPending})

	ids := listIDs(t, store, driverActor, ListFilter{})
	assert.Equal(t, []int64{31}, ids)
}

func TestDriverKeepsSeeingOldOpenDeliveries(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	seedDriver(t, gdb, 101, 16, 1)
	lastWeek := time.Now().AddDate(0, 0, -7)
	seedDelivery(t, gdb, &Delivery{ID: 33, CompanyID: 1, DriverID: i64(101), Status: StatusPending, CreatedAt: lastWeek})
	seedDelivery(t, gdb, &Delivery{ID: 34, CompanyID: 1, DriverID: i64(101), Status: StatusDelivered, CreatedAt: lastWeek})

	ids := listIDs(t, store, driverActor, ListFilter{})
	assert.Contains(t, ids, int64(33), "old open deliveries stay visible to drivers")
	assert.NotContains(t, ids, int64(34), "old resolved deliveries fall outside the default window")
}

func TestAdminDefaultsToStrictlyToday(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	yesterday := time.Now().AddDate(0, 0, -1)
	seedDelivery(t, gdb, &Delivery{ID: 40, CompanyID: 1, Status: StatusPending, CreatedAt: yesterday})

	ids := listIDs(t, store, adminActor, ListFilter{})
	assert.Empty(t, ids, "admin default window is today only, no driver-style fallback")
}

func TestStatusFilterSuppressesDefaultWindow(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	yesterday := time.Now().AddDate(0, 0, -1)
	seedDelivery(t, gdb, &Delivery{ID: 41, CompanyID: 1, Status: StatusPending, CreatedAt: yesterday})

	ids := listIDs(t, store, adminActor, ListFilter{Status: "pending"})
	assert.Equal(t, []int64{41}, ids)
}

func TestExplicitDateRangeOverridesDefaults(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	seedDelivery(t, gdb, &Delivery{ID: 42, CompanyID: 1, Status: StatusDelivered, CreatedAt: threeDaysAgo})

	start := time.Now().AddDate(0, 0, -5).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	ids := listIDs(t, store, adminActor, ListFilter{StartDate: start, EndDate: end})
	assert.Equal(t, []int64{42}, ids)
}

func TestEffectiveDatePrefersExpectedDate(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	// Created yesterday but expected today: visible in today's window.
	seedDelivery(t, gdb, &Delivery{ID: 43, CompanyID: 1, Status: StatusPending, CreatedAt: yesterday, DeliveryDateExpected: &today})
	// Created today but expected tomorrow: outside today's window.
	seedDelivery(t, gdb, &Delivery{ID: 44, CompanyID: 1, Status: StatusPending, CreatedAt: today, DeliveryDateExpected: &tomorrow})

	ids := listIDs(t, store, adminActor, ListFilter{})
	assert.Contains(t, ids, int64(43))
	assert.NotContains(t, ids, int64(44))
}

func TestTenantIsolation(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	seedDriver(t, gdb, 101, 16, 1)
	seedDelivery(t, gdb, &Delivery{ID: 50, CompanyID: 2, DriverID: i64(101), Status: StatusPending})
	seedDelivery(t, gdb, &Delivery{ID: 51, CompanyID: 2, Status: StatusPending})

	for _, actor := range []authz.Actor{driverActor, adminActor} {
		records, err := store.List(context.Background(), actor, ListFilter{})
		require.NoError(t, err)
		for _, d := range records {
			assert.Equal(t, actor.CompanyID, d.CompanyID)
		}
	}
}

func TestNonDriverFilterByDriverResolvesBothIdentitySpaces(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	seedDriver(t, gdb, 101, 16, 1)
	// One row per identity space.
	seedDelivery(t, gdb, &Delivery{ID: 60, CompanyID: 1, DriverID: i64(101), Status: StatusPending})
	seedDelivery(t, gdb, &Delivery{ID: 61, CompanyID: 1, DriverID: i64(16), Status: StatusPending})

	ids := listIDs(t, store, adminActor, ListFilter{DriverID: 101, Status: StatusPending})
	assert.ElementsMatch(t, []int64{60, 61}, ids)
}

func TestNonDriverFilterFallsBackToLiteralMatch(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	// No driver row resolves 777; manually-entered ids still match literally.
	seedDelivery(t, gdb, &Delivery{ID: 62, CompanyID: 1, DriverID: i64(777), Status: StatusPending})

	ids := listIDs(t, store, adminActor, ListFilter{DriverID: 777, Status: StatusPending})
	assert.Equal(t, []int64{62}, ids)
}

func TestListOrdersOldestFirst(t *testing.T) {
	gdb := setupTestDB(t)
	store := newCoreStore(t, gdb, alerts.NewStore(gdb, 50, testLogger()))

	now := time.Now()
	seedDelivery(t, gdb, &Delivery{ID: 70, CompanyID: 1, Status: StatusPending, CreatedAt: now})
	seedDelivery(t, gdb, &Delivery{ID: 71, CompanyID: 1, Status: StatusPending, CreatedAt: now.Add(-2 * time.Hour)})
	seedDelivery(t, gdb, &Delivery{ID: 72, CompanyID: 1, Status: StatusPending, CreatedAt: now.Add(-time.Hour)})

	ids := listIDs(t, store, adminActor, ListFilter{Status: StatusPending})
	assert.Equal(t, []int64{71, 72, 70}, ids)
}
