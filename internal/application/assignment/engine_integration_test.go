package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	callerDomain "github.com/orris-inc/leadrouter/internal/domain/caller"
	"github.com/orris-inc/leadrouter/internal/domain/shared/events"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/infrastructure/repository"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	sharedDB "github.com/orris-inc/leadrouter/internal/shared/db"
)

func init() {
	biztime.MustInit("Asia/Kolkata")
}

func setupEngineTestDB(t *testing.T) *gorm.DB {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(
		&models.CallerModel{},
		&models.CallerStateModel{},
		&models.LeadModel{},
		&models.AssignmentModel{},
		&models.RRPointerModel{},
		&models.DailyCounterModel{},
	)
	require.NoError(t, err)

	return database
}

// insertCaller writes a caller fixture directly through the persistence
// mapper. Caller administration is out of the engine's scope, so the
// engine package has no write path of its own for callers; tests seed
// fixtures the way a (not-yet-built) admin surface eventually would.
func insertCaller(t *testing.T, database *gorm.DB, name string, dailyLimit int, states []string) uint {
	t.Helper()

	c, err := callerDomain.NewCaller(name, "agent", nil, dailyLimit, states)
	require.NoError(t, err)

	mapper := mappers.NewCallerMapper()
	model, err := mapper.ToModel(c)
	require.NoError(t, err)

	require.NoError(t, database.Create(model).Error)
	return model.ID
}

func newTestEngine(database *gorm.DB, clock clockwork.Clock) (*Engine, *events.InMemoryEventDispatcher) {
	log := noopLogger{}
	dispatcher := events.NewInMemoryEventDispatcher(16)
	_ = dispatcher.Start()

	engine := NewEngine(
		repository.NewLeadRepository(database, log),
		repository.NewAssignmentRepository(database, log),
		repository.NewCallerRepository(database, log),
		repository.NewFairnessStore(database, log),
		repository.NewDailyCounterStore(database, log),
		sharedDB.NewTransactionManager(database),
		dispatcher,
		clock,
		log,
	)

	return engine, dispatcher
}

func counterOf(t *testing.T, database *gorm.DB, callerID uint, businessDate string) int {
	t.Helper()

	var row models.DailyCounterModel
	err := database.Where("caller_id = ? AND business_date = ?", callerID, businessDate).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return row.Count
}

func pointerOf(t *testing.T, database *gorm.DB, key string) *uint {
	t.Helper()

	var row models.RRPointerModel
	err := database.Where("key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	require.NoError(t, err)
	return row.LastCallerID
}

// Scenario A — state round robin. c1, c2 created in order, both active,
// both bound to "maharashtra", both uncapped. L1, L2, L3 arrive with that
// state and must rotate c1, c2, c1.
func TestEngine_ScenarioA_StateRoundRobin(t *testing.T) {
	database := setupEngineTestDB(t)
	clock := clockwork.NewFakeClock()
	engine, _ := newTestEngine(database, clock)
	ctx := context.Background()

	c1 := insertCaller(t, database, "c1", 10, []string{"maharashtra"})
	c2 := insertCaller(t, database, "c2", 10, []string{"maharashtra"})

	base := clock.Now()
	l1, err := engine.Assign(ctx, AssignCommand{Phone: "+91100001", SourceTimestamp: base.Add(1 * time.Second), State: "maharashtra"})
	require.NoError(t, err)
	l2, err := engine.Assign(ctx, AssignCommand{Phone: "+91100002", SourceTimestamp: base.Add(2 * time.Second), State: "maharashtra"})
	require.NoError(t, err)
	l3, err := engine.Assign(ctx, AssignCommand{Phone: "+91100003", SourceTimestamp: base.Add(3 * time.Second), State: "maharashtra"})
	require.NoError(t, err)

	require.NotNil(t, l1.CallerID)
	assert.Equal(t, c1, *l1.CallerID)
	assert.Equal(t, ReasonStateRoundRobin, l1.Reason)

	require.NotNil(t, l2.CallerID)
	assert.Equal(t, c2, *l2.CallerID)

	require.NotNil(t, l3.CallerID)
	assert.Equal(t, c1, *l3.CallerID)

	businessDate := biztime.BusinessDate(clock.Now())
	assert.Equal(t, 2, counterOf(t, database, c1, businessDate))
	assert.Equal(t, 1, counterOf(t, database, c2, businessDate))

	pointer := pointerOf(t, database, "state:maharashtra")
	require.NotNil(t, pointer)
	assert.Equal(t, c1, *pointer)
}

// Scenario B — cap fallback to global. c1 (karnataka, limit 1), c2
// (global, limit 10). L1 takes c1; L2 finds c1 at cap and falls back to
// the only global option, c2.
func TestEngine_ScenarioB_CapFallbackToGlobal(t *testing.T) {
	database := setupEngineTestDB(t)
	clock := clockwork.NewFakeClock()
	engine, _ := newTestEngine(database, clock)
	ctx := context.Background()

	c1 := insertCaller(t, database, "c1", 1, []string{"karnataka"})
	c2 := insertCaller(t, database, "c2", 10, nil)

	base := clock.Now()
	l1, err := engine.Assign(ctx, AssignCommand{Phone: "+91200001", SourceTimestamp: base.Add(1 * time.Second), State: "karnataka"})
	require.NoError(t, err)
	require.NotNil(t, l1.CallerID)
	assert.Equal(t, c1, *l1.CallerID)
	assert.Equal(t, ReasonStateRoundRobin, l1.Reason)

	l2, err := engine.Assign(ctx, AssignCommand{Phone: "+91200002", SourceTimestamp: base.Add(2 * time.Second), State: "karnataka"})
	require.NoError(t, err)
	require.NotNil(t, l2.CallerID)
	assert.Equal(t, c2, *l2.CallerID)
	assert.Equal(t, ReasonGlobalRoundRobin, l2.Reason)
}

// Scenario C — all capped. A single global caller with limit 1 absorbs
// L1; L2 finds it capped and is persisted unassigned.
func TestEngine_ScenarioC_AllCapped(t *testing.T) {
	database := setupEngineTestDB(t)
	clock := clockwork.NewFakeClock()
	engine, _ := newTestEngine(database, clock)
	ctx := context.Background()

	c1 := insertCaller(t, database, "c1", 1, nil)

	base := clock.Now()
	l1, err := engine.Assign(ctx, AssignCommand{Phone: "+91300001", SourceTimestamp: base.Add(1 * time.Second)})
	require.NoError(t, err)
	require.NotNil(t, l1.CallerID)
	assert.Equal(t, c1, *l1.CallerID)

	l2, err := engine.Assign(ctx, AssignCommand{Phone: "+91300002", SourceTimestamp: base.Add(2 * time.Second)})
	require.NoError(t, err)
	assert.Nil(t, l2.CallerID)
	assert.Equal(t, ReasonUnassignedCapReached, l2.Reason)
	assert.False(t, l2.IsAssigned())
}

// Scenario D — no eligible callers at all.
func TestEngine_ScenarioD_NoEligibleCallers(t *testing.T) {
	database := setupEngineTestDB(t)
	clock := clockwork.NewFakeClock()
	engine, _ := newTestEngine(database, clock)
	ctx := context.Background()

	l1, err := engine.Assign(ctx, AssignCommand{Phone: "+91400001", SourceTimestamp: clock.Now()})
	require.NoError(t, err)
	assert.Nil(t, l1.CallerID)
	assert.Equal(t, ReasonUnassignedNoEligible, l1.Reason)
}

// Scenario E — idempotent retry. Resubmitting the identical payload must
// return the same outcome without moving any counter or pointer.
func TestEngine_ScenarioE_IdempotentRetry(t *testing.T) {
	database := setupEngineTestDB(t)
	clock := clockwork.NewFakeClock()
	engine, _ := newTestEngine(database, clock)
	ctx := context.Background()

	c1 := insertCaller(t, database, "c1", 10, nil)
	sourceTimestamp := clock.Now()

	cmd := AssignCommand{Phone: "+911234", SourceTimestamp: sourceTimestamp}

	first, err := engine.Assign(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, first.CallerID)
	assert.Equal(t, c1, *first.CallerID)
	assert.False(t, first.Replayed)

	businessDate := biztime.BusinessDate(clock.Now())
	countAfterFirst := counterOf(t, database, c1, businessDate)

	second, err := engine.Assign(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, second.CallerID)
	assert.Equal(t, *first.CallerID, *second.CallerID)
	assert.Equal(t, first.LeadID, second.LeadID)
	assert.True(t, second.Replayed)

	assert.Equal(t, countAfterFirst, counterOf(t, database, c1, businessDate))
}

// Scenario F — manual reassignment, same business date. L1 lands on c1,
// the first caller in the unrotated global order; reassigning it to c2
// must move both counters and flip the reason to manual_reassign.
func TestEngine_ScenarioF_ManualReassignmentSameDay(t *testing.T) {
	database := setupEngineTestDB(t)
	clock := clockwork.NewFakeClock()
	engine, _ := newTestEngine(database, clock)
	ctx := context.Background()

	c1 := insertCaller(t, database, "c1", 10, nil)
	c2 := insertCaller(t, database, "c2", 10, nil)

	l1, err := engine.Assign(ctx, AssignCommand{Phone: "+91500001", SourceTimestamp: clock.Now()})
	require.NoError(t, err)
	require.NotNil(t, l1.CallerID)
	assert.Equal(t, c1, *l1.CallerID)

	businessDate := biztime.BusinessDate(clock.Now())
	assert.Equal(t, 1, counterOf(t, database, c1, businessDate))
	assert.Equal(t, 0, counterOf(t, database, c2, businessDate))

	reassigned, err := engine.Reassign(ctx, ReassignCommand{LeadID: l1.LeadID, TargetCallerID: &c2})
	require.NoError(t, err)
	require.NotNil(t, reassigned.CallerID)
	assert.Equal(t, c2, *reassigned.CallerID)
	assert.Equal(t, ReasonManualReassign, reassigned.Reason)

	assert.Equal(t, 0, counterOf(t, database, c1, businessDate))
	assert.Equal(t, 1, counterOf(t, database, c2, businessDate))

	current, err := repository.NewAssignmentRepository(database, noopLogger{}).CurrentForLead(ctx, l1.LeadID)
	require.NoError(t, err)
	require.NotNil(t, current)
	require.NotNil(t, current.CallerID())
	assert.Equal(t, c2, *current.CallerID())
	assert.Equal(t, ReasonManualReassign, current.Reason())
}
