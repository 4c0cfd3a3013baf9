package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:events_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseSQLite(db) })
	return db
}

func TestSQLiteSink(t *testing.T) {
	db := initTestDB(t)

	legit := NewSQLiteSink(db, "run-1", "zta")
	for i := 0; i < 250; i++ {
		require.NoError(t, legit.Write(testEvent(i)))
	}
	attack := testEvent(1000)
	attack.AttackType = core.AttackLateralMovement
	attack.AttackPhase = core.PhaseLateralMovement
	require.NoError(t, legit.Write(attack))
	require.NoError(t, legit.Close())

	other := NewSQLiteSink(db, "run-1", "baseline")
	require.NoError(t, other.Write(testEvent(1)))
	require.NoError(t, other.Close())

	ctx := context.Background()

	all, err := QueryEvents(ctx, db, EventQuery{RunID: "run-1", Scenario: "zta"})
	require.NoError(t, err)
	require.Len(t, all, 251)
	assert.Equal(t, testEvent(0).IP, all[0].IP)
	assert.True(t, all[250].IsAttack())
	assert.True(t, testEvent(0).Timestamp.Equal(all[0].Timestamp))

	attacks, err := QueryEvents(ctx, db, EventQuery{AttackOnly: true})
	require.NoError(t, err)
	require.Len(t, attacks, 1)
	assert.Equal(t, core.PhaseLateralMovement, attacks[0].AttackPhase)

	limited, err := QueryEvents(ctx, db, EventQuery{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, limited, 5)
}

func TestQueryScenarios(t *testing.T) {
	db := initTestDB(t)
	for _, sc := range []string{"zta", "baseline", "zta"} {
		s := NewSQLiteSink(db, "run-1", sc)
		require.NoError(t, s.Write(testEvent(1)))
		require.NoError(t, s.Close())
	}
	s := NewSQLiteSink(db, "run-2", "other")
	require.NoError(t, s.Write(testEvent(2)))
	require.NoError(t, s.Close())

	ctx := context.Background()

	names, err := QueryScenarios(ctx, db, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"baseline", "zta"}, names)

	names, err = QueryScenarios(ctx, db, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"baseline", "other", "zta"}, names)
}
