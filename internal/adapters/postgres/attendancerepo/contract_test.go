package attendancerepo

import (
	"testing"

	"github.com/cantoria-vocal/choir-manager-api/internal/adapters/contracttest"
	pgactivities "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/activityrepo"
	pgmembers "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/memberrepo"
	"github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/testutil"
	activityrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
	attendancerepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/attendancerepo"
	memberrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
)

func TestContract_PostgresActivityAndAttendanceRepos(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunActivityAndAttendanceRepos(t,
		func(t *testing.T) (memberrepoport.Repository, func()) {
			t.Helper()
			return pgmembers.NewRepo(pool), nil
		},
		func(t *testing.T) (activityrepoport.Repository, func()) {
			t.Helper()
			return pgactivities.NewRepo(pool), nil
		},
		func(t *testing.T) (attendancerepoport.Repository, func()) {
			t.Helper()
			return NewRepo(pool), nil
		},
	)
}
