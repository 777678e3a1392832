package songrepo

import (
	"testing"

	"github.com/cantoria-vocal/choir-manager-api/internal/adapters/contracttest"
	memmembers "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/memberrepo"
	memberrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
	songrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/songrepo"
)

func TestContract_SongRepo(t *testing.T) {
	contracttest.RunSongRepo(t,
		func(t *testing.T) (memberrepoport.Repository, func()) {
			t.Helper()
			return memmembers.NewRepo(), nil
		},
		func(t *testing.T) (songrepoport.Repository, func()) {
			t.Helper()
			return NewRepo(), nil
		},
	)
}
