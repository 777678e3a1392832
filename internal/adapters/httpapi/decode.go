package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/cantoria-vocal/choir-manager-api/internal/app/members"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/songs"
)

// maxBodyBytes caps request bodies; all API payloads are small JSON documents.
const maxBodyBytes = 1 << 20

func readBody(r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func dateFromTime(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

// The Optional types are duplicated per app package (following the convention
// used throughout), so each package gets its own converter.

func optionalString(n nullable.Nullable[string]) members.Optional[string] {
	if !n.IsSpecified() {
		return members.Unspecified[string]()
	}
	if n.IsNull() {
		return members.Null[string]()
	}
	v, _ := n.Get()
	return members.Some(v)
}

func songsOptionalString(n nullable.Nullable[string]) songs.Optional[string] {
	if !n.IsSpecified() {
		return songs.Unspecified[string]()
	}
	if n.IsNull() {
		return songs.Null[string]()
	}
	v, _ := n.Get()
	return songs.Some(v)
}

func songsOptionalInt(n nullable.Nullable[int]) songs.Optional[int] {
	if !n.IsSpecified() {
		return songs.Unspecified[int]()
	}
	if n.IsNull() {
		return songs.Null[int]()
	}
	v, _ := n.Get()
	return songs.Some(v)
}
