package activities

import (
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

type CreateInput struct {
	Title     string
	Kind      domain.ActivityKind
	EventDate time.Time
	Location  *string
	Notes     *string
}

type UpdateInput struct {
	Title     Optional[string]              // cannot be null
	Kind      Optional[domain.ActivityKind] // cannot be null
	EventDate Optional[time.Time]           // cannot be null
	Location  Optional[string]              // may be null (clears the location)
	Notes     Optional[string]              // may be null (clears the notes)
}
