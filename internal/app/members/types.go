package members

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

type CreateMyProfileInput struct {
	FullName  string
	Email     string
	AvatarURL *string
	GroupRole string
}

type UpdateMyProfileInput struct {
	FullName  Optional[string] // cannot be null
	Email     Optional[string] // cannot be null
	AvatarURL Optional[string] // may be null (clears the avatar)
	GroupRole Optional[string] // cannot be null
}
