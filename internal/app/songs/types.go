package songs

import "github.com/cantoria-vocal/choir-manager-api/internal/domain"

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
	ProjectID  string
	Title      string
	Author     string
	Tone       string
	OrderIndex int
}

type UpdateInput struct {
	ProjectID  Optional[string] // may be null (detaches the song from a project)
	Title      Optional[string] // cannot be null
	Author     Optional[string]
	Tone       Optional[string]
	OrderIndex Optional[int]
}

// RegisterAssetInput describes a media file about to be uploaded for a song.
type RegisterAssetInput struct {
	Kind        domain.AssetKind
	Title       string
	FileName    string
	ContentType string
}

// RegisteredAsset pairs the stored asset with the single-use upload URL the
// client PUTs the file to.
type RegisteredAsset struct {
	Asset     domain.MediaAsset
	UploadURL string
}
