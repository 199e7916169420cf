package dto

// NamedEntityRequest covers create and rename payloads for both tags and
// ingredients.
type NamedEntityRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
