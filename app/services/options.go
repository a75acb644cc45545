package services

import (
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/repositories"
	"github.com/Rakhulsr/clothing-catalog-admin/app/schemas"
)

type DeletePolicy string

const (
	// DeleteRestrict refuses to delete while live dependents exist.
	DeleteRestrict DeletePolicy = "restrict"
	// DeleteCascade deletes dependents first, recursively.
	DeleteCascade DeletePolicy = "cascade"
	// DeleteOrphan leaves dependents pointing at the deleted row.
	DeleteOrphan DeletePolicy = "orphan"
)

func ParseDeletePolicy(s string) (DeletePolicy, bool) {
	switch p := DeletePolicy(s); p {
	case DeleteRestrict, DeleteCascade, DeleteOrphan:
		return p, true
	}
	return "", false
}

// Reference is a foreign key of T that must name live rows of Model.
type Reference[T any] struct {
	// Field is the input field the error is reported on.
	Field string
	Model any
	IDs   func(*T) []string
	// Match adds column equalities the referenced rows must satisfy.
	Match func(*T) map[string]any
}

// CrudOptions configures one entity kind.
type CrudOptions[T any] struct {
	Kind           models.Kind
	Schema         schemas.Schema[T]
	RevalidatePath string
	// UniqueFields is the ordered uniqueness key. Strings compare case-insensitively.
	UniqueFields []string
	// SoftDeleteField is empty when rows are always removed physically.
	SoftDeleteField string
	HardDelete      bool
	Include         []string
	References      []Reference[T]
	Dependents      []repositories.Dependent
	OnDelete        DeletePolicy
	// OmitOnCreate is passed to the insert, e.g. "Promotions.*" to link without upserting.
	OmitOnCreate []string
	// OwnedAssociations are removed together with a hard-deleted row.
	OwnedAssociations []string
}
