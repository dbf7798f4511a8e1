package entity

import "time"

// ResourceKind distinguishes the named, owned recipe attributes.
type ResourceKind string

const (
	KindTag        ResourceKind = "tag"
	KindIngredient ResourceKind = "ingredient"
)

// ResourceKinds lists every kind served by the API.
var ResourceKinds = []ResourceKind{KindTag, KindIngredient}

// MaxResourceNameLength mirrors the column size.
const MaxResourceNameLength = 255

// Valid reports whether k is a known kind.
func (k ResourceKind) Valid() bool {
	switch k {
	case KindTag, KindIngredient:
		return true
	default:
		return false
	}
}

// Path is the URL segment under /recipe.
func (k ResourceKind) Path() string {
	switch k {
	case KindTag:
		return "tags"
	case KindIngredient:
		return "ingredients"
	default:
		return string(k) + "s"
	}
}

// DbResource is a name owned by one user, tagged with its kind.
type DbResource struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Kind      ResourceKind `gorm:"column:kind;type:varchar(32);not null;index:idx_recipe_attributes_owner,priority:2" json:"kind"`
	UserID    uint         `gorm:"column:user_id;not null;index:idx_recipe_attributes_owner,priority:1" json:"user_id"`
	Name      string       `gorm:"column:name;type:varchar(255);not null" json:"name"`
}

// TableName 指定表名
func (DbResource) TableName() string {
	return "recipe_attributes"
}

// Resource is the client view of an owned attribute.
type Resource struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ResourceCreateRequest is the create payload; the owner is never read from it.
type ResourceCreateRequest struct {
	Name string `json:"name" binding:"required"`
}
