package sql

import (
	"context"
	"fmt"
	"recipe/internal/entity"
)

// CreateResource inserts an owned attribute.
func (r *GormRepository) CreateResource(ctx context.Context, resource *entity.DbResource) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if resource == nil {
		return fmt.Errorf("resource is nil")
	}
	if !resource.Kind.Valid() {
		return fmt.Errorf("invalid resource kind %q", resource.Kind)
	}
	if resource.UserID == 0 {
		return fmt.Errorf("resource owner is required")
	}
	return r.db.WithContext(ctx).Create(resource).Error
}

// ListResources returns the owner's attributes of one kind, name descending,
// ties broken by insertion order.
func (r *GormRepository) ListResources(ctx context.Context, kind entity.ResourceKind, ownerID uint) ([]entity.DbResource, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid resource kind %q", kind)
	}

	var items []entity.DbResource
	err := r.db.WithContext(ctx).
		Where("kind = ? AND user_id = ?", kind, ownerID).
		Order("name DESC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountResources counts the owner's attributes of one kind.
func (r *GormRepository) CountResources(ctx context.Context, kind entity.ResourceKind, ownerID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.DbResource{}).
		Where("kind = ? AND user_id = ?", kind, ownerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
