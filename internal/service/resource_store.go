package service

import (
	"context"
	"fmt"
	"recipe/internal/entity"
	"recipe/internal/metrics"
	"recipe/internal/model"
	"strings"
	"unicode/utf8"
)

// ResourceStore serves one kind of owned attribute. Every operation is scoped
// to the owner passed in; the owner is never taken from client input.
type ResourceStore struct {
	repo model.Repository
	kind entity.ResourceKind
}

// NewResourceStore 创建指定类型的资源存储
func NewResourceStore(repo model.Repository, kind entity.ResourceKind) *ResourceStore {
	return &ResourceStore{repo: repo, kind: kind}
}

// Kind returns the served kind.
func (s *ResourceStore) Kind() entity.ResourceKind {
	return s.kind
}

// List returns the owner's records, name descending.
func (s *ResourceStore) List(ctx context.Context, owner *entity.DbUser) ([]entity.DbResource, error) {
	if owner == nil || owner.ID == 0 {
		return nil, ErrAuthentication
	}
	items, err := s.repo.ListResources(ctx, s.kind, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind.Path(), err)
	}
	return items, nil
}

// Create stores a new record stamped with owner.
func (s *ResourceStore) Create(ctx context.Context, owner *entity.DbUser, name string) (*entity.DbResource, error) {
	if owner == nil || owner.ID == 0 {
		return nil, ErrAuthentication
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "this field may not be blank")
	}
	if utf8.RuneCountInString(name) > entity.MaxResourceNameLength {
		return nil, NewValidationError("name", fmt.Sprintf("ensure this field has no more than %d characters", entity.MaxResourceNameLength))
	}

	resource := &entity.DbResource{Kind: s.kind, UserID: owner.ID, Name: name}
	if err := s.repo.CreateResource(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}
	metrics.ResourcesCreatedTotal.WithLabelValues(string(s.kind)).Inc()
	return resource, nil
}

// Count returns how many records the owner has.
func (s *ResourceStore) Count(ctx context.Context, owner *entity.DbUser) (int64, error) {
	if owner == nil || owner.ID == 0 {
		return 0, ErrAuthentication
	}
	return s.repo.CountResources(ctx, s.kind, owner.ID)
}
