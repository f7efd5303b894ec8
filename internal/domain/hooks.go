package domain

import "context"

// Hook is a callback invoked around catalog service operations.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores hooks for catalog service lifecycle events.
// Entity-specific services register hooks for code generation and
// uniqueness checks.
type HookRegistry[T any] struct {
	beforeCreate []Hook[T]
	beforeUpdate []Hook[T]
}

// NewHookRegistry creates an empty registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{}
}

// OnBeforeCreate registers a hook invoked before Create.
func (r *HookRegistry[T]) OnBeforeCreate(h Hook[T]) {
	r.beforeCreate = append(r.beforeCreate, h)
}

// OnBeforeUpdate registers a hook invoked before Update.
func (r *HookRegistry[T]) OnBeforeUpdate(h Hook[T]) {
	r.beforeUpdate = append(r.beforeUpdate, h)
}

// RunBeforeCreate executes all before-create hooks in registration order.
func (r *HookRegistry[T]) RunBeforeCreate(ctx context.Context, entity T) error {
	for _, h := range r.beforeCreate {
		if err := h(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// RunBeforeUpdate executes all before-update hooks in registration order.
func (r *HookRegistry[T]) RunBeforeUpdate(ctx context.Context, entity T) error {
	for _, h := range r.beforeUpdate {
		if err := h(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}
