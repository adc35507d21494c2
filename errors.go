package archon

import "fmt"

// DuplicateEntityError is raised when a slot is allocated for an entity id
// that already has a slot in the same archetype — a precondition violation:
// the caller broke the "ids are unique" invariant.
type DuplicateEntityError struct {
	EntityID EntityID
}

func (e DuplicateEntityError) Error() string {
	return fmt.Sprintf("archon: entity %d already exists", e.EntityID)
}

// UnknownEntityError is raised when an operation is given an entity id with
// no live slot (never allocated, or already removed).
type UnknownEntityError struct {
	EntityID EntityID
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("archon: entity %d does not exist", e.EntityID)
}

// MissingComponentError is raised by Get/RemoveComponent when the entity's
// archetype does not carry the requested component type.
type MissingComponentError struct {
	EntityID EntityID
	Type     string
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("archon: entity %d has no component %s", e.EntityID, e.Type)
}

// ComponentExistsError is raised by AddComponent when the entity already
// carries the component type being added.
type ComponentExistsError struct {
	EntityID EntityID
	Type     string
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("archon: entity %d already has component %s", e.EntityID, e.Type)
}

// EntityCapacityError is raised when AddEntity would exceed MaxEntities.
type EntityCapacityError struct {
	MaxEntities int
}

func (e EntityCapacityError) Error() string {
	return fmt.Sprintf("archon: entity capacity of %d exceeded", e.MaxEntities)
}

// ComponentCapacityError is raised when RegisterComponent would exceed
// MaxComponents distinct registered types.
type ComponentCapacityError struct {
	MaxComponents int
}

func (e ComponentCapacityError) Error() string {
	return fmt.Sprintf("archon: component capacity of %d exceeded", e.MaxComponents)
}
