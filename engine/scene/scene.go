package scene

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/spaghettifunk/starlet/engine/core"
)

type Entity struct {
	ID   uuid.UUID
	Name string
}

type componentStore struct {
	order []uuid.UUID
	items map[uuid.UUID]any
}

// Scene holds entities, their components and the systems that update them.
type Scene struct {
	Name     string
	entities []Entity
	stores   map[reflect.Type]*componentStore
	systems  []System
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:   name,
		stores: make(map[reflect.Type]*componentStore),
	}
}

func (s *Scene) CreateEntity(name string) Entity {
	e := Entity{ID: uuid.New(), Name: name}
	s.entities = append(s.entities, e)
	return e
}

func (s *Scene) Entities() []Entity {
	return s.entities
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent attaches c to the entity, replacing a component of the same type.
func AddComponent[T any](s *Scene, entity uuid.UUID, c *T) *T {
	key := typeKey[T]()
	store, ok := s.stores[key]
	if !ok {
		store = &componentStore{items: make(map[uuid.UUID]any)}
		s.stores[key] = store
	}
	if _, exists := store.items[entity]; !exists {
		store.order = append(store.order, entity)
	}
	store.items[entity] = c
	return c
}

func GetComponent[T any](s *Scene, entity uuid.UUID) (*T, bool) {
	store, ok := s.stores[typeKey[T]()]
	if !ok {
		return nil, false
	}
	c, ok := store.items[entity]
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// ComponentsOfType returns every component of type T in insertion order.
func ComponentsOfType[T any](s *Scene) []*T {
	store, ok := s.stores[typeKey[T]()]
	if !ok {
		return nil
	}
	out := make([]*T, 0, len(store.order))
	for _, id := range store.order {
		out = append(out, store.items[id].(*T))
	}
	return out
}

// EntitiesWith returns the ids of entities owning a component of type T.
func EntitiesWith[T any](s *Scene) []uuid.UUID {
	store, ok := s.stores[typeKey[T]()]
	if !ok {
		return nil
	}
	return append([]uuid.UUID(nil), store.order...)
}

// ActiveCamera returns the first camera flagged active, else the first camera.
func (s *Scene) ActiveCamera() *Camera {
	cameras := ComponentsOfType[Camera](s)
	for _, c := range cameras {
		if c.Active {
			return c
		}
	}
	if len(cameras) > 0 {
		return cameras[0]
	}
	return nil
}

// RegisterSystem appends a system. Systems update in registration order.
func (s *Scene) RegisterSystem(system System) {
	s.systems = append(s.systems, system)
	core.LogDebugOp("Scene", "registerSystem", "Registered system %s", system.Name())
}

func (s *Scene) Systems() []System {
	return s.systems
}

func (s *Scene) UpdateSystems(input InputState, deltaTime float64) {
	for _, system := range s.systems {
		system.Update(s, input, deltaTime)
	}
}
