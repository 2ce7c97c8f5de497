package ecs

// EntityId packs the archetype ID into the upper 32 bits and the slot index
// within that archetype into the lower 32 bits.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the ID.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a long-lived handle to an entity. Storage clears Id (sets it to
// zero) when the entity is deleted, so holders can detect dangling links.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the ref still points at a live entity.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}
