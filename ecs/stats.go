package ecs

import (
	"cmp"
	"slices"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage. Archetypes are ordered by ID.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for _, a := range s.archetypes {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		n := a.Len()
		stats.TotalEntityCount += n
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    n,
		})
	}
	slices.SortFunc(stats.ArchetypeBreakdown, func(a, b ArchetypeStats) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	return stats
}
