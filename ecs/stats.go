package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage
type StorageStats struct {
	TotalEntityCount    int
	PendingDestroyCount int
	ComponentKindCount  int
	ComponentBreakdown  []ComponentStats
	SingletonCount      int
	SingletonTypes      []string
}

// ComponentStats describes one component column
type ComponentStats struct {
	Name  string
	Count int
}

// CollectStats walks the storage and summarises entity and component counts.
// Columns are reported sorted by kind name.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount:    s.liveCount,
		PendingDestroyCount: s.deadCount,
		ComponentKindCount:  len(s.columns),
		ComponentBreakdown:  make([]ComponentStats, 0, len(s.columns)),
		SingletonCount:      len(s.singletons),
		SingletonTypes:      make([]string, 0, len(s.singletons)),
	}

	for t, column := range s.columns {
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Name:  t.String(),
			Count: column.Len(),
		})
	}
	sort.Slice(stats.ComponentBreakdown, func(i, j int) bool {
		return stats.ComponentBreakdown[i].Name < stats.ComponentBreakdown[j].Name
	})

	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	return stats
}
