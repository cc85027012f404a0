package debugui

import (
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/debugui/catalog"
)

type EntityBrowserComponent struct {
	rows               []catalog.EntityRow
	lastFrame          uint64
	sortColumn         int
	sortAscending      bool
	selectedEntityId   ecs.EntityId
	filterText         string
	filterKind         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type ComponentViewerComponent struct {
	kinds         []catalog.KindRow
	selectedKind  string
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedKinds map[string]bool
}
