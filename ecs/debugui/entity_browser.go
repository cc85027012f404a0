package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/debugui/catalog"
)

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	if maxEntitiesPerPage <= 0 {
		maxEntitiesPerPage = 100
	}
	return EntityBrowserComponent{
		sortColumn:         catalog.ColumnID,
		sortAscending:      true,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildIfNeeded(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterKind = ""
	}
	if eb.filterKind != "" {
		imgui.Text(fmt.Sprintf("Kind: %s", eb.filterKind))
	}

	filtered := catalog.Filter(eb.rows, eb.filterText, eb.filterKind)
	if eb.currentPage*eb.maxEntitiesPerPage >= len(filtered) {
		eb.currentPage = 0
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			catalog.SortEntities(eb.rows, eb.sortColumn, eb.sortAscending)
			filtered = catalog.Filter(eb.rows, eb.filterText, eb.filterKind)
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			row := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", row.ID)
			if !row.Alive {
				label += " (dead)"
			}
			if imgui.SelectableBoolV(label, eb.selectedEntityId == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = row.ID
			}

			imgui.TableNextColumn()
			imgui.Text(row.Tag)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Components)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// rows are rebuilt once per simulated frame
func (eb *EntityBrowserComponent) rebuildIfNeeded(world *ecs.World) {
	if eb.rows != nil && eb.lastFrame == world.Frame() {
		return
	}
	eb.lastFrame = world.Frame()
	eb.rows = catalog.Entities(world)
	catalog.SortEntities(eb.rows, eb.sortColumn, eb.sortAscending)
}

// FilterKind restricts the browser to entities holding the named component kind
func (eb *EntityBrowserComponent) FilterKind(kind string) {
	eb.filterKind = kind
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
