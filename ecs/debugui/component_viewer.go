package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/debugui/catalog"
)

func NewComponentViewerComponent() ComponentViewerComponent {
	return ComponentViewerComponent{
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render draws the component column table and returns the kind clicked this
// frame, or "" when nothing was clicked
func (cv *ComponentViewerComponent) Render(world *ecs.World) string {
	if !imgui.BeginV("Component Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	cv.kinds = catalog.Kinds(world)
	catalog.SortKinds(cv.kinds, cv.sortColumn, cv.sortAscending)

	maxCount := 0
	for _, kind := range cv.kinds {
		maxCount = max(maxCount, kind.Count)
	}

	var clicked string
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.sortColumn = int(spec.ColumnIndex())
			cv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			catalog.SortKinds(cv.kinds, cv.sortColumn, cv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, kind := range cv.kinds {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(kind.Name, cv.selectedKind == kind.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				cv.selectedKind = kind.Name
				clicked = kind.Name
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.Count))

			if maxCount > 0 {
				barWidth := float32(kind.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}
