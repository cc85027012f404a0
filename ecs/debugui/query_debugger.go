package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/debugui/catalog"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedKinds: make(map[string]bool),
	}
}

// Render lets the user pick component kinds, or a pipeline stage preset, and
// lists the entities holding all of them
func (qd *QueryDebuggerComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedKinds = make(map[string]bool)
	}
	for _, preset := range catalog.StagePresets() {
		imgui.SameLine()
		if imgui.Button(preset.Name) {
			qd.selectedKinds = make(map[string]bool, len(preset.Kinds))
			for _, kind := range preset.Kinds {
				qd.selectedKinds[kind] = true
			}
		}
	}

	for _, kind := range catalog.Kinds(world) {
		selected := qd.selectedKinds[kind.Name]
		if imgui.Checkbox(kind.Name, &selected) {
			if selected {
				qd.selectedKinds[kind.Name] = true
			} else {
				delete(qd.selectedKinds, kind.Name)
			}
		}
	}

	imgui.Separator()

	kinds := make([]string, 0, len(qd.selectedKinds))
	for name := range qd.selectedKinds {
		kinds = append(kinds, name)
	}
	sort.Strings(kinds)

	if len(kinds) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := catalog.Match(catalog.Entities(world), kinds)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("Tag")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, row := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", row.ID))

				imgui.TableSetColumnIndex(1)
				imgui.Text(row.Tag)

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%v", row.Components))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
