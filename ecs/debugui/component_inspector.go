package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/debugui/catalog"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows the components of the selected entity with editable scalar fields
func (ci *ComponentInspectorComponent) Render(world *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId
	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	storage := world.Storage()
	if !storage.Exists(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	if !storage.IsAlive(ci.selectedEntityId) {
		imgui.SameLine()
		imgui.Text("(destroyed, removed next update)")
	}
	if imgui.Button("Destroy") {
		world.DestroyEntity(ci.selectedEntityId)
	}
	imgui.Separator()

	for _, compType := range storage.ComponentTypes(ci.selectedEntityId) {
		component := storage.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderStruct(reflect.ValueOf(component).Elem(), compType, component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderStruct draws the fields of val; owner is the pointer edits are written
// through, nil for nested values that are read-only
func (ci *ComponentInspectorComponent) renderStruct(val reflect.Value, t reflect.Type, owner any) {
	for _, field := range catalog.Fields.Fields(t) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field, fieldVal, owner)
	}
}

func (ci *ComponentInspectorComponent) renderField(field catalog.FieldInfo, val reflect.Value, owner any) {
	name := field.Name
	editable := owner != nil && !field.IsPointer

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && editable {
			catalog.SetField(owner, field.Index, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if val.Uint() > 1<<31-1 {
			imgui.Text(fmt.Sprintf("%s: 0x%X", name, val.Uint()))
			return
		}
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && editable && v >= 0 {
			catalog.SetField(owner, field.Index, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && editable {
			catalog.SetField(owner, field.Index, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && editable {
			catalog.SetField(owner, field.Index, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && editable {
			catalog.SetField(owner, field.Index, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val, val.Type(), nil)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: %v", name, sliceSummary(val)))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// short slices such as collider contacts are shown in full
func sliceSummary(val reflect.Value) string {
	if val.Len() > 0 && val.Len() <= 8 {
		return fmt.Sprint(val.Interface())
	}
	return fmt.Sprintf("[%d items]", val.Len())
}
