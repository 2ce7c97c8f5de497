package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/ecs"
)

// InspectValue renders v's exported fields under a collapsible label.
func InspectValue(label string, v any) {
	if !imgui.TreeNodeStr(label) {
		return
	}
	for _, line := range globalReflectionCache.Describe(v) {
		if line.Name == "" {
			imgui.Text(line.Value)
			continue
		}
		imgui.Text(fmt.Sprintf("%s: %s", line.Name, line.Value))
	}
	imgui.TreePop()
}

// InspectEntity renders every component of id, read-only.
func InspectEntity(storage *ecs.Storage, id ecs.EntityId) {
	if !storage.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %d not found", id))
		return
	}

	for archetype := range storage.Archetypes() {
		if archetype.ID() != id.ArchetypeId() {
			continue
		}
		imgui.Text(fmt.Sprintf("Entity ID: %d", id))
		imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
		imgui.Separator()
		for _, t := range archetype.Types() {
			InspectValue(t.Name(), storage.GetComponent(id, t))
		}
		return
	}
}
