package ecs_test

import (
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
)

type reaperSystem struct {
	Entities ecs.Query[struct {
		Id ecs.EntityId
		*Health
	}]
}

func (s *reaperSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.Health.Current <= 0 {
			frame.Commands.Delete(item.Id)
		}
	}
}

func TestCommandsDeleteDuringIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	// adjacent dead entities must all go; none may be skipped
	for _, hp := range []int{0, 0, 5, 0, 7, 0} {
		storage.Spawn(Health{Current: hp})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&reaperSystem{})
	scheduler.Once(0)

	var left []int
	for item := range ecs.NewView[struct{ *Health }](storage).Values() {
		left = append(left, item.Health.Current)
	}
	assert.ElementsMatch(t, []int{5, 7}, left)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Name{Value: "victim"})

	cmds := &ecs.Commands{}
	var order []string
	cmds.Defer(func() {
		order = append(order, "defer")
		// delete ran, then the spawn took over the freed slot
		assert.Equal(t, "spawned", ecs.ReadComponent[Name](storage, victim).Value)
	})
	cmds.Spawn(Name{Value: "spawned"})
	cmds.Delete(victim)
	cmds.Delete(victim)
	assert.Equal(t, 4, cmds.Pending())

	cmds.Flush(storage)

	assert.Equal(t, []string{"defer"}, order)
	assert.Equal(t, 0, cmds.Pending())

	var names []string
	for item := range ecs.NewView[struct{ *Name }](storage).Values() {
		names = append(names, item.Name.Value)
	}
	// the spawn reuses the victim's slot
	assert.Equal(t, []string{"spawned"}, names)
}
