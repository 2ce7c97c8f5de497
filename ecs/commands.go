package ecs

// Commands buffers structural changes made while systems iterate. The
// Scheduler flushes them once every system of the frame has run: deletes
// first, then spawns, then deferred funcs, each in queue order.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Deleting the same entity twice is safe.
func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer queues fn to run after spawns and deletes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies every queued operation to storage and empties the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
