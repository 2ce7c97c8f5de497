package ecs

// System is one step of a frame. Implementations are usually pointers to
// structs whose exported Query and Singleton fields are bound by the
// Scheduler; any other fields are private state kept between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one frame.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
