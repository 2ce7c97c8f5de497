package sim

import (
	"github.com/plus3/orrery/ecs"
)

// CameraPose is where the camera is and the point it looks at.
type CameraPose struct {
	Position Vec3
	LookAt   Vec3
}

// CameraRig holds the tracking parameters.
type CameraRig struct {
	Offset    Vec3    // added to the target's world position
	Smoothing float64 // fraction of the remaining distance covered per tick
}

// Label is the overlay text naming the tracked body.
type Label struct {
	Text string
}

// LabelFor returns the overlay text for a tracked body name.
func LabelFor(name string) string {
	return "Tracking: " + name
}

// CameraTrackerSystem eases the camera toward the focused body plus the rig
// offset and aims it at the body. With nothing to track it leaves the camera
// and label alone.
type CameraTrackerSystem struct {
	Registry ecs.Singleton[BodyRegistry]
	Focus    ecs.Singleton[FocusState]
	Rig      ecs.Singleton[CameraRig]
	Pose     ecs.Singleton[CameraPose]
	Label    ecs.Singleton[Label]
}

func (s *CameraTrackerSystem) Execute(frame *ecs.UpdateFrame) {
	id, name, ok := s.Registry.Get().Lookup(s.Focus.Get().Index)
	if !ok || !frame.Storage.Alive(id) {
		return
	}

	rig := s.Rig.Get()
	pose := s.Pose.Get()
	target := WorldPosition(frame.Storage, id)

	pose.Position = pose.Position.Lerp(target.Add(rig.Offset), rig.Smoothing)
	pose.LookAt = target
	s.Label.Get().Text = LabelFor(name)
}
