package sim

import (
	"math/rand/v2"

	"github.com/plus3/orrery/ecs"
)

// Options configures a Simulation.
type Options struct {
	Seed          uint64
	InitialTarget int
	Meteors       MeteorParams
	Rig           CameraRig
	CameraStart   Vec3

	// Rand replaces the seeded source when set. Tests use it to script the
	// meteor spawner.
	Rand RandSource
}

// DefaultOptions starts on the third body with the camera high above and
// behind the system.
func DefaultOptions() Options {
	return Options{
		Seed:          1,
		InitialTarget: 2,
		Meteors:       DefaultMeteorParams(),
		Rig: CameraRig{
			Offset:    Vec3{Y: 3, Z: 6},
			Smoothing: 0.05,
		},
		CameraStart: Vec3{Y: 50, Z: 150},
	}
}

// Simulation owns the storage and the per-tick systems.
type Simulation struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	registry  *BodyRegistry

	clock  *ecs.Singleton[Clock]
	focus  *ecs.Singleton[FocusState]
	input  *ecs.Singleton[FocusInput]
	pose   *ecs.Singleton[CameraPose]
	label  *ecs.Singleton[Label]
	meteor *ecs.Singleton[MeteorField]
}

// New builds the bodies in cat and registers the tick systems in order:
// clock, focus input, kinematics, meteor spawn, meteor fall, camera.
func New(cat *Catalog, opts Options) (*Simulation, error) {
	components := ecs.NewComponentRegistry()
	RegisterComponents(components)
	storage := ecs.NewStorage(components)

	registry, err := Build(storage, cat)
	if err != nil {
		return nil, err
	}

	focus := FocusState{Count: registry.Len()}
	if focus.Count > 0 {
		focus.Index = ((opts.InitialTarget % focus.Count) + focus.Count) % focus.Count
	}

	s := &Simulation{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		registry:  registry,
		clock:     ecs.NewSingleton(storage, Clock{}),
		focus:     ecs.NewSingleton(storage, focus),
		input:     ecs.NewSingleton(storage, FocusInput{}),
		pose:      ecs.NewSingleton(storage, CameraPose{Position: opts.CameraStart}),
		label:     ecs.NewSingleton(storage, Label{}),
		meteor:    ecs.NewSingleton(storage, MeteorField{Params: opts.Meteors}),
	}
	ecs.NewSingleton(storage, opts.Rig)
	if _, name, ok := registry.Lookup(focus.Index); ok {
		s.label.Get().Text = LabelFor(name)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}

	s.scheduler.Register(&ClockSystem{})
	s.scheduler.Register(&FocusInputSystem{})
	s.scheduler.Register(&KinematicsSystem{})
	s.scheduler.Register(&MeteorSpawnSystem{Rand: rng})
	s.scheduler.Register(&MeteorFallSystem{})
	s.scheduler.Register(&CameraTrackerSystem{})
	return s, nil
}

// AddSystem appends a system that runs after the camera every tick.
func (s *Simulation) AddSystem(system ecs.System) {
	s.scheduler.Register(system)
}

// Step runs one tick with the given delta.
func (s *Simulation) Step(dt float64) {
	s.scheduler.Once(dt)
}

// TickAt runs one tick ending at the absolute elapsed time. A time earlier
// than the current clock yields a zero delta.
func (s *Simulation) TickAt(elapsed float64) {
	s.Step(elapsed - s.clock.Get().Elapsed)
}

// Push queues a focus command for the next tick.
func (s *Simulation) Push(cmd FocusCommand) {
	s.input.Get().Push(cmd)
}

func (s *Simulation) Storage() *ecs.Storage { return s.storage }
func (s *Simulation) Scheduler() *ecs.Scheduler { return s.scheduler }
func (s *Simulation) Registry() *BodyRegistry { return s.registry }
func (s *Simulation) Clock() Clock { return *s.clock.Get() }
func (s *Simulation) Focus() FocusState { return *s.focus.Get() }
func (s *Simulation) Pose() CameraPose { return *s.pose.Get() }
func (s *Simulation) Label() string { return s.label.Get().Text }
func (s *Simulation) Meteors() MeteorField { return *s.meteor.Get() }
