package main

import (
	"cmp"
	"image/color"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/sim"
)

const (
	starCount     = 1000
	starExtent    = 1000
	orbitSegments = 96
)

var (
	background  = color.RGBA{0, 0, 8, 255}
	orbitColor  = color.RGBA{90, 90, 110, 255}
	meteorColor = color.RGBA{255, 255, 255, 255}
	starColor   = color.RGBA{200, 200, 220, 255}
	black       = colorful.Color{}
)

// Viewport is the render target and its projection for the current draw.
type Viewport struct {
	Image     *ebiten.Image
	Lens      sim.Lens
	Projector *sim.Projector
}

// Renderer draws the simulation from a second scheduler over the same
// storage. Its systems only read simulation state.
type Renderer struct {
	scheduler *ecs.Scheduler
	viewport  *ecs.Singleton[Viewport]
}

func NewRenderer(storage *ecs.Storage, lens sim.Lens, meteorRadius float64, seed uint64) *Renderer {
	r := &Renderer{
		scheduler: ecs.NewScheduler(storage),
		viewport:  ecs.NewSingleton(storage, Viewport{Lens: lens}),
	}
	r.scheduler.Register(&ProjectionSystem{})
	r.scheduler.Register(NewStarfieldSystem(seed))
	r.scheduler.Register(&OrbitRenderSystem{})
	r.scheduler.Register(&BodyRenderSystem{})
	r.scheduler.Register(&MeteorRenderSystem{Radius: meteorRadius})
	r.scheduler.Register(&LabelRenderSystem{})
	return r
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	r.viewport.Get().Image = screen
	r.scheduler.Once(0)
	r.viewport.Get().Image = nil
}

// ProjectionSystem clears the screen and builds the projector for this draw.
type ProjectionSystem struct {
	Viewport ecs.Singleton[Viewport]
	Pose     ecs.Singleton[sim.CameraPose]
}

func (s *ProjectionSystem) Execute(frame *ecs.UpdateFrame) {
	vp := s.Viewport.Get()
	vp.Image.Fill(background)
	b := vp.Image.Bounds()
	vp.Projector = sim.NewProjector(*s.Pose.Get(), vp.Lens, b.Dx(), b.Dy())
}

// StarfieldSystem draws fixed background stars.
type StarfieldSystem struct {
	Viewport ecs.Singleton[Viewport]

	stars []sim.Vec3
}

func NewStarfieldSystem(seed uint64) *StarfieldSystem {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	stars := make([]sim.Vec3, starCount)
	for i := range stars {
		stars[i] = sim.Vec3{
			X: (rng.Float64() - 0.5) * 2 * starExtent,
			Y: (rng.Float64() - 0.5) * 2 * starExtent,
			Z: (rng.Float64() - 0.5) * 2 * starExtent,
		}
	}
	return &StarfieldSystem{stars: stars}
}

func (s *StarfieldSystem) Execute(frame *ecs.UpdateFrame) {
	vp := s.Viewport.Get()
	for _, p := range s.stars {
		if x, y, _, ok := vp.Projector.Project(p); ok {
			vector.DrawFilledRect(vp.Image, float32(x), float32(y), 1, 1, starColor, false)
		}
	}
}

// OrbitRenderSystem traces every orbit around its centre.
type OrbitRenderSystem struct {
	Viewport ecs.Singleton[Viewport]
	Orbits   ecs.Query[struct {
		*sim.Orbit
		Parent *sim.Parent `ecs:"optional"`
	}]
}

func (s *OrbitRenderSystem) Execute(frame *ecs.UpdateFrame) {
	vp := s.Viewport.Get()
	for item := range s.Orbits.Values() {
		var centre sim.Vec3
		if item.Parent != nil && item.Parent.Ref.Valid() {
			centre = sim.WorldPosition(frame.Storage, item.Parent.Ref.Id)
		}
		strokeCircle(vp, centre, item.Orbit.Radius, 1, orbitColor)
	}
}

// strokeCircle draws a horizontal circle as projected segments.
func strokeCircle(vp *Viewport, centre sim.Vec3, radius float64, width float32, clr color.Color) {
	var px, py float64
	var pok bool
	for i := 0; i <= orbitSegments; i++ {
		theta := 2 * math.Pi * float64(i) / orbitSegments
		x, y, _, ok := vp.Projector.Project(centre.Add(sim.Vec3{X: radius}.RotateY(theta)))
		if ok && pok {
			vector.StrokeLine(vp.Image, float32(px), float32(py), float32(x), float32(y), width, clr, true)
		}
		px, py, pok = x, y, ok
	}
}

type drawnBody struct {
	x, y, depth float64
	radius      float64
	app         *sim.Appearance
	ring        *sim.Ring
	world       sim.Vec3
	star        bool
}

// BodyRenderSystem draws bodies back to front, with rings and a glow on stars.
type BodyRenderSystem struct {
	Viewport ecs.Singleton[Viewport]
	Bodies   ecs.Query[struct {
		ecs.EntityId
		*sim.Body
		*sim.Appearance
		Ring *sim.Ring `ecs:"optional"`
	}]

	drawn []drawnBody
}

func (s *BodyRenderSystem) Execute(frame *ecs.UpdateFrame) {
	vp := s.Viewport.Get()

	s.drawn = s.drawn[:0]
	for item := range s.Bodies.Values() {
		world := sim.WorldPosition(frame.Storage, item.EntityId)
		x, y, depth, ok := vp.Projector.Project(world)
		if !ok {
			continue
		}
		s.drawn = append(s.drawn, drawnBody{
			x:      x,
			y:      y,
			depth:  depth,
			radius: vp.Projector.ScreenRadius(item.Appearance.Radius, depth),
			app:    item.Appearance,
			ring:   item.Ring,
			world:  world,
			star:   item.Body.Kind == sim.KindStar,
		})
	}
	slices.SortFunc(s.drawn, func(a, b drawnBody) int {
		return cmp.Compare(b.depth, a.depth)
	})

	for _, d := range s.drawn {
		if d.star {
			glow := d.app.Color.BlendLab(black, 0.6)
			vector.DrawFilledCircle(vp.Image, float32(d.x), float32(d.y), float32(d.radius*1.6), glow, true)
		}
		vector.DrawFilledCircle(vp.Image, float32(d.x), float32(d.y), float32(max(d.radius, 1)), d.app.Color, true)
		if d.ring != nil {
			width := float32(max(vp.Projector.ScreenRadius(d.ring.Outer-d.ring.Inner, d.depth), 1))
			strokeCircle(vp, d.world, (d.ring.Inner+d.ring.Outer)/2, width, d.ring.Color)
		}
	}
}

// MeteorRenderSystem draws falling meteors.
type MeteorRenderSystem struct {
	Viewport ecs.Singleton[Viewport]
	Meteors  ecs.Query[struct {
		*sim.Position
		*sim.Meteor
	}]
	Radius float64
}

func (s *MeteorRenderSystem) Execute(frame *ecs.UpdateFrame) {
	vp := s.Viewport.Get()
	for m := range s.Meteors.Values() {
		x, y, depth, ok := vp.Projector.Project(sim.Vec3(*m.Position))
		if !ok {
			continue
		}
		r := max(vp.Projector.ScreenRadius(s.Radius, depth), 1)
		vector.DrawFilledCircle(vp.Image, float32(x), float32(y), float32(r), meteorColor, false)
	}
}

// LabelRenderSystem prints the tracking label in the top-left corner.
type LabelRenderSystem struct {
	Viewport ecs.Singleton[Viewport]
	Label    ecs.Singleton[sim.Label]
}

func (s *LabelRenderSystem) Execute(frame *ecs.UpdateFrame) {
	if text := s.Label.Get().Text; text != "" {
		ebitenutil.DebugPrintAt(s.Viewport.Get().Image, text, 10, 10)
	}
}
