package sim

import "github.com/plus3/orrery/ecs"

// maxNesting bounds the ancestor walk; catalogs only nest one level.
const maxNesting = 8

// Transform is a resolved orbit frame: where a body sits and how far its
// frame has turned about the vertical axis. Spin is deliberately excluded, so
// a host's spin never carries its satellites.
type Transform struct {
	Origin Vec3
	Yaw    float64
}

// Local applies one orbit step (rotate by angle, then offset by radius along
// the rotated +X axis) on top of the parent transform.
func (t Transform) Local(o Orbit) Transform {
	yaw := t.Yaw + o.Angle
	return Transform{
		Origin: t.Origin.Add(Vec3{X: o.Radius}.RotateY(yaw)),
		Yaw:    yaw,
	}
}

// WorldTransform folds the ancestor chain of id from the system root down.
// Bodies without an Orbit (the star) sit at the root.
func WorldTransform(r ecs.ComponentReader, id ecs.EntityId) Transform {
	var chain [maxNesting]Orbit
	n := 0
	for cur := id; n < maxNesting; n++ {
		if o := ecs.ReadComponent[Orbit](r, cur); o != nil {
			chain[n] = *o
		}
		p := ecs.ReadComponent[Parent](r, cur)
		if p == nil || !p.Ref.Valid() {
			n++
			break
		}
		cur = p.Ref.Id
	}

	var t Transform
	for i := n - 1; i >= 0; i-- {
		t = t.Local(chain[i])
	}
	return t
}

// WorldPosition is WorldTransform(r, id).Origin.
func WorldPosition(r ecs.ComponentReader, id ecs.EntityId) Vec3 {
	return WorldTransform(r, id).Origin
}
