package sim

import "github.com/suntan-superman/galageaux-sub001/geom"

// Input is the normalized per-frame input snapshot. Sources (touch, tilt,
// keyboard, gamepad) are unified upstream; the simulation only ever sees
// axes in [-1,1] and two buttons.
type Input struct {
	MoveX float64
	MoveY float64
	Fire  bool
	Pause bool
}

// normalized returns a copy with both axes clamped to [-1,1] so a
// misbehaving input source cannot grant extra speed.
func (in Input) normalized() Input {
	in.MoveX = geom.Clamp(in.MoveX, -1, 1)
	in.MoveY = geom.Clamp(in.MoveY, -1, 1)
	return in
}
