// Package uictl defines read-only controls a UI can poll without owning the
// state behind them.
package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Lamp is an on/off indicator.
type Lamp interface {
	Lit() bool
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// CappedDial is a Dial with a maximum cap value.
type CappedDial[N Number] interface {
	Dial[N]
	Cap() (num, max N)
}

// LampFunc adapts a function to a Lamp.
type LampFunc func() bool

func (f LampFunc) Lit() bool { return f() }

// CappedDialFunc adapts a function returning (num, max) to a CappedDial.
type CappedDialFunc[N Number] func() (N, N)

func (f CappedDialFunc[N]) Read() N {
	num, _ := f()
	return num
}

func (f CappedDialFunc[N]) Cap() (N, N) {
	return f()
}

// Fraction reports num/max of d clamped to [0, 1]. A zero cap reads as 0.
func Fraction[N Number](d CappedDial[N]) float64 {
	num, capValue := d.Cap()
	if capValue <= 0 {
		return 0
	}

	f := float64(num) / float64(capValue)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
