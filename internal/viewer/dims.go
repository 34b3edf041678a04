package viewer

import (
	"fmt"

	"power-widgets/internal/event"
)

// Dims is the slider state of the viewer: one integer step per dimension.
type Dims struct {
	currentStep []int
	lastUsed    int

	Events struct {
		CurrentStep event.Emitter // data: []int
		NDim        event.Emitter // data: int
	}
}

func newDims(ndim int) *Dims {
	if ndim < 2 {
		ndim = 2
	}
	return &Dims{currentStep: make([]int, ndim)}
}

// NDim returns the number of dimensions.
func (d *Dims) NDim() int {
	return len(d.currentStep)
}

// CurrentStep returns a copy of the step along every dimension.
func (d *Dims) CurrentStep() []int {
	return append([]int(nil), d.currentStep...)
}

// LastUsed returns the most recently changed dimension.
func (d *Dims) LastUsed() int {
	return d.lastUsed
}

// SetCurrentStep moves one slider and marks it as last used.
func (d *Dims) SetCurrentStep(axis, step int) error {
	if axis < 0 || axis >= len(d.currentStep) {
		return fmt.Errorf("axis %d out of range for %d dimensions", axis, len(d.currentStep))
	}
	d.lastUsed = axis
	if d.currentStep[axis] == step {
		return nil
	}
	d.currentStep[axis] = step
	d.Events.CurrentStep.Emit(d.CurrentStep())
	return nil
}

// SetNDim changes the dimensionality. New leading dimensions start at step 0.
func (d *Dims) SetNDim(ndim int) {
	if ndim < 2 {
		ndim = 2
	}
	if ndim == len(d.currentStep) {
		return
	}
	steps := make([]int, ndim)
	old := d.currentStep
	for i := 1; i <= ndim && i <= len(old); i++ {
		steps[ndim-i] = old[len(old)-i]
	}
	d.currentStep = steps
	if d.lastUsed >= ndim {
		d.lastUsed = 0
	}
	d.Events.NDim.Emit(ndim)
}
