package isosurface

import (
	"fmt"
	"strconv"
)

// InputShapeError is returned when a scalar field cannot be contoured
// because of its shape: the field is not rank 3 or its backing data does not
// match the declared dimensions. It is detected before any cube is visited.
type InputShapeError struct {
	Shape  []int
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("input shape %v: %s", e.Shape, e.Reason)
}

// InvalidParameterError is returned when an extraction parameter is out of
// its domain, such as a non-positive spacing component or a NaN iso level.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "invalid parameter " + e.Param + "=" + strconv.FormatFloat(e.Value, 'g', -1, 64) + ": " + e.Reason
}
