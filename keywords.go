package spotrod

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Keywords lists the parameter names accepted by [NewTransitFromKeywords], in
// positional order.
var Keywords = []string{
	"planetx", "planety", "z", "p", "ootflux0", "r", "f",
	"spotx", "spoty", "spotradius", "spotcontrast", "planetangle",
}

// NewTransitFromKeywords builds a [Transit] from named parameters, such as
// those decoded from a YAML or JSON document. Every name in [Keywords] must be
// present and no other name is accepted.
//
// Scalars (p, ootflux0) may be float64, float32, int, int32, int64 or uint64,
// the types decoders produce. Vectors may be []float64 or []any holding
// numbers. planetangle may be a *mat.Dense, [][]float64, or []any of []any
// rows; rows must have equal lengths.
//
// The result is validated with [Transit.Validate].
func NewTransitFromKeywords(kw map[string]any) (*Transit, error) {
	var unknown []string
	for name := range kw {
		if !slices.Contains(Keywords, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: unknown parameters %v", ErrArgument, unknown)
	}
	for _, name := range Keywords {
		if _, ok := kw[name]; !ok {
			return nil, fmt.Errorf("%w: missing parameter %q", ErrArgument, name)
		}
	}

	t := &Transit{}
	var err error
	vectors := []struct {
		name string
		dst  *[]float64
	}{
		{"planetx", &t.PlanetX},
		{"planety", &t.PlanetY},
		{"z", &t.Z},
		{"r", &t.R},
		{"f", &t.F},
		{"spotx", &t.SpotX},
		{"spoty", &t.SpotY},
		{"spotradius", &t.SpotRadius},
		{"spotcontrast", &t.SpotContrast},
	}
	for _, v := range vectors {
		if *v.dst, err = vectorArg(v.name, kw[v.name]); err != nil {
			return nil, err
		}
	}
	if t.P, err = scalarArg("p", kw["p"]); err != nil {
		return nil, err
	}
	if t.OOTFlux0, err = scalarArg("ootflux0", kw["ootflux0"]); err != nil {
		return nil, err
	}
	if t.PlanetAngle, err = matrixArg("planetangle", kw["planetangle"]); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func scalarArg(name string, v any) (float64, error) {
	x, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrType, name, v)
	}
	return x, nil
}

func vectorArg(name string, v any) ([]float64, error) {
	switch v := v.(type) {
	case []float64:
		return v, nil
	case []any:
		out := make([]float64, len(v))
		for i, e := range v {
			x, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a number, got %T", ErrType, name, i, e)
			}
			out[i] = x
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a one-dimensional array of numbers, got %T", ErrType, name, v)
	}
}

func matrixArg(name string, v any) (*mat.Dense, error) {
	var rows [][]float64
	switch v := v.(type) {
	case *mat.Dense:
		return v, nil
	case nil:
		return nil, nil
	case [][]float64:
		rows = v
	case []any:
		rows = make([][]float64, len(v))
		for i, row := range v {
			r, err := vectorArg(fmt.Sprintf("%s[%d]", name, i), row)
			if err != nil {
				return nil, err
			}
			if r == nil {
				return nil, fmt.Errorf("%w: %s[%d] must be an array, got %T", ErrType, name, i, row)
			}
			rows[i] = r
		}
	default:
		return nil, fmt.Errorf("%w: %s must be a two-dimensional array of numbers, got %T", ErrType, name, v)
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return &mat.Dense{}, nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: %s has ragged rows: row %d has %d columns, row 0 has %d",
				ErrType, name, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
