package spotrod

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Spots describes k circular spots on the stellar surface. All four slices
// have length k.
//
// X and Y are the sky-plane coordinates of the spot centers in stellar radii,
// Radius is the spot radius in stellar radii, and Contrast is the spot's
// brightness relative to the photosphere minus one, so dark spots have
// negative contrast and -1 is a perfectly black spot.
type Spots struct {
	X        []float64
	Y        []float64
	Radius   []float64
	Contrast []float64
}

// Len returns the number of spots.
func (s Spots) Len() int { return len(s.X) }

// Transit holds the input buffers of [IntegrateTransit]. m is the number of
// samples in the time series, n the number of integration annuli, k the number
// of spots.
//
// Z, OOTFlux0 and PlanetAngle are redundant: they can be computed from the
// other fields, and are carried along so that repeated evaluation with the
// same geometry doesn't recompute them. See [Cache]. They are trusted as
// given; inconsistent values silently produce a wrong light curve.
type Transit struct {
	// Planet center in the sky plane, in stellar radii [m]. PlanetX is
	// perpendicular to the transit chord, PlanetY runs along it.
	PlanetX []float64
	PlanetY []float64
	// Distance between the planet's and the star's centers [m].
	Z []float64
	// Planet radius in stellar radii.
	P float64
	// Out-of-transit flux of the spot-free star, π Σ R[j] F[j]. Only used
	// when there are no spots.
	OOTFlux0 float64
	// Radii of the integration annuli, ascending [n].
	R []float64
	// Twice the limb darkening at R[j] times the width of annulus j [n].
	F []float64
	// Spot centers, radii and contrasts [k]. See [Spots].
	SpotX        []float64
	SpotY        []float64
	SpotRadius   []float64
	SpotContrast []float64
	// PlanetAngle[i, j] is CircleHalfAngle(R[j], P, Z[i]) [m, n].
	PlanetAngle *mat.Dense
}

// Validate reports whether the buffers of t have consistent shapes.
func (t *Transit) Validate() error {
	m, n, k := len(t.PlanetX), len(t.R), len(t.SpotX)
	vecs := []struct {
		name string
		v    []float64
		want int
	}{
		{"planety", t.PlanetY, m},
		{"z", t.Z, m},
		{"f", t.F, n},
		{"spoty", t.SpotY, k},
		{"spotradius", t.SpotRadius, k},
		{"spotcontrast", t.SpotContrast, k},
	}
	for _, v := range vecs {
		if len(v.v) != v.want {
			return &ShapeError{Param: v.name, Got: []int{len(v.v)}, Want: []int{v.want}}
		}
	}
	if n == 0 {
		return &ShapeError{Param: "r", Got: []int{0}, Want: []int{1}}
	}
	if t.PlanetAngle == nil {
		if m == 0 {
			return nil
		}
		return &ShapeError{Param: "planetangle", Got: nil, Want: []int{m, n}}
	}
	if r, c := t.PlanetAngle.Dims(); (r != m || c != n) && m != 0 {
		return &ShapeError{Param: "planetangle", Got: []int{r, c}, Want: []int{m, n}}
	}
	return nil
}

// IntegrateTransit computes the light curve of a star with limb darkening and
// spots, transited by a planet, normalized to 1.0 out of transit.
//
// The stellar disk is integrated over n concentric annuli. For every annulus
// the planet covers an arc of half-width PlanetAngle[i, j] centered on the
// planet's position angle, and every spot an arc of half-width
// [EllipseHalfAngle] centered on the spot's position angle. Spots change the
// brightness of the arcs they cover by their contrast, and add up where they
// overlap each other. The planet blocks the photosphere and any spot below it,
// each exactly once.
//
// Without spots the result is
//
//	answer[i] = (OOTFlux0 − Σⱼ R[j] F[j] PlanetAngle[i, j]) / OOTFlux0
//
// With spots, the out-of-transit flux is recomputed from R, F and the spots,
// and OOTFlux0 is ignored.
//
// Samples with Z[i] ≥ R[n−1] + P are out of transit and are exactly 1.
//
// The only errors are shape errors, returned before any computation.
// Geometrically meaningless inputs such as negative radii are not rejected.
func IntegrateTransit(t *Transit) ([]float64, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	answer := make([]float64, len(t.PlanetX))
	if len(answer) == 0 {
		return answer, nil
	}
	tr := newTables(t)
	tr.integrate(t, answer, 0, len(answer))
	return answer, nil
}

// Integrate is shorthand for [IntegrateTransit](t).
func (t *Transit) Integrate() ([]float64, error) {
	return IntegrateTransit(t)
}

// IntegrateParallel is like [IntegrateTransit] but evaluates the samples on
// up to workers goroutines. Samples are independent, so the result is
// identical to the sequential one. A workers value ≤ 0 means GOMAXPROCS.
func (t *Transit) IntegrateParallel(workers int) ([]float64, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	m := len(t.PlanetX)
	answer := make([]float64, m)
	if m == 0 {
		return answer, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, m)
	tr := newTables(t)
	if workers == 1 {
		tr.integrate(t, answer, 0, m)
		return answer, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (m + workers - 1) / workers
	for lo := 0; lo < m; lo += chunk {
		lo, hi := lo, min(lo+chunk, m)
		g.Go(func() error {
			tr.integrate(t, answer, lo, hi)
			return nil
		})
	}
	// integrate never fails
	_ = g.Wait()
	return answer, nil
}

// tables holds the per-call quantities that don't depend on the sample. It
// is read-only once built and shared between workers.
type tables struct {
	// weight[j] = R[j] F[j], the flux of annulus j per radian of half-angle.
	weight []float64
	// reach is the largest distance at which the planet still touches the
	// outermost annulus.
	reach float64
	// ootflux is the normalization.
	ootflux float64

	// Spot tables, empty without spots. spotAngle is k×n, row l holding the
	// half-angles of spot l on every annulus.
	spotDir   []float64
	spotAngle []float64
}

func newTables(t *Transit) *tables {
	n, k := len(t.R), len(t.SpotX)
	tr := &tables{
		weight: make([]float64, n),
		reach:  t.R[n-1] + t.P,
	}
	floats.MulTo(tr.weight, t.R, t.F)
	if k == 0 {
		tr.ootflux = t.OOTFlux0
		return tr
	}

	tr.spotDir = make([]float64, k)
	tr.spotAngle = make([]float64, k*n)
	// Per annulus: π for the photosphere plus each spot's excess.
	excess := make([]float64, n)
	for j := range excess {
		excess[j] = math.Pi
	}
	for l := 0; l < k; l++ {
		c := Pt(t.SpotX[l], t.SpotY[l])
		tr.spotDir[l] = c.Angle()
		row := tr.spotAngle[l*n : (l+1)*n]
		EllipseAngleTo(row, t.R, t.SpotRadius[l], c.Hypot())
		floats.AddScaled(excess, t.SpotContrast[l], row)
	}
	tr.ootflux = floats.Dot(tr.weight, excess)
	return tr
}

// integrate fills answer[lo:hi].
func (tr *tables) integrate(t *Transit, answer []float64, lo, hi int) {
	n, k := len(t.R), len(t.SpotX)
	sep := make([]float64, k)
	for i := lo; i < hi; i++ {
		if t.Z[i] >= tr.reach {
			answer[i] = 1
			continue
		}
		beta := t.PlanetAngle.RawRowView(i)
		if k == 0 {
			answer[i] = (tr.ootflux - floats.Dot(tr.weight, beta)) / tr.ootflux
			continue
		}

		dir := Pt(t.PlanetX[i], t.PlanetY[i]).Angle()
		for l := 0; l < k; l++ {
			sep[l] = angularSeparation(dir, tr.spotDir[l])
		}
		var blocked float64
		for j, bj := range beta {
			if bj == 0 {
				continue
			}
			covered := bj
			for l := 0; l < k; l++ {
				alpha := tr.spotAngle[l*n+j]
				if alpha == 0 {
					continue
				}
				covered += t.SpotContrast[l] * arcOverlap(bj, alpha, sep[l])
			}
			blocked += tr.weight[j] * covered
		}
		answer[i] = (tr.ootflux - blocked) / tr.ootflux
	}
}

// arcOverlap returns half the length of the intersection of two arcs of the
// same circle with half-widths a1 and a2, both in [0, π], whose centers are
// sep ∈ [0, π] apart.
func arcOverlap(a1, a2, sep float64) float64 {
	// Unroll the circle onto a line. The first arc is [-a1, a1]; the second
	// and its copy one turn back can both meet it.
	l := max(0, min(a1, sep+a2)-max(-a1, sep-a2))
	back := sep - 2*math.Pi
	l += max(0, min(a1, back+a2)-max(-a1, back-a2))
	return 0.5 * l
}
