package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmcgrud1/spotrod"
)

// LoadBuffers reads raw integrator buffers from a YAML mapping keyed by the
// names in spotrod.Keywords.
func LoadBuffers(path string) (*spotrod.Transit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := DecodeBuffers(data)
	if err != nil {
		return nil, fmt.Errorf("loading buffers from %s: %w", path, err)
	}
	return t, nil
}

// DecodeBuffers is like LoadBuffers but decodes a YAML document in memory.
func DecodeBuffers(data []byte) (*spotrod.Transit, error) {
	kw := map[string]any{}
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&kw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return spotrod.NewTransitFromKeywords(kw)
}

// Buffers returns the keyword form of t, which DecodeBuffers accepts once
// marshaled to YAML.
func Buffers(t *spotrod.Transit) map[string]any {
	var rows [][]float64
	if t.PlanetAngle != nil && !t.PlanetAngle.IsEmpty() {
		r, _ := t.PlanetAngle.Dims()
		rows = make([][]float64, r)
		for i := range rows {
			rows[i] = t.PlanetAngle.RawRowView(i)
		}
	}
	return map[string]any{
		"planetx":      t.PlanetX,
		"planety":      t.PlanetY,
		"z":            t.Z,
		"p":            t.P,
		"ootflux0":     t.OOTFlux0,
		"r":            t.R,
		"f":            t.F,
		"spotx":        t.SpotX,
		"spoty":        t.SpotY,
		"spotradius":   t.SpotRadius,
		"spotcontrast": t.SpotContrast,
		"planetangle":  rows,
	}
}
