package models

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Weights holds the relative importance of each system, indexed by SystemKey.
// Values are relative and need not sum to 1.
type Weights [NumSystems]float64

// DefaultWeights returns the baseline system weights.
func DefaultWeights() Weights {
	return Weights{
		Roof:        0.25,
		HVAC:        0.25,
		Plumbing:    0.20,
		Electrical:  0.15,
		WaterHeater: 0.15,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// Normalize returns a copy of w rescaled to sum to 1.
// A zero sum is treated as 1, so every output is 0 rather than NaN.
func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum == 0 {
		sum = 1
	}
	var out Weights
	for i, v := range w {
		out[i] = v / sum
	}
	return out
}

// Percentages returns each normalized weight as a whole percentage.
func (w Weights) Percentages() [NumSystems]int {
	n := w.Normalize()
	var out [NumSystems]int
	for i, v := range n {
		out[i] = int(math.Floor(v*100 + 0.5))
	}
	return out
}

// Map returns the weights keyed by wire key.
func (w Weights) Map() map[string]float64 {
	m := make(map[string]float64, NumSystems)
	for _, k := range SystemKeys {
		m[k.String()] = w[k]
	}
	return m
}

// WeightsFromMap builds Weights from a wire-keyed map. Missing keys are 0.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	var w Weights
	for key, v := range m {
		k, ok := ParseSystemKey(key)
		if !ok {
			return Weights{}, fmt.Errorf("unknown system key %q", key)
		}
		w[k] = v
	}
	return w, nil
}

// MarshalJSON encodes the weights as an object keyed by system.
func (w Weights) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Map())
}

// UnmarshalJSON decodes an object keyed by system.
func (w *Weights) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := WeightsFromMap(m)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML encodes the weights as a mapping keyed by system.
func (w Weights) MarshalYAML() (interface{}, error) {
	return w.Map(), nil
}

// UnmarshalYAML decodes a mapping keyed by system.
func (w *Weights) UnmarshalYAML(value *yaml.Node) error {
	var m map[string]float64
	if err := value.Decode(&m); err != nil {
		return err
	}
	parsed, err := WeightsFromMap(m)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
