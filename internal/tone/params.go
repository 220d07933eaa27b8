package tone

import "fmt"

// Limits of every adjustment parameter. The neutral value 0 leaves the
// image untouched.
const (
	ParamMin = -100
	ParamMax = 100
)

// Params holds the tonal adjustment values applied to an image. Each field
// ranges over [ParamMin, ParamMax]; 0 is a no-op for that field.
type Params struct {
	Temperature int `json:"temperature"` // negative = cooler (blue), positive = warmer (red)
	Tint        int `json:"tint"`        // negative = green, positive = magenta
	Brightness  int `json:"brightness"`
	Contrast    int `json:"contrast"`
	Saturation  int `json:"saturation"`
}

// Neutral reports whether all parameters are at their no-op value.
func (p Params) Neutral() bool {
	return p == Params{}
}

// Validate returns a descriptive error naming the first parameter outside
// the allowed range.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"temperature", p.Temperature},
		{"tint", p.Tint},
		{"brightness", p.Brightness},
		{"contrast", p.Contrast},
		{"saturation", p.Saturation},
	}
	for _, f := range fields {
		if f.value < ParamMin || f.value > ParamMax {
			return fmt.Errorf("%s %d out of range [%d, %d]", f.name, f.value, ParamMin, ParamMax)
		}
	}
	return nil
}
