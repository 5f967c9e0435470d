package ranking

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Component names, in the order they are scored and explained.
const (
	ComponentSkills      = "skills"
	ComponentMission     = "mission"
	ComponentSalary      = "salary"
	ComponentLocation    = "location"
	ComponentCompanySize = "company_size"
	ComponentGrowth      = "growth"
)

var Components = []string{
	ComponentSkills,
	ComponentMission,
	ComponentSalary,
	ComponentLocation,
	ComponentCompanySize,
	ComponentGrowth,
}

var ErrInvalidWeight = errors.New("invalid ranking weight")

// Weights scale each component. They need not sum to 1.
type Weights struct {
	Skills      float64 `json:"skills" mapstructure:"skills"`
	Mission     float64 `json:"mission" mapstructure:"mission"`
	Salary      float64 `json:"salary" mapstructure:"salary"`
	Location    float64 `json:"location" mapstructure:"location"`
	CompanySize float64 `json:"company_size" mapstructure:"company_size"`
	Growth      float64 `json:"growth" mapstructure:"growth"`
}

func DefaultWeights() Weights {
	return Weights{
		Skills:      0.25,
		Mission:     0.15,
		Salary:      0.2,
		Location:    0.15,
		CompanySize: 0.1,
		Growth:      0.15,
	}
}

// ParseWeights overlays named weights on the defaults. Unknown names are rejected.
func ParseWeights(overrides map[string]float64) (Weights, error) {
	w := DefaultWeights()
	for name, value := range overrides {
		ptr := w.field(strings.ToLower(strings.TrimSpace(name)))
		if ptr == nil {
			return Weights{}, fmt.Errorf("%w: unknown component %q", ErrInvalidWeight, name)
		}
		*ptr = value
	}
	return w, w.Validate()
}

// Validate rejects negative and non-finite weights.
func (w Weights) Validate() error {
	for _, name := range Components {
		v := w.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidWeight, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidWeight, name, v)
		}
	}
	return nil
}

// Sum is the largest total a job can reach before scaling to 0..100.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, name := range Components {
		total += w.Get(name)
	}
	return total
}

func (w Weights) Get(name string) float64 {
	if ptr := w.field(name); ptr != nil {
		return *ptr
	}
	return 0
}

func (w *Weights) field(name string) *float64 {
	switch name {
	case ComponentSkills:
		return &w.Skills
	case ComponentMission:
		return &w.Mission
	case ComponentSalary:
		return &w.Salary
	case ComponentLocation:
		return &w.Location
	case ComponentCompanySize:
		return &w.CompanySize
	case ComponentGrowth:
		return &w.Growth
	default:
		return nil
	}
}
