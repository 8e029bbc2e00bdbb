package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file describing a 1D run
type InputParameters1D struct {
	Title           string  `yaml:"Title"`
	Model           string  `yaml:"Model"`    // advection, burgers, euler
	Case            string  `yaml:"Case"`     // named test case within the model
	FluxType        string  `yaml:"FluxType"` // upwind, central, rusanov, lax, roe
	NodeType        string  `yaml:"NodeType"` // GL (Gauss-Legendre) or GLL (Gauss-Lobatto-Legendre)
	PolynomialOrder int     `yaml:"PolynomialOrder"`
	NumElements     int     `yaml:"NumElements"`
	XMax            float64 `yaml:"XMax"`
	CFL             float64 `yaml:"CFL"`
	FinalTime       float64 `yaml:"FinalTime"`
	Limiter         *bool   `yaml:"Limiter"` // nil leaves the per-case default
	LimiterM        float64 `yaml:"LimiterM"`
	WaveSpeed       float64 `yaml:"WaveSpeed"` // advection only
	Gamma           float64 `yaml:"Gamma"`     // euler only, zero leaves the default 1.4
}

var (
	validModels = map[string][]string{
		"advection": {"sine", "gauss"},
		"burgers":   {"sine", "shock"},
		"euler":     {"sod", "densitywave", "freestream"},
	}
	validFluxes = map[string][]string{
		"advection": {"", "upwind", "central"},
		"burgers":   {"", "rusanov", "lax"},
		"euler":     {"", "rusanov", "lax", "roe"},
	}
)

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate rejects any configuration the solver cannot run. All failures
// are reported before any time stepping happens; nothing is silently
// corrected.
func (ip *InputParameters1D) Validate(maxCFL float64) (err error) {
	cases, ok := validModels[ip.Model]
	if !ok {
		return fmt.Errorf("unknown model %q, must be one of advection, burgers, euler", ip.Model)
	}
	if ip.Case != "" && !contains(cases, ip.Case) {
		return fmt.Errorf("unknown case %q for model %q, valid cases: %v", ip.Case, ip.Model, cases)
	}
	if !contains(validFluxes[ip.Model], ip.FluxType) {
		return fmt.Errorf("unknown flux type %q for model %q, valid types: %v",
			ip.FluxType, ip.Model, validFluxes[ip.Model][1:])
	}
	switch ip.NodeType {
	case "", "GL", "GLL":
	default:
		return fmt.Errorf("unknown node type %q, must be GL or GLL", ip.NodeType)
	}
	if ip.PolynomialOrder < 1 {
		return fmt.Errorf("polynomial order must be at least 1, have %d", ip.PolynomialOrder)
	}
	if ip.NumElements < 1 {
		return fmt.Errorf("number of elements must be positive, have %d", ip.NumElements)
	}
	if ip.CFL <= 0 {
		return fmt.Errorf("CFL must be positive, have %g", ip.CFL)
	}
	if ip.CFL > maxCFL {
		return fmt.Errorf("CFL %g exceeds the stability bound %g for this model", ip.CFL, maxCFL)
	}
	if ip.FinalTime < 0 {
		return fmt.Errorf("final time must be non-negative, have %g", ip.FinalTime)
	}
	if ip.LimiterM < 0 {
		return fmt.Errorf("limiter constant M must be non-negative, have %g", ip.LimiterM)
	}
	if ip.Gamma != 0 {
		if ip.Gamma <= 1 {
			return fmt.Errorf("gamma must exceed 1, have %g", ip.Gamma)
		}
		// The analytic reference for the shock tube is tabulated at 1.4
		if ip.Case == "sod" && ip.Gamma != 1.4 {
			return fmt.Errorf("case sod requires gamma 1.4, have %g", ip.Gamma)
		}
	}
	return nil
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Model\n", ip.Model)
	fmt.Printf("[%s]\t\t\t= Case\n", ip.Case)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t\t= Node Type\n", ip.NodeType)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t= Num Elements\n", ip.NumElements)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
}

func contains(list []string, val string) bool {
	for _, v := range list {
		if v == val {
			return true
		}
	}
	return false
}
