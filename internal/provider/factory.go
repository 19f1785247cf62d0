package provider

import (
	"fmt"
	"strings"
)

// Environment is the target environment sent in X-Target-Environment.
// Production markets share one base URL and differ only by this value.
type Environment string

const (
	EnvironmentSandbox          Environment = "sandbox"
	EnvironmentMTNCongo         Environment = "mtncongo"
	EnvironmentMTNUganda        Environment = "mtnuganda"
	EnvironmentMTNGhana         Environment = "mtnghana"
	EnvironmentMTNIvoryCoast    Environment = "mtnivorycoast"
	EnvironmentMTNZambia        Environment = "mtnzambia"
	EnvironmentMTNCameroon      Environment = "mtncameroon"
	EnvironmentMTNBenin         Environment = "mtnbenin"
	EnvironmentMTNSwaziland     Environment = "mtnswaziland"
	EnvironmentMTNGuineaConakry Environment = "mtnguineaconakry"
	EnvironmentMTNSouthAfrica   Environment = "mtnsouthafrica"
	EnvironmentMTNLiberia       Environment = "mtnliberia"
)

const (
	SandboxURL    = "https://sandbox.momodeveloper.mtn.com"
	ProductionURL = "https://proxy.momoapi.mtn.com"
)

// GetAvailableEnvironments returns every recognized target environment
func GetAvailableEnvironments() []Environment {
	return []Environment{
		EnvironmentSandbox,
		EnvironmentMTNCongo,
		EnvironmentMTNUganda,
		EnvironmentMTNGhana,
		EnvironmentMTNIvoryCoast,
		EnvironmentMTNZambia,
		EnvironmentMTNCameroon,
		EnvironmentMTNBenin,
		EnvironmentMTNSwaziland,
		EnvironmentMTNGuineaConakry,
		EnvironmentMTNSouthAfrica,
		EnvironmentMTNLiberia,
	}
}

// IsEnvironmentSupported checks if an environment name is recognized
func IsEnvironmentSupported(env Environment) bool {
	for _, available := range GetAvailableEnvironments() {
		if available == env {
			return true
		}
	}
	return false
}

// ParseEnvironment normalizes an environment name. An empty name means sandbox.
func ParseEnvironment(name string) (Environment, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return EnvironmentSandbox, nil
	}
	env := Environment(name)
	if !IsEnvironmentSupported(env) {
		return "", fmt.Errorf("momo: unknown target environment %q", name)
	}
	return env, nil
}

// IsSandbox reports whether env is the sandbox environment
func (e Environment) IsSandbox() bool {
	return e == EnvironmentSandbox
}

// BaseURL resolves the API base URL for an environment
func BaseURL(env Environment) (string, error) {
	if !IsEnvironmentSupported(env) {
		return "", fmt.Errorf("momo: unknown target environment %q", env)
	}
	if env.IsSandbox() {
		return SandboxURL, nil
	}
	return ProductionURL, nil
}
