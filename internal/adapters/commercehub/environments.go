package commercehub

import "fmt"

// Environment selects which gateway deployment requests are sent to.
type Environment string

const (
	EnvironmentIntegration Environment = "integration"
	EnvironmentQA          Environment = "qa"
	EnvironmentSandbox     Environment = "sandbox"
	EnvironmentCAT         Environment = "cat"
	EnvironmentProduction  Environment = "production"
)

// Gateway API paths. All operations are POST.
const (
	PathCredentials         = "/ch/security/v1/ttpcredentials"
	PathCharges             = "/ch/payments/v1/charges"
	PathCancels             = "/ch/payments/v1/cancels"
	PathRefunds             = "/ch/payments/v1/refunds"
	PathTransactionInquiry  = "/ch/payments/v1/transaction-inquiry"
	PathAccountVerification = "/ch/payments-vas/v1/accounts/verification"
	PathTokens              = "/ch/payments-vas/v1/tokens"
)

var environmentHosts = map[Environment]string{
	EnvironmentIntegration: "int.api.fiservapps.com",
	EnvironmentQA:          "qa.api.fiservapps.com",
	EnvironmentSandbox:     "cert.api.fiservapps.com",
	EnvironmentCAT:         "cat.api.fiservapps.com",
	EnvironmentProduction:  "prod.api.fiservapps.com",
}

// Host returns the fixed hostname for the environment.
func (e Environment) Host() string {
	return environmentHosts[e]
}

// IsValid reports whether the environment is one of the known deployments.
func (e Environment) IsValid() bool {
	_, ok := environmentHosts[e]
	return ok
}

// ParseEnvironment converts a configuration string into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(s)
	if !env.IsValid() {
		return "", fmt.Errorf("unknown gateway environment %q", s)
	}
	return env, nil
}
