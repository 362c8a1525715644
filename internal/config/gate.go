package config

// GateConfig names the environment variable that switches the documentation
// build on. The build runs only when the variable equals Value exactly.
type GateConfig struct {
	Variable string `yaml:"variable"`
	Value    string `yaml:"value"`
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Enabled evaluates the gate. The comparison is case-sensitive and untrimmed,
// so "true", "1" or " True" keep the gate closed.
func (g GateConfig) Enabled(lookup LookupFunc) bool {
	if lookup == nil || g.Variable == "" {
		return false
	}
	v, ok := lookup(g.Variable)
	return ok && v == g.Value
}
