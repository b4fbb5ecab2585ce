package policy

import (
	"slices"
	"strconv"

	"github.com/spf13/viper"

	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/errors"
)

// EnvPrefix is prepended to policy keys when reading overrides from the
// environment, e.g. WASMCAPS_POLICY_DENY="network,process".
const EnvPrefix = "WASMCAPS_POLICY"

// Policy describes which capabilities an operator is willing to grant.
type Policy struct {
	Deny                   []capability.Bucket
	AllowNamespaces        []string
	FailOnUnknownWasi      bool
	FailOnUnknownNamespace bool
}

type fileConfig struct {
	Deny                   []string `mapstructure:"deny"`
	AllowNamespaces        []string `mapstructure:"allow_namespaces"`
	FailOnUnknownWasi      bool     `mapstructure:"fail_on_unknown_wasi"`
	FailOnUnknownNamespace bool     `mapstructure:"fail_on_unknown_namespace"`
}

var keys = []string{"deny", "allow_namespaces", "fail_on_unknown_wasi", "fail_on_unknown_namespace"}

// Load reads a policy file. The format (YAML, TOML or JSON) is taken from
// the file extension. Environment variables override file values.
func Load(path string) (*Policy, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("read policy %q", path).
			Cause(err).
			Build()
	}
	return FromViper(v)
}

// FromViper builds a policy from an already populated viper instance.
func FromViper(v *viper.Viper) (*Policy, error) {
	v.SetEnvPrefix(EnvPrefix)
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bind "+k)
		}
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode policy")
	}

	p := &Policy{
		AllowNamespaces:        cfg.AllowNamespaces,
		FailOnUnknownWasi:      cfg.FailOnUnknownWasi,
		FailOnUnknownNamespace: cfg.FailOnUnknownNamespace,
	}
	for _, name := range cfg.Deny {
		b, err := capability.ParseBucket(name)
		if err != nil {
			e := errors.InvalidInput(errors.PhaseConfig, "unknown bucket "+strconv.Quote(name))
			e.Path = []string{"deny"}
			e.Value = name
			e.Cause = err
			return nil, e
		}
		if !slices.Contains(p.Deny, b) {
			p.Deny = append(p.Deny, b)
		}
	}
	return p, nil
}

// Evaluate returns every import the policy rejects, grouped by bucket in
// report order and in file order within a bucket. An import is reported
// at most once.
func (p *Policy) Evaluate(s *capability.Summary) []errors.Violation {
	var out []errors.Violation
	for _, b := range capability.Buckets {
		for _, e := range s.Entries(b) {
			if reason, denied := p.reject(b, e); denied {
				out = append(out, errors.Violation{
					Import: e.Key(),
					Bucket: b.String(),
					Reason: reason,
				})
			}
		}
	}
	return out
}

func (p *Policy) reject(b capability.Bucket, e capability.Entry) (string, bool) {
	if b == capability.UnknownNamespace && p.namespaceAllowed(e.Namespace) {
		return "", false
	}
	if slices.Contains(p.Deny, b) {
		return b.Label() + " access denied", true
	}
	switch b {
	case capability.UnknownWasiSymbol:
		if p.FailOnUnknownWasi {
			return "unrecognized WASI symbol", true
		}
	case capability.UnknownNamespace:
		if p.FailOnUnknownNamespace {
			return "namespace " + e.Namespace + " not allowed", true
		}
	}
	return "", false
}

func (p *Policy) namespaceAllowed(ns string) bool {
	for _, allowed := range p.AllowNamespaces {
		if allowed == "*" || allowed == ns {
			return true
		}
	}
	return false
}

// Check evaluates the policy and returns a *errors.PolicyViolationError when
// anything is rejected.
func (p *Policy) Check(s *capability.Summary) error {
	violations := p.Evaluate(s)
	if len(violations) == 0 {
		return nil
	}
	return &errors.PolicyViolationError{Violations: violations}
}
