package scanner

// Registry holds a set of rules to run.
type Registry struct {
	rules []Rule
}

func NewRegistry() *Registry      { return &Registry{} }
func (r *Registry) Add(rule Rule) { r.rules = append(r.rules, rule) }
func (r *Registry) Rules() []Rule { return append([]Rule{}, r.rules...) }

// BuildDefaultRegistry returns a registry with all shipped rules
// registered.
func BuildDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Add(NewRuleS3GlobalEndpoint())
	return reg
}
