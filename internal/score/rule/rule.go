package rule

import (
	"github.com/google/cel-go/cel"
)

// Transition describes one step between two consecutive notes, converted to
// a map for compatibility with CEL. Keys: finger1, finger2, pitch1, pitch2
// (int), black1, black2 (bool), distance (int, pitch2-pitch1).
type Transition map[string]any

// NewTransitionEnv creates the CEL environment with the variables available
// to transition rule expressions.
func NewTransitionEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("finger1", cel.IntType),
		cel.Variable("finger2", cel.IntType),
		cel.Variable("pitch1", cel.IntType),
		cel.Variable("pitch2", cel.IntType),
		cel.Variable("black1", cel.BoolType),
		cel.Variable("black2", cel.BoolType),
		cel.Variable("distance", cel.IntType),
	)
}

// Rule represents an additional ergonomic rule applied to note transitions.
// The When field contains a CEL expression that defines the trigger condition.
// The Penalty field is added to the score if the condition is true.
// The CEL program is compiled when Init is called and used during evaluation.
type Rule struct {
	// Name — human-readable rule name, used in logs.
	Name string `yaml:"name"`
	// When — CEL expression defining the rule trigger condition.
	// Must return a boolean value.
	When string `yaml:"when"`
	// Penalty — value added to the total score if the condition is true.
	Penalty float64 `yaml:"penalty"`
	// program — compiled CEL program used to execute the condition.
	program cel.Program
}

// Init compiles the string expression in the When field into an executable CEL program
// using the provided env environment.
// In case of syntax or semantic errors, returns the corresponding error.
// After successful initialization, the rule is ready for use in Eval.
func (r *Rule) Init(env *cel.Env) error {
	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return iss.Err()
	}

	var err error
	r.program, err = env.Program(checked)
	if err != nil {
		return err
	}

	return nil
}

// Eval executes the compiled rule on the provided transition t.
// If the expression returns false, zero is returned. Execution errors are
// reported to the caller, which decides whether to skip or abort.
func (r *Rule) Eval(t Transition) (float64, error) {
	result, _, err := r.program.Eval(map[string]any(t))
	if err != nil {
		return 0, err
	}
	if result.Value() == false {
		return 0, nil
	}

	return r.Penalty, nil
}
