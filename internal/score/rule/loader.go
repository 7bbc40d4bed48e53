package rule

import (
	"os"

	"github.com/google/cel-go/cel"
	"gopkg.in/yaml.v3"
)

// LoadFromFile reads transition rules from a YAML file and compiles each of
// them against a fresh environment produced by envProvider.
func LoadFromFile(file string, envProvider func() (*cel.Env, error)) ([]Rule, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	rules := []Rule{}

	err = yaml.Unmarshal(content, &rules)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		env, err := envProvider()
		if err != nil {
			return nil, err
		}

		err = rules[i].Init(env)
		if err != nil {
			return nil, err
		}
	}
	return rules, nil
}
