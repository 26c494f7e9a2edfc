package category

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads an ordered rule list from a YAML file:
//
//	- keyword: coffee
//	  category: Food
//	- keyword: uber
//	  category: Transport
//
// A missing file is the first-run case and yields the built-in defaults.
// A file that exists but cannot be parsed is an error; rules are never
// silently dropped.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("read rules file %s: %w", path, err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rules) == 0 {
		return DefaultRules(), nil
	}
	return rules, nil
}
