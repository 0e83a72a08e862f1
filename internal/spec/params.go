package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseParameterSection reads the top-level "parameters" section of a spec
// file. Operation compilation uses this for $ref parameters that point into
// other documents; callers cache the result per absolute path.
func ParseParameterSection(path string) (map[string]Parameter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &CorpusError{
			Code:    ExternalResourceUnavailable,
			Message: fmt.Sprintf("parameter file %s: %v", path, err),
			File:    path,
			Cause:   err,
		}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &CorpusError{
			Code:    ExternalResourceUnavailable,
			Message: fmt.Sprintf("parameter file %s: parse: %v", path, err),
			File:    path,
			Cause:   err,
		}
	}
	root, err := documentRoot(&doc)
	if err != nil {
		return nil, &CorpusError{
			Code:    ExternalResourceUnavailable,
			Message: fmt.Sprintf("parameter file %s: %v", path, err),
			File:    path,
			Cause:   err,
		}
	}
	params := map[string]Parameter{}
	mapPairs(root, func(key string, _, v *yaml.Node) {
		if key != "parameters" {
			return
		}
		mapPairs(v, func(name string, _, pn *yaml.Node) {
			params[name] = parameterFromNode(pn)
		})
	})
	return params, nil
}
