// Package openapi performs description checks on OpenAPI documents: every
// endpoint, method, parameter, and response must carry a non-empty
// description before the document ships with the service.
package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoDocument = errors.New("no OpenAPI document found")

// specFileNames are tried in order inside the target directory.
var specFileNames = []string{"openapi.json", "openapi.yaml", "openapi.yml"}

// Load finds and parses the OpenAPI document in dir. The returned path names
// the file that was tried, even on parse failure, so callers can report it.
func Load(dir string) (string, map[string]any, error) {
	for _, name := range specFileNames {
		path := filepath.Join(dir, name)

		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return path, nil, fmt.Errorf("reading %s: %w", path, err)
		}

		doc, parseErr := parse(name, data)
		if parseErr != nil {
			return path, nil, parseErr
		}

		return path, doc, nil
	}

	return "", nil, ErrNoDocument
}

func parse(name string, data []byte) (map[string]any, error) {
	var doc map[string]any

	if strings.HasSuffix(name, ".json") {
		err := json.Unmarshal(data, &doc)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON format: %w", err)
		}

		return doc, nil
	}

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML format: %w", err)
	}

	return doc, nil
}

// Check verifies descriptions throughout doc and returns one human-readable
// problem per finding. An empty result means the document passes.
func Check(doc map[string]any) []string {
	var problems []string

	problems = append(problems, checkInfo(doc)...)
	problems = append(problems, checkPaths(doc)...)

	return problems
}

func checkInfo(doc map[string]any) []string {
	info, ok := doc["info"].(map[string]any)
	if !ok {
		return []string{"info node can't be found"}
	}

	if msg := describeProblem(info); msg != "" {
		return []string{msg + " for the whole document"}
	}

	return nil
}

// describeProblem reports a missing or blank description on node, or ""
// when the description is fine.
func describeProblem(node map[string]any) string {
	desc, ok := node["description"]
	if !ok {
		return "no description provided"
	}

	s, _ := desc.(string)
	if strings.TrimSpace(s) == "" {
		return "empty description provided"
	}

	return ""
}

func checkPaths(doc map[string]any) []string {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return []string{"paths node can't be found"}
	}

	var problems []string

	for _, path := range slices.Sorted(maps.Keys(paths)) {
		methods, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}

		for _, method := range slices.Sorted(maps.Keys(methods)) {
			operation, ok := methods[method].(map[string]any)
			if !ok {
				continue
			}

			problems = append(problems, checkOperation(path, method, operation)...)
		}
	}

	return problems
}

func checkOperation(path, method string, operation map[string]any) []string {
	var problems []string

	if msg := describeProblem(operation); msg != "" {
		problems = append(problems,
			fmt.Sprintf("%s for endpoint `%s` and method `%s`", msg, path, method))
	}

	if parameters, ok := operation["parameters"].([]any); ok {
		for _, p := range parameters {
			parameter, ok := p.(map[string]any)
			if !ok {
				continue
			}

			if msg := describeProblem(parameter); msg != "" {
				name, _ := parameter["name"].(string)
				problems = append(problems,
					fmt.Sprintf("%s for endpoint `%s` method `%s` and parameter `%s`", msg, path, method, name))
			}
		}
	}

	if responses, ok := operation["responses"].(map[string]any); ok {
		for _, status := range slices.Sorted(maps.Keys(responses)) {
			response, ok := responses[status].(map[string]any)
			if !ok {
				continue
			}

			if msg := describeProblem(response); msg != "" {
				problems = append(problems,
					fmt.Sprintf("%s for endpoint `%s` method `%s` and response `%s`", msg, path, method, status))
			}
		}
	}

	return problems
}
