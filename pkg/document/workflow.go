package document

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workflow is a GitHub Actions workflow file.
// Jobs, steps and matrix axes keep the order in which they are written.
type Workflow struct {
	Path     string
	Name     string
	Triggers Triggers
	Jobs     []*Job
}

// Triggers maps an event name to its configuration.
// Events declared without configuration map to an empty mapping.
type Triggers map[string]map[string]any

// Has reports whether the workflow is triggered by event.
func (t Triggers) Has(event string) bool {
	_, ok := t[event]
	return ok
}

type Job struct {
	ID     string
	RunsOn []string
	Matrix []*MatrixAxis
	Steps  []*Step
}

// MatrixAxis is one key of strategy.matrix.
// Values holds the scalar entries as they are written in the file, so `8.2`
// and `"8.2"` are the same value. IsList is false when the axis is an
// expression such as `${{ fromJSON(...) }}`.
type MatrixAxis struct {
	Key    string
	IsList bool
	Values []string
}

type Step struct {
	Name string
	Uses string
	Run  string
}

var errNotMapping = errors.New("must be a mapping")

// ParseWorkflow parses the content of a workflow file.
// An empty file is an empty workflow.
func ParseWorkflow(path string, content []byte) (*Workflow, error) {
	wf := &Workflow{
		Path:     path,
		Triggers: Triggers{},
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse a workflow file as YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return wf, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse a workflow file: the top level %w", errNotMapping)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch {
		case isTriggerKey(key):
			triggers, err := parseTriggers(value)
			if err != nil {
				return nil, fmt.Errorf("parse on: %w", err)
			}
			wf.Triggers = triggers
		case key.Value == "name":
			wf.Name = value.Value
		case key.Value == "jobs":
			jobs, err := parseJobs(value)
			if err != nil {
				return nil, fmt.Errorf("parse jobs: %w", err)
			}
			wf.Jobs = jobs
		}
	}
	return wf, nil
}

// isTriggerKey reports whether a top level key is the `on` key.
// YAML 1.2 parsers like yaml.v3 keep `on` as a string, while YAML 1.1
// parsers resolve it to the boolean true, so both spellings are accepted.
func isTriggerKey(key *yaml.Node) bool {
	if key.Kind != yaml.ScalarNode {
		return false
	}
	if key.Value == "on" && key.ShortTag() == "!!str" {
		return true
	}
	if key.ShortTag() != "!!bool" {
		return false
	}
	var b bool
	if err := key.Decode(&b); err != nil {
		return false
	}
	return b
}

func parseTriggers(node *yaml.Node) (Triggers, error) {
	triggers := Triggers{}
	switch node.Kind {
	case yaml.ScalarNode:
		// on: push, pull_request
		for _, event := range strings.Split(node.Value, ",") {
			if event = strings.TrimSpace(event); event != "" {
				triggers[event] = map[string]any{}
			}
		}
	case yaml.SequenceNode:
		// on: [push, pull_request]
		for _, item := range node.Content {
			if event := strings.TrimSpace(item.Value); event != "" {
				triggers[event] = map[string]any{}
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			event, value := node.Content[i].Value, node.Content[i+1]
			cfg := map[string]any{}
			if value.Kind == yaml.MappingNode {
				if err := value.Decode(&cfg); err != nil {
					return nil, fmt.Errorf("decode the configuration of %s: %w", event, err)
				}
			}
			triggers[event] = cfg
		}
	}
	return triggers, nil
}

func parseJobs(node *yaml.Node) ([]*Job, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}
	jobs := make([]*Job, 0, len(node.Content)/2) //nolint:mnd
	for i := 0; i+1 < len(node.Content); i += 2 {
		id, value := node.Content[i].Value, node.Content[i+1]
		job := &Job{ID: id}
		if value.Kind != yaml.MappingNode {
			jobs = append(jobs, job)
			continue
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			k, v := value.Content[j].Value, value.Content[j+1]
			switch k {
			case "runs-on":
				job.RunsOn = parseRunsOn(v)
			case "strategy":
				job.Matrix = parseMatrix(lookup(v, "matrix"))
			case "steps":
				job.Steps = parseSteps(v)
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// parseRunsOn accepts a label, a list of labels, or a mapping with labels.
func parseRunsOn(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}
	case yaml.SequenceNode:
		return scalars(node)
	case yaml.MappingNode:
		labels := lookup(node, "labels")
		if labels == nil {
			return nil
		}
		return parseRunsOn(labels)
	}
	return nil
}

func parseMatrix(node *yaml.Node) []*MatrixAxis {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	axes := make([]*MatrixAxis, 0, len(node.Content)/2) //nolint:mnd
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		axis := &MatrixAxis{Key: key}
		if value.Kind == yaml.SequenceNode {
			axis.IsList = true
			axis.Values = scalars(value)
		}
		axes = append(axes, axis)
	}
	return axes
}

func parseSteps(node *yaml.Node) []*Step {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	steps := make([]*Step, 0, len(node.Content))
	for _, item := range node.Content {
		step := &Step{}
		if item.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(item.Content); j += 2 {
				k, v := item.Content[j].Value, item.Content[j+1]
				if v.Kind != yaml.ScalarNode {
					continue
				}
				switch k {
				case "name":
					step.Name = v.Value
				case "uses":
					step.Uses = v.Value
				case "run":
					step.Run = v.Value
				}
			}
		}
		// Keep non mapping items so that step indexes match the file.
		steps = append(steps, step)
	}
	return steps
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalars(node *yaml.Node) []string {
	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode {
			values = append(values, item.Value)
		}
	}
	return values
}
