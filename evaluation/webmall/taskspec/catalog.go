package taskspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskSet groups related tasks and may pin a weighting policy for all of them.
type TaskSet struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Weighting string `json:"weighting,omitempty" yaml:"weighting,omitempty"`
	Tasks     []Spec `json:"tasks" yaml:"tasks"`
}

// Catalog is the parsed content of a task-set file.
type Catalog struct {
	Sets []TaskSet `json:"task_sets" yaml:"task_sets"`
}

// LoadCatalog reads a task-set file. JSON files may hold either
// {"task_sets": [...]} or a bare list of sets; .yaml/.yml files are decoded
// with the same shapes.
func LoadCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("task set path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task sets: %w", err)
	}

	var catalog *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		catalog, err = decodeYAML(data)
	default:
		catalog, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode task sets %s: %w", path, err)
	}
	if err := catalog.validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func decodeJSON(data []byte) (*Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var sets []TaskSet
		if err := json.Unmarshal(trimmed, &sets); err != nil {
			return nil, err
		}
		return &Catalog{Sets: sets}, nil
	}
	var catalog Catalog
	if err := json.Unmarshal(trimmed, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func decodeYAML(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		var sets []TaskSet
		if err := root.Content[0].Decode(&sets); err != nil {
			return nil, err
		}
		return &Catalog{Sets: sets}, nil
	}
	var catalog Catalog
	if err := root.Decode(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]string)
	for _, set := range c.Sets {
		for _, task := range set.Tasks {
			if strings.TrimSpace(task.ID) == "" {
				return fmt.Errorf("task set %q contains a task without id", set.ID)
			}
			if other, ok := seen[task.ID]; ok {
				return fmt.Errorf("duplicate task id %q in sets %q and %q", task.ID, other, set.ID)
			}
			seen[task.ID] = set.ID
		}
	}
	return nil
}

// Find returns the task with the given id together with the set that owns it.
func (c *Catalog) Find(id string) (Spec, TaskSet, bool) {
	for _, set := range c.Sets {
		for _, task := range set.Tasks {
			if task.ID == id {
				return task, set, true
			}
		}
	}
	return Spec{}, TaskSet{}, false
}

// Tasks lists every task in file order.
func (c *Catalog) Tasks() []Spec {
	var tasks []Spec
	for _, set := range c.Sets {
		tasks = append(tasks, set.Tasks...)
	}
	return tasks
}

// Weighting resolves the policy name for a task: the task's own value, then
// its set's, then fallback.
func (c *Catalog) Weighting(id, fallback string) string {
	task, set, ok := c.Find(id)
	if !ok {
		return fallback
	}
	if task.Weighting != "" {
		return task.Weighting
	}
	if set.Weighting != "" {
		return set.Weighting
	}
	return fallback
}
