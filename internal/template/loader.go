package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// fixture is the on-disk shape of one template, authored as a
// human-editable .hjson file so demo bodies stay easy to hand-tune.
type fixture struct {
	ID          string             `json:"id"`
	Category    string             `json:"category"`
	Body        string             `json:"body"`
	Demo        string             `json:"demo"`
	ModelPrompt string             `json:"model_prompt"`
	Strict      bool               `json:"strict"`
	Requires    []fixtureRequires  `json:"requires"`
}

type fixtureRequires struct {
	Source   string   `json:"source"`
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

// LoadFromDirectory walks dir for *.hjson fixtures and registers each as
// a compiled Template on r.
func LoadFromDirectory(r *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading template fixture directory %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".hjson") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}

		var f fixture
		if err := hjson.Unmarshal(raw, &f); err != nil {
			return fmt.Errorf("parsing %q: %w", path, err)
		}

		requires := make([]DataRequirement, 0, len(f.Requires))
		for _, req := range f.Requires {
			requires = append(requires, DataRequirement{
				Source:   req.Source,
				Required: req.Required,
				Optional: req.Optional,
			})
		}

		if err := r.Register(f.ID, f.Category, f.Body, requires, f.ModelPrompt, f.Demo, f.Strict); err != nil {
			return fmt.Errorf("registering fixture %q: %w", path, err)
		}
	}
	return nil
}
