package fixtures

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml builtin/*.csv takeaways.yaml
var embedded embed.FS

// Builtin returns the scenarios shipped with the binary: email, spreadsheet
// and research, in that order.
func Builtin() (*Library, error) {
	l, err := loadFS(embedded, "builtin")
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in scenarios: %w", err)
	}
	return l, nil
}

// Takeaway is one entry of the checklist shown when a scenario is completed.
type Takeaway struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type takeawaysFile struct {
	Takeaways []Takeaway `yaml:"takeaways"`
}

// Takeaways returns the built-in completion checklist.
func Takeaways() ([]Takeaway, error) {
	data, err := embedded.ReadFile("takeaways.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read takeaways: %w", err)
	}
	var raw takeawaysFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse takeaways: %w", err)
	}
	return raw.Takeaways, nil
}
