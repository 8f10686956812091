// Package content holds the portfolio's static payload: hero roles, work
// history, tech stack, projects and profile links. The default payload is
// embedded; a YAML file can replace it.
package content

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Content is the whole page payload.
type Content struct {
	Name        string         `yaml:"name"`
	Roles       []string       `yaml:"roles"`
	CareerStart Date           `yaml:"career_start"`
	Links       Links          `yaml:"links"`
	Work        []WorkItem     `yaml:"work"`
	TechStack   []TechCategory `yaml:"tech_stack"`
	Projects    []Project      `yaml:"projects"`
	Notice      string         `yaml:"notice"`
}

// Links are profile destinations.
type Links struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Email    string `yaml:"email"`
}

// WorkItem is one employer with its role timeline.
type WorkItem struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Timeline    []TimelineStep `yaml:"timeline"`
}

// TimelineStep is one position held.
type TimelineStep struct {
	Role        string   `yaml:"role"`
	Type        string   `yaml:"type"`
	Duration    string   `yaml:"duration"`
	Location    string   `yaml:"location"`
	Skills      []string `yaml:"skills"`
	Description string   `yaml:"description"`
}

// TechCategory groups related technologies.
type TechCategory struct {
	Name         string   `yaml:"name"`
	Technologies []string `yaml:"technologies"`
}

// Project is one portfolio entry.
type Project struct {
	Title            string   `yaml:"title"`
	Category         string   `yaml:"category"`
	Description      string   `yaml:"description"`
	Tags             []string `yaml:"tags"`
	Responsibilities []string `yaml:"responsibilities"`
}

// Date is a calendar date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

// UnmarshalYAML parses a YYYY-MM-DD scalar.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	t, err := time.Parse(time.DateOnly, node.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", node.Value, err)
	}
	d.Time = t
	return nil
}

// Default returns the embedded payload.
func Default() (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("content: parse embedded payload: %w", err)
	}
	return &c, nil
}

// LoadFile reads a payload from path. An empty path returns Default.
func LoadFile(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a payload from r.
func Load(r io.Reader) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	return &c, nil
}

// AllTechnologies flattens the tech stack in category order.
func (c *Content) AllTechnologies() []string {
	var out []string
	for _, cat := range c.TechStack {
		out = append(out, cat.Technologies...)
	}
	return out
}

// Experience renders the time since start as "N years M months".
func Experience(start, now time.Time) string {
	years := now.Year() - start.Year()
	months := int(now.Month()) - int(start.Month())
	if months < 0 {
		years--
		months += 12
	}
	return fmt.Sprintf("%d years %d months", years, months)
}
