package bake

import (
	"encoding/json"
	"fmt"
)

// plan is the JSON document handed to the external container build engine.
// Its shape mirrors the engine's own --print output so the description can
// be piped straight in.
type plan struct {
	Group  map[string]Group      `json:"group,omitempty"`
	Target map[string]planTarget `json:"target"`
}

type planTarget struct {
	Dockerfile string             `json:"dockerfile"`
	Stage      string             `json:"target"`
	Platforms  []string           `json:"platforms,omitempty"`
	Contexts   map[string]string  `json:"contexts,omitempty"`
	Args       map[string]*string `json:"args,omitempty"`
	Labels     map[string]string  `json:"labels,omitempty"`
}

// Plan renders the selected targets as an engine-consumable JSON document.
// The description must validate first; Plan never executes a build.
//
// Explicitly unset build arguments render as JSON null so they stay
// observably distinct from absent arguments.
func (f *File) Plan(selection string) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	names, err := f.Select(selection)
	if err != nil {
		return nil, err
	}

	p := plan{Target: make(map[string]planTarget, len(names))}

	// Only groups declared in the description appear in the plan; selecting
	// a bare target (or the implicit all-targets fallback) emits none.
	groupName := selection
	if groupName == "" {
		groupName = DefaultGroup
	}

	if group, ok := f.Groups[groupName]; ok {
		p.Group = map[string]Group{groupName: group}
	}

	for _, name := range names {
		target := f.Targets[name]
		p.Target[name] = planTarget{
			Dockerfile: target.File,
			Stage:      target.Stage,
			Platforms:  target.Platforms,
			Contexts:   target.Contexts,
			Args:       target.Args,
			Labels:     target.Labels,
		}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	return data, nil
}
