package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/axon-cli/axon-build/pkg/bake"
	"github.com/axon-cli/axon-build/pkg/toolchain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// renderBakeFile lists the groups and targets of a build description. With
// styled false the output is stable plain text for pipes and tests.
func renderBakeFile(f *bake.File, styled bool) string {
	var sb strings.Builder

	writeHeading(&sb, "Groups:", styled)

	for _, name := range sortedKeys(f.Groups) {
		writeItem(&sb, name, strings.Join(f.Groups[name].Targets, ", "), styled)
	}

	writeHeading(&sb, "Targets:", styled)

	for _, name := range f.TargetNames() {
		target := f.Targets[name]
		detail := fmt.Sprintf("%s (stage %s)", target.File, target.Stage)
		writeItem(&sb, name, detail, styled)
	}

	return sb.String()
}

// renderToolchain lists a composed toolchain's channel and components.
func renderToolchain(tc *toolchain.Spec, styled bool) string {
	var sb strings.Builder

	writeHeading(&sb, "Channel: "+tc.Channel(), styled)

	for _, ref := range tc.Components() {
		writeItem(&sb, string(ref.Role), ref.Name, styled)
	}

	return sb.String()
}

func writeHeading(sb *strings.Builder, text string, styled bool) {
	if styled {
		text = headerStyle.Render(text)
	}

	sb.WriteString(text)
	sb.WriteString("\n")
}

func writeItem(sb *strings.Builder, label, value string, styled bool) {
	if styled {
		label = labelStyle.Render(label)
		value = valueStyle.Render(value)
	}

	fmt.Fprintf(sb, "  %s: %s\n", label, value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
