package bake_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-cli/axon-build/pkg/bake"
	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/workspace"
)

var testPkg = workspace.PackageSpec{Name: "axon", Version: "1.2.0"}

func loadTestFile(t *testing.T) *bake.File {
	t.Helper()

	f, err := bake.Load(filepath.Join("testdata", "bake.yaml"), testPkg)
	require.NoError(t, err)

	return f
}

func TestLoadInjectsPackageLabels(t *testing.T) {
	t.Parallel()

	f := loadTestFile(t)

	for _, name := range f.TargetNames() {
		target := f.Targets[name]
		require.Equal(t, "axon", target.Labels["org.opencontainers.image.title"])
		require.Equal(t, "1.2.0", target.Labels["org.opencontainers.image.version"])
	}

	// Hand-written labels survive injection.
	require.Equal(t, "https://github.com/axon-cli/axon",
		f.Targets["axon"].Labels["org.opencontainers.image.source"])
}

func TestArgThreeStateModel(t *testing.T) {
	t.Parallel()

	target := loadTestFile(t).Targets["axon"]

	// Present with value.
	value, present := target.ArgState("PROFILE")
	require.True(t, present)
	require.NotNil(t, value)
	require.Equal(t, "release", *value)

	// Present with null: explicitly disabled, distinct from absent.
	value, present = target.ArgState("SCCACHE_BUCKET")
	require.True(t, present)
	require.Nil(t, value)

	// Absent: inherits the engine default.
	_, present = target.ArgState("RUSTFLAGS")
	require.False(t, present)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, loadTestFile(t).Validate())
}

func TestValidateUnresolvedContext(t *testing.T) {
	t.Parallel()

	f := loadTestFile(t)
	target := f.Targets["axon"]
	target.Contexts = map[string]string{
		"base":    "debian:13-slim", // no scheme: not a concrete reference
		"missing": "target:nonexistent",
		"empty":   "",
	}
	f.Targets["axon"] = target

	err := f.Validate()
	require.ErrorIs(t, err, builderrors.ErrUnresolvedBuildContext)
	require.ErrorContains(t, err, `context "base"`)
	require.ErrorContains(t, err, `context "missing"`)
	require.ErrorContains(t, err, `context "empty"`)
}

func TestValidateMissingFileAndStage(t *testing.T) {
	t.Parallel()

	f := &bake.File{Targets: map[string]bake.Target{"broken": {}}}

	err := f.Validate()
	require.ErrorContains(t, err, "build file is required")
	require.ErrorContains(t, err, "build stage is required")
}

func TestValidateUnknownGroupMember(t *testing.T) {
	t.Parallel()

	f := loadTestFile(t)
	f.Groups["default"] = bake.Group{Targets: []string{"axon", "ghost"}}

	err := f.Validate()
	require.ErrorIs(t, err, builderrors.ErrUnknownTarget)
	require.ErrorContains(t, err, "ghost")
}

func TestSelect(t *testing.T) {
	t.Parallel()

	f := loadTestFile(t)

	names, err := f.Select("")
	require.NoError(t, err)
	require.Equal(t, []string{"axon"}, names)

	names, err = f.Select("builder")
	require.NoError(t, err)
	require.Equal(t, []string{"builder"}, names)

	_, err = f.Select("ghost")
	require.ErrorIs(t, err, builderrors.ErrUnknownTarget)
}

func TestPlan(t *testing.T) {
	t.Parallel()

	data, err := loadTestFile(t).Plan("")
	require.NoError(t, err)

	var plan struct {
		Group map[string]struct {
			Targets []string `json:"targets"`
		} `json:"group"`
		Target map[string]struct {
			Dockerfile string                     `json:"dockerfile"`
			Stage      string                     `json:"target"`
			Platforms  []string                   `json:"platforms"`
			Contexts   map[string]string          `json:"contexts"`
			Args       map[string]json.RawMessage `json:"args"`
			Labels     map[string]string          `json:"labels"`
		} `json:"target"`
	}
	require.NoError(t, json.Unmarshal(data, &plan))

	require.Equal(t, []string{"axon"}, plan.Group["default"].Targets)

	target, ok := plan.Target["axon"]
	require.True(t, ok)
	require.Equal(t, "Containerfile", target.Dockerfile)
	require.Equal(t, "runtime", target.Stage)
	require.Equal(t, []string{"linux/amd64", "linux/arm64"}, target.Platforms)
	require.Equal(t, "docker-image://debian:13-slim", target.Contexts["base"])
	require.Equal(t, "1.2.0", target.Labels["org.opencontainers.image.version"])

	// Explicit null renders as JSON null; absent args are simply missing.
	require.Equal(t, "null", string(target.Args["SCCACHE_BUCKET"]))
	require.Equal(t, `"release"`, string(target.Args["PROFILE"]))
	require.NotContains(t, target.Args, "RUSTFLAGS")
}

func TestPlanWithoutGroupsOmitsGroupBlock(t *testing.T) {
	t.Parallel()

	f := &bake.File{
		Targets: map[string]bake.Target{
			"runtime": {
				File:     "Containerfile",
				Stage:    "runtime",
				Contexts: map[string]string{"base": "docker-image://debian:13-slim"},
			},
		},
	}

	data, err := f.Plan("")
	require.NoError(t, err)

	var plan map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &plan))
	require.Contains(t, plan, "target")
	require.NotContains(t, plan, "group")
}

func TestPlanTargetSelectionOmitsGroupBlock(t *testing.T) {
	t.Parallel()

	data, err := loadTestFile(t).Plan("builder")
	require.NoError(t, err)

	var plan map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &plan))
	require.NotContains(t, plan, "group")
}

func TestPlanValidatesFirst(t *testing.T) {
	t.Parallel()

	f := loadTestFile(t)
	target := f.Targets["axon"]
	target.Contexts = map[string]string{"base": ""}
	f.Targets["axon"] = target

	_, err := f.Plan("")
	require.ErrorIs(t, err, builderrors.ErrUnresolvedBuildContext)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := bake.Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	require.Equal(t, "axon bake file", schema["title"])
	require.Contains(t, schema["properties"], "target")
}
