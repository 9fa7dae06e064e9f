package platform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/platform"
)

func TestResolveDarwin(t *testing.T) {
	t.Parallel()

	deps, err := platform.Resolve(platform.Darwin)
	require.NoError(t, err)

	require.Equal(t, []platform.Dependency{
		{Name: "AppKit", Kind: platform.KindFramework},
		{Name: "Security", Kind: platform.KindFramework},
		{Name: "SystemConfiguration", Kind: platform.KindFramework},
	}, deps.Dependencies())

	require.Equal(t, []string{
		"-framework", "AppKit",
		"-framework", "Security",
		"-framework", "SystemConfiguration",
	}, deps.LinkFlags())

	require.Equal(t, "DYLD_FALLBACK_FRAMEWORK_PATH", deps.SearchPathVar())
	require.Equal(t, []string{"/System/Library/Frameworks"}, deps.SearchPaths())
}

func TestResolveLinux(t *testing.T) {
	t.Parallel()

	deps, err := platform.Resolve(platform.Linux)
	require.NoError(t, err)
	require.Empty(t, deps.Dependencies())
	require.Empty(t, deps.LinkFlags())
	require.Empty(t, deps.SearchPaths())
	require.Equal(t, "LD_LIBRARY_PATH", deps.SearchPathVar())
}

func TestResolveUnsupported(t *testing.T) {
	t.Parallel()

	_, err := platform.Resolve(platform.ID("plan9"))
	require.ErrorIs(t, err, builderrors.ErrUnsupportedPlatform)
}

// Resolution must be pure: repeated calls return identical sets, and mutating
// a returned set must not affect subsequent resolutions.
func TestResolveIsPure(t *testing.T) {
	t.Parallel()

	for _, id := range platform.IDs() {
		first, err := platform.Resolve(id)
		require.NoError(t, err)

		got := first.Dependencies()
		if len(got) > 0 {
			got[0].Name = "mutated"
		}

		second, err := platform.Resolve(id)
		require.NoError(t, err)
		require.Equal(t, first.Dependencies(), second.Dependencies())
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := platform.ParseID("macos")
	require.NoError(t, err)
	require.Equal(t, platform.Darwin, id)

	id, err = platform.ParseID("linux")
	require.NoError(t, err)
	require.Equal(t, platform.Linux, id)

	_, err = platform.ParseID("windows")
	require.ErrorIs(t, err, builderrors.ErrUnsupportedPlatform)
}
