package completions

import (
	"fmt"
	"os"
	"path/filepath"
)

// scriptPath returns the shell's expected completion path for a binary name,
// relative to the share prefix.
func scriptPath(shell Shell, name string) string {
	switch shell {
	case Bash:
		return filepath.Join("bash-completion", "completions", name)
	case Fish:
		return filepath.Join("fish", "vendor_completions.d", name+".fish")
	case Zsh:
		return filepath.Join("zsh", "site-functions", "_"+name)
	default:
		return ""
	}
}

// Install persists generated completion scripts under sharePrefix (e.g.
// /usr/local/share), returning the written path per shell. Existing scripts
// are overwritten; artifacts are never reused across builds.
func Install(artifacts map[Shell]Artifact, name, sharePrefix string) (map[Shell]string, error) {
	installed := make(map[Shell]string, len(artifacts))

	for _, shell := range Shells() {
		artifact, ok := artifacts[shell]
		if !ok {
			continue
		}

		rel := scriptPath(shell, name)
		path := filepath.Join(sharePrefix, rel)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return installed, fmt.Errorf("create completion dir: %w", err)
		}

		if err := os.WriteFile(path, []byte(artifact.Script), 0o644); err != nil { //nolint:gosec // Completion scripts are world-readable.
			return installed, fmt.Errorf("write %s completion: %w", shell, err)
		}

		installed[shell] = path
	}

	return installed, nil
}
