package pkgbuild

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/axon-cli/axon-build/pkg/platform"
)

// archiveEpoch pins tar entry timestamps for reproducible archives,
// matching the builder's SOURCE_DATE_EPOCH.
var archiveEpoch = time.Unix(946684800, 0).UTC()

// Archive writes a tar+zstd dist archive containing the artifact binary into
// destDir, named <name>_<version>_<platform>.tar.zst. Entry metadata is
// normalized so identical inputs produce identical archives.
func Archive(artifact *Artifact, target platform.ID, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create dist dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.tar.zst", artifact.Name, artifact.Version, target)
	dest := filepath.Join(destDir, name)

	out, err := os.Create(dest) //nolint:gosec // Path is constructed by the builder.
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer out.Close() //nolint:errcheck // Best-effort close; explicit close below.

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return "", fmt.Errorf("create zstd writer: %w", err)
	}

	tw := tar.NewWriter(zw)

	if err := addFile(tw, artifact.BinPath, artifact.Name); err != nil {
		return "", err
	}

	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("close tar: %w", err)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("close zstd: %w", err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close archive: %w", err)
	}

	return dest, nil
}

func addFile(tw *tar.Writer, path, name string) error {
	f, err := os.Open(path) //nolint:gosec // Path is constructed by the builder.
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Best-effort close.

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	hdr := &tar.Header{
		Name:    name,
		Mode:    0o755,
		Size:    fi.Size(),
		ModTime: archiveEpoch,
		Format:  tar.FormatPAX,
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write tar header: %w", err)
	}

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("write tar entry: %w", err)
	}

	return nil
}
