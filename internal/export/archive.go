package export

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

// Archive entry names.
const (
	IndexFile    = "index.html"
	ManifestFile = "manifest.json"
)

// PackOptions describe one archive.
type PackOptions struct {
	ChatID   int
	ChatName string
	// BlobDir is the directory blob filenames are resolved against.
	BlobDir string
	// Now stamps the manifest; zero means time.Now.
	Now time.Time
}

func (o PackOptions) title() string {
	if o.ChatName == "" {
		return model.FormatID(o.ChatID)
	}
	return o.ChatName
}

// Manifest is written next to the document in every archive.
type Manifest struct {
	ExportID     string   `json:"export_id"`
	ChatID       string   `json:"chat_id"`
	ChatName     string   `json:"chat_name"`
	ExportedAt   string   `json:"exported_at"`
	Blobs        []string `json:"blobs"`
	MissingBlobs []string `json:"missing_blobs"`
}

func newManifest(opts PackOptions, now time.Time) *Manifest {
	return &Manifest{
		ExportID:     uuid.NewString(),
		ChatID:       model.FormatID(opts.ChatID),
		ChatName:     opts.ChatName,
		ExportedAt:   now.UTC().Format(time.RFC3339),
		Blobs:        []string{},
		MissingBlobs: []string{},
	}
}

// Pack writes a zip archive holding the chat as index.html, each distinct
// referenced blob under blobs/, and a manifest. Blobs missing from BlobDir
// are listed in the manifest rather than failing the archive.
func Pack(w io.Writer, result *model.ExportChatResult, opts PackOptions) (*Manifest, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	manifest := newManifest(opts, now)

	zw := zip.NewWriter(w)

	if err := writeEntry(zw, IndexFile, now, []byte(render.Document(opts.title(), result.HTML))); err != nil {
		return nil, err
	}

	for _, name := range DedupStrings(result.ReferencedBlobs) {
		ok, err := copyBlob(zw, opts.BlobDir, name, now)
		if err != nil {
			return nil, err
		}
		if ok {
			manifest.Blobs = append(manifest.Blobs, name)
		} else {
			manifest.MissingBlobs = append(manifest.MissingBlobs, name)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := writeEntry(zw, ManifestFile, now, append(data, '\n')); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing archive: %w", err)
	}
	return manifest, nil
}

// PackFile writes the archive to path, replacing any existing file.
func PackFile(path string, result *model.ExportChatResult, opts PackOptions) (*Manifest, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	manifest, err := Pack(f, result, opts)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return manifest, nil
}

// DedupStrings removes repeats, keeping first-seen order.
func DedupStrings(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func writeEntry(zw *zip.Writer, name string, modified time.Time, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// copyBlob copies BlobDir/name into the archive. It returns false when the
// blob does not exist.
func copyBlob(zw *zip.Writer, blobDir, name string, modified time.Time) (bool, error) {
	// Blob names are single path elements; anything else never came from
	// a filename component.
	if name != filepath.Base(name) || name == "." || name == ".." {
		return false, nil
	}

	f, err := os.Open(filepath.Join(blobDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening blob %q: %w", name, err)
	}
	defer f.Close()

	entry := render.BlobRef(name)
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     entry,
		Method:   zip.Store,
		Modified: modified,
	})
	if err != nil {
		return false, fmt.Errorf("adding %s: %w", entry, err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return false, fmt.Errorf("copying blob %q: %w", name, err)
	}
	return true, nil
}

// WriteDir lays the export out as a directory: dir/index.html and
// dir/blobs/<name>. Missing blobs are reported in the returned manifest,
// which is also written to dir/manifest.json.
func WriteDir(dir string, result *model.ExportChatResult, opts PackOptions) (*Manifest, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := os.MkdirAll(filepath.Join(dir, render.BlobDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte(render.Document(opts.title(), result.HTML)), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", IndexFile, err)
	}

	manifest := newManifest(opts, now)

	for _, name := range DedupStrings(result.ReferencedBlobs) {
		ok, err := copyBlobFile(opts.BlobDir, name, filepath.Join(dir, render.BlobDir))
		if err != nil {
			return nil, err
		}
		if ok {
			manifest.Blobs = append(manifest.Blobs, name)
		} else {
			manifest.MissingBlobs = append(manifest.MissingBlobs, name)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", ManifestFile, err)
	}

	return manifest, nil
}

func copyBlobFile(blobDir, name, destDir string) (bool, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return false, nil
	}

	src, err := os.Open(filepath.Join(blobDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening blob %q: %w", name, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return false, fmt.Errorf("creating blob %q: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return false, fmt.Errorf("copying blob %q: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return false, fmt.Errorf("closing blob %q: %w", name, err)
	}
	return true, nil
}
