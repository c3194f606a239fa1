package task

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"vidscribe/internal/textutil"
)

// intermediateDirName holds downloads and other byproducts inside a run
// folder. Only the final transcript lives at the folder root.
const intermediateDirName = "intermediate"

// RunPaths locates one task's working area on disk.
type RunPaths struct {
	// Root is the run folder; the transcript artifact is written here.
	Root string
	// Intermediate holds downloaded audio and subtitle files.
	Intermediate string
}

// TranscriptPath returns the artifact path for a title and file extension.
func (p RunPaths) TranscriptPath(title, ext string) string {
	return filepath.Join(p.Root, textutil.SanitizeTitle(title)+"."+ext)
}

// CreateRunDir creates a fresh run folder under baseDir named
// "{title}_transcript_{YYMMDD-HHMM}". When that name is taken, numeric
// suffixes (_1, _2, ...) probe for a free one. A file lock on baseDir
// serializes the probe-and-create window against concurrent processes.
func CreateRunDir(baseDir, title string, now time.Time) (RunPaths, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return RunPaths{}, fmt.Errorf("ensure output directory: %w", err)
	}

	lock := flock.New(filepath.Join(baseDir, ".vidscribe.lock"))
	if err := lock.Lock(); err != nil {
		return RunPaths{}, fmt.Errorf("acquire output lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	base := fmt.Sprintf("%s_transcript_%s", textutil.SanitizeTitle(title), now.Format("060102-1504"))
	name := base
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(baseDir, name)); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}

	root := filepath.Join(baseDir, name)
	intermediate := filepath.Join(root, intermediateDirName)
	if err := os.MkdirAll(intermediate, 0o755); err != nil {
		return RunPaths{}, fmt.Errorf("create run directory: %w", err)
	}
	return RunPaths{Root: root, Intermediate: intermediate}, nil
}
