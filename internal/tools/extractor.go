//go:build windows

package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/depforge/internal/winproc"
)

// Extractor unpacks an archive into a destination directory using 7-Zip,
// grounded on original_source/src/tools/extractor.cpp: tar.gz is piped
// through two 7z invocations (decompress | untar, SPEC_FULL.md §4.1), any
// other archive is extracted directly. After extraction it collapses a
// single top-level directory matching the destination's name up one level
// (SPEC_FULL.md §4.2) and tracks an interruption marker file
// (SPEC_FULL.md §4.3) so a resumed fetch can tell a prior run was cut off.
type Extractor struct {
	sevenZip string
	file     string
	dest     string
	verbose  bool
	dry      bool
}

// NewExtractor builds an extractor for one archive -> directory pair.
func NewExtractor(sevenZip, file, dest string, verbose, dry bool) *Extractor {
	return &Extractor{sevenZip: sevenZip, file: file, dest: dest, verbose: verbose, dry: dry}
}

func (e *Extractor) markerPath() string {
	return filepath.Join(e.dest, ".depforge-extracting")
}

// Run implements Tool, returning the destination directory on success.
func (e *Extractor) Run(ctx context.Context, cx Context) (any, error) {
	marker := e.markerPath()
	resuming := fileExists(marker)

	if resuming {
		cx.Debugf("extractor: previous extraction of %s into %s was interrupted; resuming", e.file, e.dest)
	} else if fileExists(e.dest) {
		cx.Tracef("bypass", "directory %s already exists", e.dest)
		return e.dest, nil
	}

	cx.Tracef("generic", "extracting %s into %s", e.file, e.dest)
	if err := os.MkdirAll(e.dest, 0o755); err != nil {
		return nil, fmt.Errorf("extractor: mkdir %s: %w", e.dest, err)
	}
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return nil, fmt.Errorf("extractor: write marker %s: %w", marker, err)
	}

	var interrupted bool
	var runErr error
	if strings.HasSuffix(e.file, ".tar.gz") {
		interrupted, runErr = e.extractTarGz(ctx)
	} else {
		interrupted, runErr = e.extractDirect(ctx)
	}
	if runErr != nil {
		return nil, runErr
	}

	if err := e.collapseTopLevelDirectory(); err != nil {
		return nil, err
	}

	// A run that was interrupted joins with a nil error (Runner.Join
	// suppresses the exit-code check once Interrupt has fired), so the
	// marker must only be cleared on a genuine completion, mirroring
	// extractor.cpp's if (!interrupted()) ifile.remove().
	if !interrupted {
		_ = os.Remove(marker)
	}
	return e.dest, nil
}

func (e *Extractor) extractDirect(ctx context.Context) (bool, error) {
	spec := winproc.NewBuilder().
		Name("extract").
		Binary(e.sevenZip).
		SetVerboseHint(e.verbose).
		AddArg("", winproc.StringArg("x"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-aoa"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-bd"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-bb0"), winproc.NoArgFlags).
		AddArg("-o", winproc.PathArg(e.dest), winproc.NoSpace).
		AddArg("", winproc.PathArg(e.file), winproc.NoArgFlags).
		Build(e.verbose)

	return runAndJoin(ctx, "extract", spec, e.dry)
}

func (e *Extractor) extractTarGz(ctx context.Context) (bool, error) {
	untar := winproc.NewBuilder().
		Binary(e.sevenZip).
		SetVerboseHint(e.verbose).
		AddArg("", winproc.StringArg("x"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-so"), winproc.NoArgFlags).
		AddArg("", winproc.PathArg(e.file), winproc.NoArgFlags).
		Build(e.verbose)

	decompress := winproc.NewBuilder().
		Binary(e.sevenZip).
		SetVerboseHint(e.verbose).
		AddArg("", winproc.StringArg("x"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-aoa"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-si"), winproc.NoArgFlags).
		AddArg("", winproc.StringArg("-ttar"), winproc.NoArgFlags).
		AddArg("-o", winproc.PathArg(e.dest), winproc.NoSpace).
		Build(e.verbose)

	piped := winproc.Pipe(untar, decompress)
	return runAndJoin(ctx, "extract", piped, e.dry)
}

// collapseTopLevelDirectory implements extractor.cpp's
// check_for_top_level_directory: if the archive produced a single
// subdirectory sharing the destination's name, promote its contents and
// delete everything else that isn't the marker file.
func (e *Extractor) collapseTopLevelDirectory() error {
	dirName := filepath.Base(e.dest)
	nested := filepath.Join(e.dest, dirName)
	if !fileExists(nested) {
		return nil
	}

	entries, err := os.ReadDir(e.dest)
	if err != nil {
		return fmt.Errorf("extractor: read %s: %w", e.dest, err)
	}
	markerName := filepath.Base(e.markerPath())
	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), dirName) || entry.Name() == markerName {
			continue
		}
		if entry.IsDir() {
			return fmt.Errorf("extractor: %s contains another directory %s alongside %s, refusing to guess layout",
				e.dest, entry.Name(), dirName)
		}
		if err := os.Remove(filepath.Join(e.dest, entry.Name())); err != nil {
			return fmt.Errorf("extractor: remove stray file %s: %w", entry.Name(), err)
		}
	}

	temp := filepath.Join(e.dest, "_depforge_"+dirName)
	if fileExists(temp) {
		if err := os.RemoveAll(temp); err != nil {
			return err
		}
	}
	if err := os.Rename(nested, temp); err != nil {
		return fmt.Errorf("extractor: rename %s -> %s: %w", nested, temp, err)
	}

	promoted, err := os.ReadDir(temp)
	if err != nil {
		return err
	}
	for _, entry := range promoted {
		if err := os.Rename(filepath.Join(temp, entry.Name()), filepath.Join(e.dest, entry.Name())); err != nil {
			return fmt.Errorf("extractor: promote %s: %w", entry.Name(), err)
		}
	}
	return os.RemoveAll(temp)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// runAndJoin spawns spec under a fresh winproc.Runner and joins it,
// surfacing any join error and whether the run was cut off by ctx.
// Used by every tool in this package that runs a child process. It is the
// one place ctx cancellation (cmd/depforge's Ctrl+C signal.NotifyContext)
// turns into a graceful console-break request, spec.md §1's cooperative
// interrupt translation.
func runAndJoin(ctx context.Context, name string, spec winproc.Spec, dry bool) (bool, error) {
	runner := winproc.NewRunner(name)
	if err := runner.Run(spec, dry); err != nil {
		return false, err
	}

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			runner.Interrupt()
		case <-watchDone:
		}
	}()

	err := runner.Join(spec)
	return runner.Interrupted(), err
}
