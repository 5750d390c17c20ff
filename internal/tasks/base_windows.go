//go:build windows

package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danmuck/depforge/internal/tools"
)

// createCMake, createMSBuild and the three lifecycle methods below are the
// part of Base that actually drives a cmake/msbuild/7z child process
// through internal/tools, so unlike the rest of Base (task.go) they only
// build on Windows.

func (b *Base) createCMake(op tools.Ops) *tools.CMake {
	c := tools.NewCMake(b.buildCfg.Tools.CMake, b.SourcePath(), op, b.verbose, b.dry)
	if b.spec.CMakeDefs != nil {
		for _, key := range sortedDefKeys(b.spec.CMakeDefs()) {
			c.Def(key, b.spec.CMakeDefs()[key])
		}
	}
	return c
}

// solutionPath mirrors every task's solution_path(): build a generate-mode
// cmake tool just far enough to read its build_path(), without running it.
func (b *Base) solutionPath() string {
	return filepath.Join(b.createCMake(tools.OpGenerate).BuildPath(), "INSTALL.vcxproj")
}

func (b *Base) createMSBuild(op tools.Ops) *tools.MSBuild {
	return tools.NewMSBuild(b.buildCfg.Tools.MSBuild, b.solutionPath(), op, b.verbose, b.dry)
}

// Clean implements spec.md §4.6's do_clean dispatch: each bit is
// independent except reextract, which short-circuits the rest because
// deleting the source directory makes reconfigure/rebuild moot.
func (b *Base) Clean(ctx context.Context, cx tools.Context, c Clean) error {
	if c.Has(Redownload) {
		d := tools.NewDownloader(b.archiveURL(), b.downloadsDir(), tools.OpRedownload)
		if _, err := d.Run(ctx, cx); err != nil {
			return fmt.Errorf("tasks: %s redownload clean: %w", b.spec.Name, err)
		}
	}

	if c.Has(Reextract) {
		cx.Tracef("reextract", "deleting %s", b.SourcePath())
		if err := os.RemoveAll(b.SourcePath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("tasks: %s reextract clean: %w", b.spec.Name, err)
		}
		return nil
	}

	if c.Has(Reconfigure) {
		if _, err := b.createCMake(tools.OpClean).Run(ctx, cx); err != nil {
			return fmt.Errorf("tasks: %s reconfigure clean: %w", b.spec.Name, err)
		}
	}

	if c.Has(Rebuild) {
		if _, err := b.createMSBuild(tools.OpClean).Run(ctx, cx); err != nil {
			return fmt.Errorf("tasks: %s rebuild clean: %w", b.spec.Name, err)
		}
	}

	return nil
}

// Fetch downloads and extracts the dependency's archive.
func (b *Base) Fetch(ctx context.Context, cx tools.Context) error {
	d := tools.NewDownloader(b.archiveURL(), b.downloadsDir(), tools.OpDownload)
	result, err := d.Run(ctx, cx)
	if err != nil {
		return fmt.Errorf("tasks: %s fetch: %w", b.spec.Name, err)
	}
	file := result.(string)

	e := tools.NewExtractor(b.buildCfg.Tools.SevenZip, file, b.SourcePath(), b.verbose, b.dry)
	if _, err := e.Run(ctx, cx); err != nil {
		return fmt.Errorf("tasks: %s extract: %w", b.spec.Name, err)
	}
	return nil
}

// BuildAndInstall runs cmake generate followed by an msbuild build, which
// folds install in via the INSTALL.vcxproj target.
func (b *Base) BuildAndInstall(ctx context.Context, cx tools.Context) error {
	if _, err := b.createCMake(tools.OpGenerate).Run(ctx, cx); err != nil {
		return fmt.Errorf("tasks: %s generate: %w", b.spec.Name, err)
	}
	if _, err := b.createMSBuild(tools.OpBuild).Run(ctx, cx); err != nil {
		return fmt.Errorf("tasks: %s build: %w", b.spec.Name, err)
	}
	return nil
}
