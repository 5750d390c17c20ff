//go:build windows

package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/danmuck/depforge/internal/tools"
)

func (l *LZ4) Clean(ctx context.Context, cx tools.Context, c Clean) error {
	if c.Has(Redownload) {
		d := tools.NewDownloader(l.archiveURL(), l.downloadsDir(), tools.OpRedownload)
		if _, err := d.Run(ctx, cx); err != nil {
			return fmt.Errorf("tasks: lz4 redownload clean: %w", err)
		}
	}

	if c.Has(Reextract) {
		cx.Tracef("reextract", "deleting %s", l.SourcePath())
		if err := os.RemoveAll(l.SourcePath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("tasks: lz4 reextract clean: %w", err)
		}
		return nil
	}

	if c.Has(Rebuild) {
		mb := tools.NewMSBuild(l.buildCfg.Tools.MSBuild, l.solutionPath(), tools.OpClean, l.verbose, l.dry)
		if _, err := mb.Run(ctx, cx); err != nil {
			return fmt.Errorf("tasks: lz4 rebuild clean: %w", err)
		}
	}

	return nil
}

func (l *LZ4) Fetch(ctx context.Context, cx tools.Context) error {
	d := tools.NewDownloader(l.archiveURL(), l.downloadsDir(), tools.OpDownload)
	result, err := d.Run(ctx, cx)
	if err != nil {
		return fmt.Errorf("tasks: lz4 fetch: %w", err)
	}
	file := result.(string)

	e := tools.NewExtractor(l.buildCfg.Tools.SevenZip, file, l.SourcePath(), l.verbose, l.dry)
	if _, err := e.Run(ctx, cx); err != nil {
		return fmt.Errorf("tasks: lz4 extract: %w", err)
	}
	return nil
}

func (l *LZ4) BuildAndInstall(ctx context.Context, cx tools.Context) error {
	mb := tools.NewMSBuild(l.buildCfg.Tools.MSBuild, l.solutionPath(), tools.OpBuild, l.verbose, l.dry)
	if _, err := mb.Run(ctx, cx); err != nil {
		return fmt.Errorf("tasks: lz4 build: %w", err)
	}
	return nil
}
