// Package app wires discovery, selection, deletion, and reporting into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lakshaymaurya-felt/nmsweep/internal/core"
	"github.com/lakshaymaurya-felt/nmsweep/internal/discover"
	"github.com/lakshaymaurya-felt/nmsweep/internal/diskstat"
	"github.com/lakshaymaurya-felt/nmsweep/internal/logging"
	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
	"github.com/lakshaymaurya-felt/nmsweep/internal/purge"
	"github.com/lakshaymaurya-felt/nmsweep/internal/report"
	"github.com/lakshaymaurya-felt/nmsweep/internal/selector"
	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

const selectTitle = "Select projects to clean."

// SelectFunc narrows the discovered projects. Returning selector.ErrAborted
// ends the run without deleting anything.
type SelectFunc func(title string, projects []project.Project) ([]project.Project, error)

// Options is everything one run needs. Depth and Concurrency are passed
// explicitly rather than read from globals.
type Options struct {
	Root        string
	Depth       int
	Concurrency int
	Manifest    string
	CacheDir    string
	Exclude     []string

	// Silent suppresses every line of output; deletion still runs to completion.
	Silent bool

	// Interactive asks the user to pick projects before deleting.
	Interactive bool

	// Live renders the bubbletea progress view instead of plain lines.
	Live bool

	Out    io.Writer
	Select SelectFunc
}

// Run performs one sweep. Per-project failures are shown in the output only;
// they never turn into an error here.
func Run(ctx context.Context, opts Options) error {
	log := logging.FromContext(ctx)
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	scanner := discover.New(discover.Options{
		Manifest: opts.Manifest,
		CacheDir: opts.CacheDir,
		MaxDepth: opts.Depth,
		Exclude:  opts.Exclude,
	})
	projects := scanner.Scan(logging.WithComponent(ctx, "discover"), opts.Root)
	log.Debug().
		Int("projects", len(projects)).
		Int64("visited", scanner.VisitedCount()).
		Int("warnings", len(scanner.Warnings())).
		Msg("discovery finished")

	if n := len(scanner.Warnings()); n > 0 && !opts.Silent {
		fmt.Fprintln(opts.Out, ui.TagWarningStyle().Render(fmt.Sprintf("%d unreadable directories skipped", n)))
	}

	if len(projects) == 0 {
		if !opts.Silent {
			fmt.Fprintf(opts.Out, "No %s folders found.\n", opts.CacheDir)
		}
		return nil
	}

	if opts.Interactive {
		pick := opts.Select
		if pick == nil {
			pick = selector.RunTerminal
		}
		selected, err := pick(selectTitle, projects)
		if errors.Is(err, selector.ErrAborted) {
			log.Debug().Msg("selection aborted")
			return nil
		}
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			if !opts.Silent {
				fmt.Fprintln(opts.Out, "Nothing selected.")
			}
			return nil
		}
		projects = selected
	}

	freeBefore, freeErr := diskstat.Free(opts.Root)
	if freeErr != nil {
		log.Debug().Err(freeErr).Msg("free space unavailable")
	}

	pool := purge.New(purge.Options{CacheDir: opts.CacheDir, Concurrency: opts.Concurrency})
	events := pool.Run(ctx, projects)

	if opts.Silent {
		report.Discard(projects, events)
		return nil
	}

	var sum report.Summary
	if opts.Live {
		var err error
		sum, err = report.Run(ctx, opts.Out, opts.CacheDir, projects, events)
		if err != nil {
			return err
		}
	} else {
		sum = report.Print(opts.Out, projects, events)
	}

	var reclaimed uint64
	if freeErr == nil {
		if freeAfter, err := diskstat.Free(opts.Root); err == nil {
			reclaimed = diskstat.Reclaimed(freeBefore, freeAfter)
		}
	}
	fmt.Fprintln(opts.Out, formatSummary(sum, reclaimed, freeErr == nil))
	return nil
}

// formatSummary renders e.g. "3 cleaned · 1 failed · 1.2 GB reclaimed".
func formatSummary(sum report.Summary, reclaimed uint64, showReclaimed bool) string {
	parts := []string{ui.SuccessStyle().Render(fmt.Sprintf("%d cleaned", sum.Done))}
	if sum.Failed > 0 {
		parts = append(parts, ui.ErrorStyle().Render(fmt.Sprintf("%d failed", sum.Failed)))
	}
	if showReclaimed {
		parts = append(parts, ui.MutedStyle().Render(core.FormatSize(reclaimed)+" reclaimed"))
	}
	return strings.Join(parts, ui.MutedStyle().Render(" · "))
}
