// Package processor is the batch driver: it lists a catalog, asks the
// operator for a selection and runs the stage pipeline over each selected
// item in order.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"youpull-go/internal/actionable"
	"youpull-go/internal/aggregator"
	"youpull-go/internal/capability"
	"youpull-go/internal/dataset"
	"youpull-go/internal/logger"
	"youpull-go/internal/pipeline"
	"youpull-go/internal/selector"
	"youpull-go/internal/types"
)

// ItemProcessor runs all stages for one item.
type ItemProcessor interface {
	Process(ctx context.Context, item types.CatalogItem) (types.TranscriptDocument, error)
	DiarizationEnabled() bool
}

type Driver struct {
	Lookup    capability.CatalogLookup
	Processor ItemProcessor
	Log       *logger.Logger

	// In and Out carry the selection prompt and the progress bar.
	In  io.Reader
	Out io.Writer

	// Selection, when non-empty, answers the selection prompt.
	Selection  string
	ReportPath string
}

// Run processes the catalog behind reference. It returns selector.ErrQuit
// when the operator quits, and a capability.ErrLookup error when the
// reference cannot be resolved. Failed items never turn into an error here;
// they are reported in the summary.
func (d *Driver) Run(ctx context.Context, reference string) (types.BatchSummary, error) {
	log := d.Log.WithComponent("processor")
	summary := types.BatchSummary{Reference: reference}
	if id, ok := log.Data["run_id"].(string); ok {
		summary.RunID = id
	}

	items, err := d.Lookup.ListItems(ctx, reference)
	if err != nil {
		log.WithError(err).Error("failed to list videos")
		return summary, err
	}
	summary.Found = len(items)
	if len(items) == 0 {
		log.WithField("reference", reference).Error("No videos found in playlist.")
		return summary, nil
	}

	selected, err := d.choose(items)
	if err != nil {
		return summary, err
	}
	log.WithField("found", len(items)).WithField("selected", len(selected)).Info("selection resolved")

	outcomes := d.processAll(ctx, log, selected)

	agg := aggregator.Aggregate(outcomes)
	agg.RunID, agg.Reference, agg.Found = summary.RunID, reference, summary.Found
	agg.Diarization = d.Processor.DiarizationEnabled()
	d.logSummary(log, agg)

	if d.ReportPath != "" {
		if err := dataset.WriteReport(d.ReportPath, agg); err != nil {
			log.WithError(err).Warn("failed to write run report")
		} else {
			log.WithField("path", d.ReportPath).Info("run report saved")
		}
	}
	return agg, nil
}

func (d *Driver) choose(items []types.CatalogItem) ([]types.CatalogItem, error) {
	if strings.TrimSpace(d.Selection) != "" {
		selector.Present(d.Out, items)
		return selector.Resolve(items, d.Selection)
	}
	return selector.Select(items, d.In, d.Out)
}

// processAll walks the selection strictly one item at a time. The progress
// bar advances once per item whatever its outcome.
func (d *Driver) processAll(ctx context.Context, log *logger.Logger, selected []types.CatalogItem) []types.ItemOutcome {
	outcomes := make([]types.ItemOutcome, 0, len(selected))
	if len(selected) == 0 {
		log.Info("nothing selected")
		return outcomes
	}

	bar := progressbar.NewOptions(len(selected),
		progressbar.OptionSetWriter(d.Out),
		progressbar.OptionSetDescription("Processing videos"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(d.Out) }),
	)

	for i, item := range selected {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		itemLog := log.WithItem(item)
		itemLog.WithField("position", fmt.Sprintf("%d/%d", i+1, len(selected))).Info("Processing")

		start := time.Now()
		doc, err := d.Processor.Process(ctx, item)
		o := types.ItemOutcome{
			Index:      i + 1,
			Item:       item,
			Elapsed:    time.Since(start),
			DurationMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			o.Status = types.StatusFailed
			o.Stage = pipeline.FailedStage(err).String()
			o.Error = err.Error()
			itemLog.WithField("stage", o.Stage).WithField("error", err.Error()).Errorf("Failed to process %s", item.Title)
		} else {
			o.Status = types.StatusDone
			o.Document = doc.Path
		}
		outcomes = append(outcomes, o)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return outcomes
}

func (d *Driver) logSummary(log *logger.Logger, s types.BatchSummary) {
	log.WithField("selected", s.Selected).
		WithField("done", s.Done).
		WithField("failed", s.Failed).
		WithField("diarization", s.Diarization).
		Info("batch finished")
	for _, h := range actionable.Generate(s) {
		log.Warn(h.String())
	}
}

// IsQuit reports whether err is the operator's quit request.
func IsQuit(err error) bool { return errors.Is(err, selector.ErrQuit) }
