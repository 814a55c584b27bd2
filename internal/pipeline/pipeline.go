package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caseflow/casetracker/constants"
	"github.com/caseflow/casetracker/internal/entity"
	"github.com/caseflow/casetracker/internal/extract"
	"github.com/caseflow/casetracker/internal/pagetext"
	"github.com/caseflow/casetracker/internal/reconcile"
	"github.com/caseflow/casetracker/internal/rules"
	"github.com/caseflow/casetracker/internal/tabular"
)

// Options are the per-run settings, passed by value: one invocation is pure
// given its inputs, with no process-wide state.
type Options struct {
	MinAmount    float64
	DedupeOnCase bool
	UseOCR       bool
	RulesJSON    string
}

// Document is one uploaded document as raw bytes, tagged with its file name.
type Document struct {
	Name string
	Data []byte
}

// PageText preserves the full text of one document page for archive export.
type PageText struct {
	Source string
	Page   int
	Text   string
}

// Output bundles the reconciled table with per-run artifacts and the
// warnings collected from skipped or degraded inputs.
type Output struct {
	Result    reconcile.Result
	PageTexts []PageText
	Warnings  []string
}

// Pipeline coordinates one extraction-and-reconciliation pass: decode
// tabular uploads, acquire document page texts, extract fields, reconcile.
type Pipeline struct {
	logger *slog.Logger
	pages  *pagetext.Source
}

func New(pages *pagetext.Source, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, pages: pages}
}

// Run executes one full pass. A failing input contributes a warning, never
// an abort: the pipeline always produces the best table it can from whatever
// inputs succeeded.
func (p *Pipeline) Run(ctx context.Context, tabFiles []tabular.File, docs []Document, opts Options) Output {
	log := p.logger.With("run_id", uuid.New().String())
	var out Output

	rs, warn := rules.Load(opts.RulesJSON)
	if warn != "" {
		out.Warnings = append(out.Warnings, warn)
		log.Warn("rules config rejected", "reason", warn)
	}

	var tabRecords []entity.Record
	for _, f := range tabFiles {
		t, err := tabular.Read(f)
		if err != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("could not read %s: %v", f.Name, err))
			log.Warn("tabular read failed", "file", f.Name, "error", err)
			continue
		}
		recs := tabular.Normalize(t)
		tabRecords = append(tabRecords, recs...)
		log.Info("tabular.ok", "file", f.Name, "rows", len(recs))
	}

	var docRecords []entity.Record
	for _, d := range docs {
		res := p.pages.GetPages(ctx, d.Data, opts.UseOCR)
		for _, w := range res.Warnings {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", d.Name, w))
		}
		for i, pageText := range res.Pages {
			rec := extract.Extract(pageText, rs)
			page := i + 1
			rec.Page = &page
			rec.Source = d.Name
			rec.TextPreview = preview(pageText)
			docRecords = append(docRecords, rec)
			out.PageTexts = append(out.PageTexts, PageText{Source: d.Name, Page: page, Text: pageText})
		}
		log.Info("document.ok", "file", d.Name, "pages", len(res.Pages), "method", res.Method)
	}

	out.Result = reconcile.Reconcile(tabRecords, docRecords, reconcile.Options{
		MinAmount:    opts.MinAmount,
		DedupeOnCase: opts.DedupeOnCase,
	})
	log.Info("reconcile.ok",
		"tabular", len(tabRecords),
		"document", len(docRecords),
		"retained", len(out.Result.Records),
		"high_value", len(out.Result.HighValue),
		"warnings", len(out.Warnings),
	)
	return out
}

func preview(s string) string {
	if len(s) <= constants.PreviewLimit {
		return s
	}
	return s[:constants.PreviewLimit]
}
