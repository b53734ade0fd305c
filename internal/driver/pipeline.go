package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"tmplfmt/internal/cache"
	"tmplfmt/internal/diag"
	"tmplfmt/internal/format"
	"tmplfmt/internal/observ"
	"tmplfmt/internal/rewrite"
	"tmplfmt/internal/source"
	"tmplfmt/internal/trace"
)

// Result is the outcome of one input.
type Result struct {
	Path      string
	FileID    source.FileID // the input as loaded
	Rewritten source.FileID // the text the formatter saw; spans in Bag point here
	Output    string
	Passes    int
	Hits      rewrite.Hits
	Bag       *diag.Bag
	Stages    *observ.Stages
	Cached    bool
	Err       error // fatal for this input; Output is empty
}

// Pipeline processes inputs registered in one FileSet.
type Pipeline struct {
	fs     *source.FileSet
	opts   Options
	engine *rewrite.Engine
	fp     string
}

// New builds a pipeline over fs.
func New(fs *source.FileSet, opts Options) *Pipeline {
	opts = opts.withDefaults()
	return &Pipeline{
		fs:   fs,
		opts: opts,
		engine: rewrite.NewEngine(opts.Table, rewrite.Options{
			MaxPasses: opts.MaxPasses,
			Literals:  opts.Literals,
		}),
		fp: opts.Fingerprint(),
	}
}

// Engine returns the rewrite engine the pipeline uses.
func (p *Pipeline) Engine() *rewrite.Engine { return p.engine }

// Load reads every path into fs in order. "-" reads stdin; no paths at all
// reads stdin once.
func Load(fs *source.FileSet, paths []string, stdin io.Reader) ([]source.FileID, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	ids := make([]source.FileID, 0, len(paths))
	stdinUsed := false
	for _, path := range paths {
		if path == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("standard input given more than once")
			}
			stdinUsed = true
			id, err := fs.LoadReader(source.StdinName, stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read standard input: %w", err)
			}
			ids = append(ids, id)
			continue
		}
		id, err := fs.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ProcessAll runs Process for every id concurrently and returns the results
// in the order of ids. Per-input failures are reported in Result.Err; the
// returned error is only set when ctx is cancelled.
func (p *Pipeline) ProcessAll(ctx context.Context, ids []source.FileID) ([]Result, error) {
	results := make([]Result, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.opts.Jobs, len(ids)))

	for i, id := range ids {
		p.opts.Progress.OnEvent(Event{Index: i, Path: p.fs.Get(id).Path, Status: StatusQueued})
	}

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индексы уникальны для каждой горутины, мьютекс не нужен
			results[i] = p.process(gctx, i, id)
			if errors.Is(results[i].Err, context.Canceled) || errors.Is(results[i].Err, context.DeadlineExceeded) {
				return results[i].Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Process runs normalize, rewrite and format for one input.
func (p *Pipeline) Process(ctx context.Context, id source.FileID) Result {
	return p.process(ctx, 0, id)
}

func (p *Pipeline) process(ctx context.Context, index int, id source.FileID) Result {
	file := p.fs.Get(id)
	started := time.Now()
	emit := func(stage Stage, status Status, err error) {
		p.opts.Progress.OnEvent(Event{
			Index:   index,
			Path:    file.Path,
			Stage:   stage,
			Status:  status,
			Err:     err,
			Elapsed: time.Since(started),
		})
	}

	res := Result{
		Path:   file.Path,
		FileID: id,
		Bag:    diag.NewBag(p.opts.MaxDiagnostics),
		Stages: &observ.Stages{},
		Hits:   rewrite.Hits{},
	}

	tr := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)

	emit(StageNormalize, StatusWorking, nil)
	stop := res.Stages.Start(string(StageNormalize))
	span := trace.Begin(tr, trace.ScopeStage, "normalize", parent).Set("path", file.Path)
	text := Normalize(string(file.Content), p.opts.PreserveLines)
	span.SetInt("bytes", len(text)).End("")
	stop("")

	key := cache.KeyOf(p.fp, text)
	if p.opts.Cache != nil && p.fromCache(key, &res, tr, parent) {
		emit(StageFormat, StatusDone, nil)
		return res
	}

	rewritten := text
	if p.opts.Rewrite {
		emit(StageRewrite, StatusWorking, nil)
		stop = res.Stages.Start(string(StageRewrite))
		out, err := p.engine.Rewrite(ctx, text)
		stop(fmt.Sprintf("%d passes, %d hits", out.Passes, out.Hits.Total()))
		res.Passes, res.Hits, rewritten = out.Passes, out.Hits, out.Text
		if err != nil {
			res.Rewritten = p.fs.AddDerived(id, []byte(rewritten))
			if errors.Is(err, rewrite.ErrNoFixpoint) {
				diag.Emit(diag.BagReporter{Bag: res.Bag},
					diag.Error(diag.RewriteNoFixpoint, source.SpanOf(res.Rewritten, 0, 0), err.Error()).
						WithNote(source.Span{File: res.Rewritten}, "raise --max-passes or disable the pattern that keeps growing"))
			}
			res.Err = fmt.Errorf("%s: %w", file.Path, err)
			emit(StageRewrite, StatusError, res.Err)
			return res
		}
	}
	res.Rewritten = p.fs.AddDerived(id, []byte(rewritten))

	emit(StageFormat, StatusWorking, nil)
	stop = res.Stages.Start(string(StageFormat))
	span = trace.Begin(tr, trace.ScopeStage, "format", parent).Set("path", file.Path)
	res.Output = format.Format(rewritten, format.Options{
		MinParams: p.opts.MinParams,
		Indent:    p.opts.Indent,
		Reporter:  diag.BagReporter{Bag: res.Bag},
		File:      res.Rewritten,
	})
	span.End("")
	stop("")

	if p.opts.Cache != nil {
		p.toCache(key, rewritten, &res, tr, parent)
	}
	emit(StageFormat, StatusDone, nil)
	return res
}

func (p *Pipeline) fromCache(key cache.Key, res *Result, tr trace.Tracer, parent uint64) bool {
	var entry cache.Entry
	ok, err := p.opts.Cache.Get(key, &entry)
	if err != nil {
		trace.Point(tr, trace.ScopeStage, "cache", "read failed: "+err.Error(), parent)
		return false
	}
	if !ok {
		trace.Point(tr, trace.ScopeStage, "cache", "miss", parent)
		return false
	}
	trace.Point(tr, trace.ScopeStage, "cache", "hit", parent)

	res.Cached = true
	res.Rewritten = p.fs.AddDerived(res.FileID, []byte(entry.Rewritten))
	res.Output = entry.Output
	res.Passes = entry.Passes
	for name, n := range entry.Hits {
		res.Hits[name] = n
	}
	for _, d := range entry.Diagnostics {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: res.Rewritten, Start: d.Start, End: d.End},
		})
	}
	return true
}

// toCache stores a successful result. Cache failures never fail the input.
func (p *Pipeline) toCache(key cache.Key, rewritten string, res *Result, tr trace.Tracer, parent uint64) {
	entry := cache.Entry{
		Rewritten: rewritten,
		Output:    res.Output,
		Passes:    res.Passes,
		Hits:      res.Hits,
	}
	for _, d := range res.Bag.Items() {
		entry.Diagnostics = append(entry.Diagnostics, cache.Diagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	if err := p.opts.Cache.Put(key, &entry); err != nil {
		trace.Point(tr, trace.ScopeStage, "cache", "write failed: "+err.Error(), parent)
	}
}
