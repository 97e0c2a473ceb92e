// Package scanners finds JavaScript sources and runs the rule engine over
// them on a bounded worker pool.
package scanners

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JA3G3R/lintzard/parser"
	"github.com/JA3G3R/lintzard/report"
	"github.com/JA3G3R/lintzard/rules"
	"github.com/JA3G3R/lintzard/types"
)

// Input is one unit to analyse. When Source is nil the file at Path is read.
type Input struct {
	Path   string
	Source []byte
}

type Options struct {
	Workers      int
	ParseTimeout time.Duration
	MinSeverity  types.Severity
}

type Scanner struct {
	engine *rules.Engine
	opts   Options
	log    *zap.Logger
}

func New(engine *rules.Engine, opts Options, log *zap.Logger) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.MinSeverity == "" {
		opts.MinSeverity = types.SeverityInfo
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{engine: engine, opts: opts, log: log}
}

// ScanPaths discovers the JavaScript files under each root and scans them.
func (s *Scanner) ScanPaths(ctx context.Context, roots ...string) (*types.Report, error) {
	seen := map[string]bool{}
	var inputs []Input
	for _, root := range roots {
		files, err := Discover(root)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				inputs = append(inputs, Input{Path: f})
			}
		}
	}
	return s.Scan(ctx, inputs)
}

// Scan analyses inputs in parallel. Per-file failures end up in the report;
// only cancellation of ctx fails the run.
func (s *Scanner) Scan(ctx context.Context, inputs []Input) (*types.Report, error) {
	start := time.Now()
	agg := report.NewAggregator(s.opts.MinSeverity)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		in := in
		g.Go(func() error {
			s.scanOne(gctx, in, agg)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := agg.Report("")
	s.log.Info("scan complete",
		zap.String("run_id", rep.RunID),
		zap.Int("files", rep.Summary.FilesAnalyzed),
		zap.Int("findings", rep.Summary.Total),
		zap.Int("workers", s.opts.Workers),
		zap.Duration("duration", time.Since(start)))
	return rep, nil
}

func (s *Scanner) scanOne(ctx context.Context, in Input, agg *report.Aggregator) {
	src := in.Source
	if src == nil {
		b, err := os.ReadFile(in.Path)
		if err != nil {
			s.log.Warn("read failed", zap.String("file", in.Path), zap.Error(err))
			agg.AddError(in.Path, fmt.Errorf("read: %w", err))
			return
		}
		src = b
	}

	unit, err := parser.Parse(ctx, in.Path, src, s.opts.ParseTimeout)
	if err != nil {
		var pe *types.ParseError
		if errors.As(err, &pe) {
			s.log.Warn("parse failed", zap.String("file", in.Path), zap.Error(err))
			agg.AddParseError(pe)
			return
		}
		agg.AddError(in.Path, err)
		return
	}
	defer unit.Close()

	findings, errs := s.engine.Run(unit)
	agg.Add(in.Path, findings...)
	for _, err := range errs {
		agg.AddError(in.Path, err)
	}
	s.log.Debug("file scanned", zap.String("file", in.Path), zap.Int("findings", len(findings)))
}
