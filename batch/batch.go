// Package batch computes a metric set over many texts with a bounded
// number of workers.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
)

const DefaultWorkers = 4

// PoolFactory builds the resource pool of a worker.
type PoolFactory func() (*pool.Pool, error)

// Report holds the metric values of a text. Failed counts the metrics that
// could not be computed.
type Report struct {
	Text   *sent.Text
	Values metric.Values
	Failed int
}

// Driver is safe for concurrent use if its pool factory is.
type Driver struct {
	set     *metric.Set
	newPool PoolFactory
	workers int
	logger  *slog.Logger
}

type Option func(*Driver)

func WithWorkers(n int) Option {
	return func(d *Driver) { d.workers = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

func New(set *metric.Set, newPool PoolFactory, opts ...Option) (*Driver, error) {
	if set == nil {
		return nil, errors.New("batch: nil metric set")
	}
	if newPool == nil {
		return nil, errors.New("batch: nil pool factory")
	}

	d := &Driver{
		set:     set,
		newPool: newPool,
		workers: DefaultWorkers,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.workers < 1 {
		return nil, fmt.Errorf("batch: invalid number of workers %d", d.workers)
	}
	return d, nil
}

// Run computes the metric set for every text. The reports are in the order
// of texts. A failing metric is logged and counted in its report; only
// the cancellation of ctx or a failing pool factory stop the run.
func (d *Driver) Run(ctx context.Context, texts []*sent.Text) ([]Report, error) {
	reports := make([]Report, len(texts))
	if len(texts) == 0 {
		return reports, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for i := range texts {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	workers := min(d.workers, len(texts))
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			p, err := d.newPool()
			if err != nil {
				return fmt.Errorf("batch: worker pool: %w", err)
			}

			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				reports[i] = d.report(gctx, texts[i], p)
				p.Forget(texts[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// metrics cut short by a cancellation are not worth reporting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (d *Driver) report(ctx context.Context, t *sent.Text, p *pool.Pool) Report {
	values := d.set.ValuesForText(ctx, t, p)
	failed := values.Failed()

	for _, v := range failed {
		d.logger.Warn("metric failed",
			"text", t.ID,
			"title", t.Title,
			"table", v.Table,
			"metric", v.Column,
			"err", v.Err,
		)
	}

	d.logger.Debug("text done", "text", t.ID, "metrics", len(values), "failed", len(failed))
	return Report{Text: t, Values: values, Failed: len(failed)}
}
