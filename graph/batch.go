package graph

import (
	"runtime"
	"sort"
	"sync"

	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
	"github.com/strataml/strata/sym"
)

// BuildBatch builds one graph per section ID present in the frame among ids.
// Sections are independent units of work, so their graphs are built across a
// bounded set of goroutines and merged afterwards. Sections absent from the
// frame (excluded after solver divergence) are skipped.
func (b *Builder) BuildBatch(f *frame.Frame, ids []int) (*Batch, error) {
	type job struct {
		id   int
		rows []frame.Row
	}
	var jobs []job
	for _, id := range ids {
		if rows := f.SectionRows(id); rows != nil {
			jobs = append(jobs, job{id: id, rows: rows})
		}
	}

	graphs := make([]SectionGraph, len(jobs))
	errs := make([]error, len(jobs))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			g, err := b.BuildSection(j.id, j.rows)
			if err != nil {
				errs[i] = errors.Wrapf(err, "build graph for section %d", j.id)
				return
			}
			graphs[i] = g
		}(i, j)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	batch := Merge(graphs)
	b.logger.Infow("Built graph batch",
		"symbol", sym.Graph,
		"sections", len(batch.Graphs),
		"nodes", batch.NumNodes(),
		"connectivity", b.cfg.Connectivity,
		"metric", b.cfg.Metric,
	)
	return batch, nil
}

// Merge combines independently built per-section graphs into a Batch,
// reordering into ascending section ID for index stability.
func Merge(graphs []SectionGraph) *Batch {
	sorted := make([]SectionGraph, len(graphs))
	copy(sorted, graphs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SectionID < sorted[j].SectionID
	})

	batch := &Batch{Graphs: sorted, Offsets: make([]int, len(sorted))}
	offset := 0
	for i, g := range sorted {
		batch.Offsets[i] = offset
		offset += g.NumNodes()
	}
	return batch
}
