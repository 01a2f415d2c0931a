package main

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe"
	"github.com/paveg/biocframe/internal/logging"
	"go.uber.org/zap"
)

var (
	chromosomes = []string{"chr1", "chr2", "chr7", "chr17", "chrX"}
	pathways    = []string{"DNA repair", "apoptosis", "cell cycle"}
)

// sampleGenes builds a gene table keyed by row names, with a nested frame
// holding genomic ranges.
func sampleGenes(n int) (*biocframe.Frame, error) {
	if n < 1 {
		return nil, fmt.Errorf("rows must be positive, got %d", n)
	}
	ids := make([]string, n)
	symbols := make([]string, n)
	lengths := make([]int64, n)
	chroms := make([]string, n)
	starts := make([]int64, n)
	for i := range n {
		ids[i] = fmt.Sprintf("gene_%d", i+1)
		symbols[i] = fmt.Sprintf("SYM%d", i+1)
		lengths[i] = int64(1000 + 250*i)
		chroms[i] = chromosomes[i%len(chromosomes)]
		starts[i] = int64(10000 * (i + 1))
	}

	ranges, err := biocframe.New([]biocframe.Named{
		biocframe.Col("chrom", chroms),
		biocframe.Col("start", starts),
	})
	if err != nil {
		return nil, err
	}
	return biocframe.New([]biocframe.Named{
		biocframe.Col("symbol", symbols),
		biocframe.Col("length", lengths),
		biocframe.Col("ranges", ranges),
	},
		biocframe.WithRowNames(ids),
		biocframe.WithMetadata(map[string]any{"organism": "Homo sapiens"}),
	)
}

// sampleAnnotations annotates every other gene and one gene absent from the
// gene table.
func sampleAnnotations(n int) (*biocframe.Frame, error) {
	var ids, pw []string
	var scores []float64
	for i := 0; i < n; i += 2 {
		ids = append(ids, fmt.Sprintf("gene_%d", i+1))
		pw = append(pw, pathways[len(ids)%len(pathways)])
		scores = append(scores, float64(len(ids))/10)
	}
	ids = append(ids, fmt.Sprintf("gene_%d", n+1))
	pw = append(pw, "unassigned")
	scores = append(scores, 0)

	return biocframe.New([]biocframe.Named{
		biocframe.Col("pathway", pw),
		biocframe.Col("score", scores),
	}, biocframe.WithRowNames(ids))
}

func runDemo(w io.Writer, rows int, join biocframe.JoinType) error {
	genes, err := sampleGenes(rows)
	if err != nil {
		return err
	}
	annotations, err := sampleAnnotations(rows)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Genes:")
	fmt.Fprintln(w, genes)
	fmt.Fprintln(w, "Annotations:")
	fmt.Fprintln(w, annotations)

	merged, err := biocframe.Merge([]*biocframe.Frame{genes, annotations}, biocframe.MergeOptions{Join: join})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	fmt.Fprintf(w, "Merged (%s join):\n", joinName(join))
	fmt.Fprintln(w, merged)

	head, err := genes.GetSlice(biocframe.Range(0, 2), biocframe.Labels("symbol", "length"))
	if err != nil {
		return err
	}
	novel, err := biocframe.New([]biocframe.Named{
		biocframe.Col("symbol", []string{"NOVEL1"}),
		biocframe.Col("pathway", []string{"unassigned"}),
	}, biocframe.WithRowNames([]string{"novel_1"}))
	if err != nil {
		return err
	}
	stacked, err := biocframe.RelaxedCombineRows(head, novel)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}
	fmt.Fprintln(w, "Relaxed row combine:")
	fmt.Fprintln(w, stacked)

	logging.Info("demo finished",
		zap.Int("genes", genes.Len()),
		zap.Int("merged_rows", merged.Len()),
		zap.Int("stacked_rows", stacked.Len()))
	return nil
}

func joinName(j biocframe.JoinType) string {
	if j == biocframe.JoinDefault {
		return biocframe.CurrentConfig().DefaultJoin
	}
	return j.String()
}

func runArrow(w io.Writer, rows int) error {
	genes, err := sampleGenes(rows)
	if err != nil {
		return err
	}
	rec, err := biocframe.ToArrow(genes, memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer rec.Release()

	fmt.Fprintf(w, "Record: %d rows, %d columns\n", rec.NumRows(), rec.NumCols())
	fmt.Fprintln(w, rec.Schema())

	back, err := biocframe.FromArrow(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Read back:")
	fmt.Fprintln(w, back)
	return nil
}
