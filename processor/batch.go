package processor

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/report-core/schema"
)

// BatchResult reports one document's outcome; a failing document never aborts
// the rest of the batch.
type BatchResult struct {
	Fingerprint string
	Doc         *schema.ProcessedDocument
	Err         error
}

// ProcessBatch processes every document concurrently and collects per-document
// results in input order.
func (p *Processor) ProcessBatch(ctx context.Context, docs [][]byte) []BatchResult {
	tasks := make([]<-chan async.Result[*schema.ProcessedDocument], len(docs))
	for i, raw := range docs {
		raw := raw
		tasks[i] = async.Go(func() (*schema.ProcessedDocument, error) {
			return p.Process(ctx, raw)
		})
	}

	results := make([]BatchResult, len(docs))
	for i, task := range tasks {
		doc, err := async.Await(task)
		results[i] = BatchResult{
			Fingerprint: schema.Fingerprint(docs[i]),
			Doc:         doc,
			Err:         err,
		}
	}
	return results
}

// AvailableSections lists the distinct section labels found in a processed
// document, in document order.
func AvailableSections(processed *schema.ProcessedDocument) []schema.SectionLabel {
	labels := linq.Map(processed.Sections, func(s schema.Section) schema.SectionLabel {
		return s.Label
	})
	return linq.Distinct(labels, func(l schema.SectionLabel) schema.SectionLabel { return l })
}
