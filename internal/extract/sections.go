package extract

import (
	"context"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/worker"
)

// Classifier labels one sentence
type Classifier interface {
	Classify(ctx context.Context, sentence string) model.Classification
}

// SectionExtractor classifies and extracts every sentence of every section
type SectionExtractor struct {
	classifier Classifier
	facts      *FactExtractor
	workers    int
}

// NewSectionExtractor creates an orchestrator running sentence jobs on
// workers goroutines
func NewSectionExtractor(classifier Classifier, facts *FactExtractor, workers int) *SectionExtractor {
	return &SectionExtractor{
		classifier: classifier,
		facts:      facts,
		workers:    workers,
	}
}

// ExtractSections returns one extraction per section, in section order,
// with sentences bucketed in document order
func (x *SectionExtractor) ExtractSections(ctx context.Context, sections []model.Section) []model.SectionExtraction {
	out := make([]model.SectionExtraction, len(sections))
	var jobs []worker.Job

	for si, section := range sections {
		out[si] = model.NewSectionExtraction(section.Title)
		for _, sentence := range SplitSentences(section.Content) {
			jobs = append(jobs, &sentenceJob{
				seq:       len(jobs),
				section:   si,
				sentence:  sentence,
				extractor: x,
			})
		}
	}

	results := make([]*sentenceResult, len(jobs))
	for _, res := range worker.Run(ctx, x.workers, jobs) {
		r := res.(*sentenceResult)
		results[r.seq] = r
	}

	for i, r := range results {
		if r == nil {
			// Never scheduled because ctx ended; oracles degrade on a done ctx
			r = jobs[i].Execute(ctx).(*sentenceResult)
		}

		bucket := &out[r.section]
		switch r.class.Kind {
		case model.KindObligation:
			bucket.Obligations = append(bucket.Obligations, r.item)
		case model.KindRight:
			bucket.Rights = append(bucket.Rights, r.item)
		default:
			bucket.Other = append(bucket.Other, r.sentence)
		}
	}

	return out
}

type sentenceJob struct {
	seq       int
	section   int
	sentence  model.Sentence
	extractor *SectionExtractor
}

func (j *sentenceJob) Execute(ctx context.Context) worker.Result {
	cls := j.extractor.classifier.Classify(ctx, j.sentence.Text)
	res := &sentenceResult{
		seq:      j.seq,
		section:  j.section,
		sentence: j.sentence,
		class:    cls,
	}
	if cls.IsActionable() {
		res.item = j.extractor.facts.Extract(ctx, j.sentence, cls)
	}
	return res
}

type sentenceResult struct {
	seq      int
	section  int
	sentence model.Sentence
	class    model.Classification
	item     model.ExtractionItem
}

func (r *sentenceResult) GetError() error { return nil }
func (r *sentenceResult) Seq() int        { return r.seq }
