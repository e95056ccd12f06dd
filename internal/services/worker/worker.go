// Package worker provides background report processing using goroutines.
//
// The pool is a standard Go worker-pool: a buffered channel acts as the
// job queue, N goroutines range over it, and handlers submit jobs
// without blocking. Uploaded PDFs are parsed here so the upload
// endpoints can return 202 immediately.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/TeamPulse-Labs/teampulse-api/internal/database"
	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/storage"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/webhook"
)

// JobType identifies what kind of work a job represents.
type JobType string

const (
	JobReportParsing JobType = "report_parsing"
)

// Job represents a unit of work to be processed by a worker.
type Job struct {
	ID        string // The database record ID
	Type      JobType
	CreatedAt time.Time
}

// Pool manages a pool of worker goroutines.
type Pool struct {
	jobs     chan Job
	workers  int
	db       *database.DB
	parser   *strengths.Parser
	store    storage.Storage
	notifier *webhook.Service

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a new worker pool. store may be nil when object
// storage is not configured; report jobs then fail with a clear error.
func NewPool(workers, queueSize int, db *database.DB, parser *strengths.Parser, store storage.Storage, notifier *webhook.Service) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobs:     make(chan Job, queueSize),
		workers:  workers,
		db:       db,
		parser:   parser,
		store:    store,
		notifier: notifier,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	log.Printf("🚀 Starting %d background workers", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop gracefully shuts down all workers. Remaining queued jobs are
// drained before the workers exit.
func (p *Pool) Stop() {
	log.Println("⏹️  Stopping workers...")
	p.cancel()
	close(p.jobs)
	p.wg.Wait()
	log.Println("✅ All workers stopped")
}

// Submit adds a job to the queue.
// Returns an error if the queue is full (non-blocking).
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobs <- job:
		log.Printf("📥 Job queued: %s (type: %s)", job.ID, job.Type)
		return nil
	default:
		return fmt.Errorf("job queue is full; try again later")
	}
}

// QueueSize returns the current number of jobs in the queue.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}

// WorkerCount returns the number of workers.
func (p *Pool) WorkerCount() int {
	return p.workers
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	log.Printf("👷 Worker %d started", id)

	for job := range p.jobs {
		select {
		case <-p.ctx.Done():
			log.Printf("👷 Worker %d shutting down", id)
			return
		default:
		}

		log.Printf("👷 Worker %d processing job: %s (type: %s)", id, job.ID, job.Type)

		var err error
		switch job.Type {
		case JobReportParsing:
			err = p.processReport(job)
		default:
			log.Printf("❌ Worker %d: unknown job type: %s", id, job.Type)
		}

		if err != nil {
			log.Printf("❌ Worker %d: job %s failed: %v", id, job.ID, err)
		} else {
			log.Printf("✅ Worker %d: job %s completed", id, job.ID)
		}
	}

	log.Printf("👷 Worker %d stopped", id)
}

// processReport downloads a stored PDF, runs the strengths extraction
// pipeline, and persists the results. The member profile with a
// matching participant name is refreshed, batch counters are updated,
// and webhook subscribers are notified.
func (p *Pool) processReport(job Job) error {
	ctx := p.ctx

	r, err := p.db.GetReport(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}

	r.Status = models.StatusProcessing
	if err := p.db.UpdateReport(ctx, r); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	report, parseErr := p.parseStored(ctx, r)
	if parseErr != nil {
		r.Status = models.StatusFailed
		r.ErrorMessage = parseErr.Error()
		p.db.UpdateReport(ctx, r)
		p.finishBatch(ctx, r)
		p.notifier.NotifyEvent(ctx, webhook.EventReportFailed, r)
		return fmt.Errorf("report parsing failed: %w", parseErr)
	}

	validation := strengths.ValidateReport(report)

	themesJSON, err := json.Marshal(report.Themes)
	if err != nil {
		return fmt.Errorf("failed to marshal themes: %w", err)
	}
	validationJSON, err := json.Marshal(validation)
	if err != nil {
		return fmt.Errorf("failed to marshal validation: %w", err)
	}

	r.ParticipantName = report.ParticipantName
	r.ReportType = string(report.ReportType)
	r.Confidence = report.Confidence
	r.ThemeCount = len(report.Themes)
	r.Themes = themesJSON
	r.Validation = validationJSON
	r.Status = models.StatusCompleted
	r.ErrorMessage = ""

	p.syncMember(ctx, r, report, themesJSON)

	if err := p.db.UpdateReport(ctx, r); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	p.finishBatch(ctx, r)
	p.notifier.NotifyEvent(ctx, webhook.EventReportParsed, r)

	return nil
}

// parseStored fetches the PDF bytes from object storage and runs the parser.
func (p *Pool) parseStored(ctx context.Context, r *models.StrengthsReport) (*strengths.Report, error) {
	if p.store == nil {
		return nil, fmt.Errorf("object storage not configured")
	}

	data, err := p.store.Download(ctx, r.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stored PDF: %w", err)
	}

	report, meta, err := p.parser.ParseReport(data, strengths.Options{})
	if err != nil {
		return nil, err
	}

	r.PageCount = meta.PageCount
	r.WordCount = meta.WordCount
	return report, nil
}

// syncMember links the report to a member, refreshing (or creating) the
// member whose name matches the participant.
func (p *Pool) syncMember(ctx context.Context, r *models.StrengthsReport, report *strengths.Report, themesJSON []byte) {
	if report.ParticipantName == "" {
		return
	}

	member, err := p.db.GetMemberByName(ctx, report.ParticipantName)
	if err == nil {
		if err := p.db.UpdateMemberStrengths(ctx, member.ID, r.ID, themesJSON); err != nil {
			log.Printf("⚠️  Failed to refresh member %s: %v", member.ID, err)
			return
		}
		r.MemberID = &member.ID
		return
	}

	m := &models.Member{
		Name:     report.ParticipantName,
		ReportID: &r.ID,
		Themes:   themesJSON,
	}
	if err := p.db.CreateMember(ctx, m); err != nil {
		log.Printf("⚠️  Failed to create member for %q: %v", report.ParticipantName, err)
		return
	}
	r.MemberID = &m.ID
}

// finishBatch updates batch progress after a report reaches a terminal state.
func (p *Pool) finishBatch(ctx context.Context, r *models.StrengthsReport) {
	if r.BatchID == nil {
		return
	}
	if err := p.db.UpdateBatchCounts(ctx, *r.BatchID); err != nil {
		// Non-fatal — the batch status will self-heal on next write
		log.Printf("⚠️  Failed to update batch counts for %s: %v", *r.BatchID, err)
	}
}
