package monitor

import (
	"context"
	"log"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/mohramadan911/watsonx-document-processor/internal/application"
	appdocs "github.com/mohramadan911/watsonx-document-processor/internal/application/docs"
	appworkflows "github.com/mohramadan911/watsonx-document-processor/internal/application/workflows"
	domclassify "github.com/mohramadan911/watsonx-document-processor/internal/domain/classify"
	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/docs"
	"github.com/mohramadan911/watsonx-document-processor/internal/middleware"
)

// Options konfigurasi monitor
type Options struct {
	Interval         time.Duration // jeda antar scan, default 60s
	CriticalInterval time.Duration // jeda sweep konten kritis, default 1h
	ReviewLeadDays   int           // review dijadwalkan N hari sebelum deadline
	Extensions       []string      // ekstensi dokumen yang didukung
	ReviewRecipients []string
}

// ScanResult hasil satu kali scan container
type ScanResult struct {
	Success   bool     `json:"success"`
	Processed []string `json:"processed"`
	Error     string   `json:"error,omitempty"`
}

// Monitor watches containers for unorganized documents and drives them
// through the pipeline. Owns the watch list and the per-session ProcessedSet;
// both are shared with the interactive path, so access is mutex-guarded.
type Monitor struct {
	Docs      *appdocs.Service
	Store     domain.ObjectStore
	Model     domclassify.Model
	Scheduler *appworkflows.Scheduler
	Clock     application.Clock

	opts    Options
	limiter *rate.Limiter

	mu         sync.Mutex
	containers []string
	processed  map[string]struct{}
	pending    []pendingDoc // antrian untuk critical sweep

	running  atomic.Bool
	paused   atomic.Bool
	stopping atomic.Bool

	lastCritical time.Time
}

type pendingDoc struct {
	container string
	key       string
}

func New(docsSvc *appdocs.Service, store domain.ObjectStore, model domclassify.Model,
	scheduler *appworkflows.Scheduler, clock application.Clock, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.CriticalInterval <= 0 {
		opts.CriticalInterval = time.Hour
	}
	if opts.ReviewLeadDays <= 0 {
		opts.ReviewLeadDays = 5
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".pdf"}
	}
	return &Monitor{
		Docs:      docsSvc,
		Store:     store,
		Model:     model,
		Scheduler: scheduler,
		Clock:     clock,
		opts:      opts,
		// satu model call per 2 detik saat sweep, burst 1
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		processed: make(map[string]struct{}),
	}
}

// Start launches the scan loop on a background goroutine. Idempotent: a
// second call while running is a no-op.
func (m *Monitor) Start(containers []string) bool {
	if len(containers) > 0 {
		m.mu.Lock()
		m.containers = append([]string(nil), containers...)
		m.mu.Unlock()
	}

	m.mu.Lock()
	n := len(m.containers)
	m.mu.Unlock()
	if n == 0 {
		log.Printf("monitor: no containers to watch")
		return false
	}

	if !m.running.CompareAndSwap(false, true) {
		log.Printf("monitor: already running")
		return true
	}
	m.stopping.Store(false)

	go m.loop()
	log.Printf("monitor: started watching %d containers", n)
	return true
}

// Stop requests cooperative shutdown; the loop quiesces within one interval.
func (m *Monitor) Stop() {
	m.stopping.Store(true)
	log.Printf("monitor: stop requested")
}

// Pause keeps scanning but skips dispatch into classification.
func (m *Monitor) Pause() {
	m.paused.Store(true)
	log.Printf("monitor: processing paused")
}

func (m *Monitor) Resume() {
	m.paused.Store(false)
	log.Printf("monitor: processing resumed")
}

// Watch adds a container to the watch list (interactive path).
func (m *Monitor) Watch(container string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.containers {
		if c == container {
			return
		}
	}
	m.containers = append(m.containers, container)
}

// Unwatch removes a container from the watch list.
func (m *Monitor) Unwatch(container string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.containers {
		if c == container {
			m.containers = append(m.containers[:i], m.containers[i+1:]...)
			return
		}
	}
}

// Status snapshot untuk endpoint monitoring
func (m *Monitor) Status() map[string]any {
	m.mu.Lock()
	containers := append([]string(nil), m.containers...)
	seen := len(m.processed)
	m.mu.Unlock()

	return map[string]any{
		"running":         m.running.Load(),
		"paused":          m.paused.Load(),
		"containers":      containers,
		"processed_count": seen,
	}
}

func (m *Monitor) loop() {
	defer m.running.Store(false)

	for !m.stopping.Load() {
		ctx := context.Background()

		m.mu.Lock()
		containers := append([]string(nil), m.containers...)
		m.mu.Unlock()

		for _, c := range containers {
			m.ScanContainer(ctx, c)
		}

		m.Scheduler.DispatchDue(ctx)

		if m.Clock.Now().Sub(m.lastCritical) >= m.opts.CriticalInterval {
			m.lastCritical = m.Clock.Now()
			m.sweepCritical(ctx)
		}

		time.Sleep(m.opts.Interval)
	}
	log.Printf("monitor: loop stopped")
}

// ScanContainer lists root-level documents in a container and dispatches
// unseen ones through the pipeline. Keys are added to the ProcessedSet only
// on success, so failures retry on the next scan.
func (m *Monitor) ScanContainer(ctx context.Context, container string) ScanResult {
	if m.Store == nil {
		return ScanResult{Error: domain.ErrNoObjectStore.Error()}
	}

	middleware.IncrementScans()
	objects, err := m.Store.List(ctx, container, "")
	if err != nil {
		log.Printf("monitor: list %s: %v", container, err)
		return ScanResult{Error: err.Error()}
	}

	result := ScanResult{Success: true, Processed: []string{}}
	for _, obj := range objects {
		if !m.isCandidate(obj) {
			continue
		}
		if m.seen(container, obj.Key) {
			continue
		}
		if m.paused.Load() {
			log.Printf("monitor: paused, skipping dispatch of %s/%s", container, obj.Key)
			continue
		}

		log.Printf("monitor: processing new document %s/%s", container, obj.Key)
		outcome := m.Docs.ProcessNewDocument(ctx, container, obj.Key)
		if outcome.Success {
			middleware.IncrementDocuments()
			m.markProcessed(container, obj.Key)
			m.queueCritical(container, outcome.TargetKey)
			result.Processed = append(result.Processed, obj.Key)
			log.Printf("monitor: organized %s/%s -> %s category=%s confidence=%.2f",
				container, obj.Key, outcome.TargetKey, outcome.Category, outcome.Confidence)
		} else {
			middleware.IncrementDocumentsFailed()
			log.Printf("monitor: failed to process %s/%s: %s", container, obj.Key, outcome.Error)
		}
	}
	return result
}

// isCandidate: bukan folder, tidak sudah terorganisir (key tanpa '/'),
// dan ekstensinya didukung.
func (m *Monitor) isCandidate(obj domain.ObjectInfo) bool {
	if obj.IsFolder || strings.Contains(obj.Key, "/") {
		return false
	}
	ext := strings.ToLower(path.Ext(obj.Key))
	for _, supported := range m.opts.Extensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func (m *Monitor) seen(container, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.processed[container+":"+key]
	return ok
}

func (m *Monitor) markProcessed(container, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed[container+":"+key] = struct{}{}
}

func (m *Monitor) queueCritical(container, key string) {
	if key == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, pendingDoc{container: container, key: key})
}
