package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/focuskeeper/focuskeeper/internal/classifier"
	"github.com/focuskeeper/focuskeeper/internal/config"
	"github.com/focuskeeper/focuskeeper/internal/models"
	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// SnapshotSource hands out a fresh-enough list of windows.
type SnapshotSource interface {
	Get() (window.Snapshot, error)
}

// Recorder stores minimize attempts and loop failures.
type Recorder interface {
	CreateBatch(events []*models.MinimizeEvent) error
	CreateErrorLog(errorLog *models.ErrorLog) error
}

// TickResult describes what one loop iteration observed and did.
type TickResult struct {
	FocusChanged bool
	Handle       window.Handle
	Found        bool
	Focused      window.Record
	IsTarget     bool
	Minimized    []window.Record
	Failed       []window.Record
}

type Service struct {
	backend    window.Backend
	snapshots  SnapshotSource
	classifier *classifier.Classifier
	recorder   Recorder
	printer    *Printer
	log        zerolog.Logger

	displayServer string
	pollInterval  time.Duration
	workers       int
	processes     ProcessNames

	// Only touched by the goroutine running the loop.
	lastFocus window.Handle
	hasFocus  bool

	mu      sync.RWMutex
	status  Status
	running atomic.Bool

	stopOnce sync.Once
	stopChan chan struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder stores minimize attempts and errors in r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithPrinter sets where status lines go.
func WithPrinter(p *Printer) Option {
	return func(s *Service) {
		s.printer = p
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// ProcessNames resolves window PIDs to process names. Retain is given the
// PIDs of every listed window so names of exited processes can be dropped.
type ProcessNames interface {
	Name(pid int32) string
	Retain(live []int32)
}

// WithProcessLookup resolves window PIDs to process names for the history.
func WithProcessLookup(names ProcessNames) Option {
	return func(s *Service) {
		s.processes = names
	}
}

// NewService wires the control loop. The keyword tables are built here,
// once, from cfg.
func NewService(cfg *config.Config, backend window.Backend, snapshots SnapshotSource, opts ...Option) *Service {
	s := &Service{
		backend:      backend,
		snapshots:    snapshots,
		classifier:   classifier.New(cfg.Keywords.Targets, cfg.Keywords.Ignored),
		printer:      NewPrinter(nil),
		log:          zerolog.Nop(),
		pollInterval: cfg.Monitor.PollInterval,
		workers:      cfg.Monitor.MinimizeWorkers,
		stopChan:     make(chan struct{}),
	}
	s.displayServer = backend.GetDisplayServer()
	if s.workers < 1 {
		s.workers = 1
	}
	for _, opt := range opts {
		opt(s)
	}
	s.status.DisplayServer = s.displayServer
	return s
}

// Start runs the loop until ctx is cancelled or Stop is called. The first
// enumeration happens before the loop; if it fails there is nothing to
// monitor and Start returns the error.
func (s *Service) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("monitor is already running")
	}
	defer s.running.Store(false)

	s.printer.Banner(s.classifier.Targets(), s.classifier.Ignored())

	snap, err := s.snapshots.Get()
	if err != nil {
		return errors.Wrap(err, "initial window enumeration failed")
	}

	s.updateStatus(func(st *Status) {
		st.StartedAt = time.Now()
	})
	s.log.Info().
		Int("windows", snap.Len()).
		Dur("poll_interval", s.pollInterval).
		Str("display_server", s.displayServer).
		Msg("Starting monitor")

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(); err != nil {
			s.storeError(err)
		}

		select {
		case <-ctx.Done():
			s.log.Info().Msg("Monitor stopped by context")
			return ctx.Err()

		case <-s.stopChan:
			s.log.Info().Msg("Monitor stopped")
			return nil

		case <-ticker.C:
		}
	}
}

func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Service) IsRunning() bool {
	return s.running.Load()
}

// Tick runs one iteration: read focus, and on a change evaluate the focused
// window against a snapshot and minimize the eligible windows. An unchanged
// focus does no work at all.
func (s *Service) Tick() (TickResult, error) {
	h, err := s.backend.FocusedWindow()
	if err != nil {
		return TickResult{}, errors.Wrap(err, "failed to read focused window")
	}

	if s.hasFocus && h == s.lastFocus {
		return TickResult{Handle: h}, nil
	}

	prev, hadPrev := s.lastFocus, s.hasFocus
	s.lastFocus, s.hasFocus = h, true
	res := TickResult{FocusChanged: true, Handle: h}

	snap, err := s.snapshots.Get()
	if err != nil {
		// Forget the change so the next tick evaluates it again.
		s.lastFocus, s.hasFocus = prev, hadPrev
		s.updateStatus(func(st *Status) {
			st.EnumerationErrors++
		})
		return res, err
	}

	if s.processes != nil {
		s.processes.Retain(livePIDs(snap))
	}

	rec, ok := snap.Find(h)
	s.updateStatus(func(st *Status) {
		st.FocusChanges++
		st.FocusedHandle = h
		st.FocusedTitle = rec.Title
		st.FocusedClass = ""
		if ok {
			st.FocusedClass = s.classifier.Classify(rec).String()
		}
	})
	if !ok {
		s.log.Debug().Stringer("handle", h).Msg("Focused window is not in the snapshot")
		return res, nil
	}

	res.Found = true
	res.Focused = rec
	s.log.Debug().Stringer("handle", h).Str("title", rec.Title).Msg("Focus changed")
	s.printer.ActiveWindow(rec.Title)

	if !s.classifier.IsTarget(rec) {
		s.printer.NotTarget()
		return res, nil
	}

	res.IsTarget = true
	s.printer.TargetDetected(rec.Title)

	eligible := s.classifier.Eligible(snap, h)
	errs := s.minimizeAll(eligible)

	for i, w := range eligible {
		if errs[i] != nil {
			res.Failed = append(res.Failed, w)
			s.log.Warn().Err(errs[i]).Str("title", w.Title).Msg("Failed to minimize window")
			continue
		}
		res.Minimized = append(res.Minimized, w)
		s.printer.Minimized(w.Title)
	}
	s.printer.Summary(len(res.Minimized))

	s.updateStatus(func(st *Status) {
		st.TargetActivations++
		st.LastTarget = rec.Title
		st.LastTargetAt = time.Now()
		st.Minimized += int64(len(res.Minimized))
		st.Failed += int64(len(res.Failed))
	})
	s.record(rec, eligible, errs)

	return res, nil
}

// minimizeAll dispatches every window independently on a bounded pool.
// errs[i] is the outcome for windows[i].
func (s *Service) minimizeAll(windows []window.Record) []error {
	errs := make([]error, len(windows))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, w := range windows {
		g.Go(func() error {
			if err := s.backend.Minimize(w.Handle); err != nil {
				var actErr *window.ActuationError
				if !errors.As(err, &actErr) {
					err = &window.ActuationError{Handle: w.Handle, Title: w.Title, Err: err}
				}
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

func (s *Service) record(target window.Record, windows []window.Record, errs []error) {
	if s.recorder == nil || len(windows) == 0 {
		return
	}

	now := time.Now()
	events := make([]*models.MinimizeEvent, 0, len(windows))
	for i, w := range windows {
		event := &models.MinimizeEvent{
			Timestamp:     now,
			TargetTitle:   target.Title,
			WindowTitle:   w.Title,
			ClassName:     w.ClassName,
			Handle:        uint64(w.Handle),
			Succeeded:     errs[i] == nil,
			DisplayServer: s.displayServer,
		}
		if errs[i] != nil {
			event.ErrorMsg = errs[i].Error()
		}
		if s.processes != nil && w.PID > 0 {
			event.ProcessName = s.processes.Name(w.PID)
		}
		events = append(events, event)
	}

	if err := s.recorder.CreateBatch(events); err != nil {
		s.log.Error().Err(err).Msg("Failed to store minimize events")
	}
}

func livePIDs(snap window.Snapshot) []int32 {
	pids := make([]int32, 0, len(snap.Records))
	for _, r := range snap.Records {
		if r.PID > 0 {
			pids = append(pids, r.PID)
		}
	}
	return pids
}

func (s *Service) storeError(err error) {
	kind := "focus"
	var enumErr *window.EnumerationError
	if errors.As(err, &enumErr) {
		kind = "enumeration"
	}

	s.log.Error().Err(err).Str("kind", kind).Msg("Monitor tick failed")

	if s.recorder == nil {
		return
	}

	errorLog := &models.ErrorLog{
		Timestamp: time.Now(),
		Kind:      kind,
		ErrorMsg:  err.Error(),
	}
	if dbErr := s.recorder.CreateErrorLog(errorLog); dbErr != nil {
		s.log.Error().Err(dbErr).AnErr("original", err).Msg("Failed to store error in database")
	}
}
