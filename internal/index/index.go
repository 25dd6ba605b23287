// Package index implements the concurrent directory crawler of spec.md
// §4.F: walks a root's filesystem subtree, allocates a fresh catalog.ID per
// discovered entry, and persists it through a localstore.Store.
//
// Concurrency is modeled after the teacher's TaskRunner/JobProcessor
// (errgroup-backed worker pool with a buffered channel bounding in-flight
// goroutines, see _examples/SharedCode-sop/task_runner.go and
// job_processor.go), generalized here into four communicating endpoints
// (todo_queue, db_queue, task_done, fatal_errors) so filesystem enumeration
// can fan out across many workers while all catalog writes stay serialized
// through one persister goroutine.
package index

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/errs"
	"github.com/jdonszelmann/dfs/internal/statusserver"
	"github.com/jdonszelmann/dfs/localstore"
)

const (
	defaultDBQueueSize  = 1024
	defaultTaskDoneSize = 1024
	defaultMaxWorkers   = 64
)

// Task is a unit of work: "enumerate this directory, whose parent has id P".
type Task struct {
	Path     string
	ParentID catalog.ID
}

// NonFatalError is a per-path enumeration failure, aggregated rather than
// aborting the run (spec.md §7 NonFatalIndex).
type NonFatalError struct {
	Path  string
	Cause error
}

type dbMessage struct {
	name      string
	parentID  catalog.ID
	entryType catalog.EntryType
	reply     chan dbReply
}

type dbReply struct {
	id  catalog.ID
	err error
}

// Indexer runs one crawl of a ConnectedRoot's filesystem subtree into its
// LocalStore. Construct with New and run once with Run.
type Indexer struct {
	store          localstore.Store
	rootPath       string
	rootDirEntryID catalog.ID

	todo        *unboundedQueue
	dbQueue     chan dbMessage
	taskDone    chan struct{}
	fatalErrors chan error
	maxWorkers  int

	queued    atomic.Int64
	spawned   atomic.Int64
	done      atomic.Int64
	doneFirst atomic.Bool

	errMu  sync.Mutex
	errors []NonFatalError

	statusAddr string
}

// Option configures an Indexer at construction time.
type Option func(*Indexer)

// WithMaxWorkers bounds how many directories are enumerated concurrently.
// The default (64) stands in for the spec's "single-threaded cooperative by
// default, multi-worker compatible" scheduling note: workers are
// independent and communicate only through channels and the shared atomic
// counters, so raising this is safe.
func WithMaxWorkers(n int) Option {
	return func(idx *Indexer) {
		if n > 0 {
			idx.maxWorkers = n
		}
	}
}

// WithStatusServer starts an embedded diagnostics HTTP server (see
// internal/statusserver) on addr for the duration of Run, exposing
// GET /healthz and GET /status.
func WithStatusServer(addr string) Option {
	return func(idx *Indexer) {
		idx.statusAddr = addr
	}
}

// New constructs an Indexer that will walk rootPath, seeding the crawl with
// the already-resolved root DirEntry id.
func New(store localstore.Store, rootPath string, rootDirEntryID catalog.ID, opts ...Option) *Indexer {
	idx := &Indexer{
		store:          store,
		rootPath:       rootPath,
		rootDirEntryID: rootDirEntryID,
		todo:           newUnboundedQueue(),
		dbQueue:        make(chan dbMessage, defaultDBQueueSize),
		taskDone:       make(chan struct{}, defaultTaskDoneSize),
		fatalErrors:    make(chan error, 1),
		maxWorkers:     defaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Stats returns a snapshot of the indexer's progress counters.
func (idx *Indexer) Stats() statusserver.Stats {
	idx.errMu.Lock()
	n := len(idx.errors)
	idx.errMu.Unlock()
	return statusserver.Stats{
		Queued:  idx.queued.Load(),
		Spawned: idx.spawned.Load(),
		Done:    idx.done.Load(),
		Errors:  n,
	}
}

// Run walks the subtree to quiescence (spec.md §4.F termination argument:
// queued==done && spawned==done && done_first) or aborts on a fatal error.
// It returns the aggregated per-path non-fatal errors alongside any fatal
// error (wrapped as errs.FatalIndex).
func (idx *Indexer) Run(ctx context.Context) ([]NonFatalError, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if idx.statusAddr != "" {
		srv := statusserver.New(idx.statusAddr, idx.Stats)
		go srv.Start()
		defer srv.Shutdown(context.Background())
	}

	idx.queued.Store(1)
	idx.todo.push(Task{Path: idx.rootPath, ParentID: idx.rootDirEntryID})

	go idx.persist(ctx)

	runner := newTaskRunner(ctx, idx.maxWorkers)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		idx.pump(ctx, runner)
	}()

	defer func() {
		idx.todo.close()
		cancel()
		<-pumpDone
		_ = runner.wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return idx.snapshotErrors(), ctx.Err()
		case err := <-idx.fatalErrors:
			return idx.snapshotErrors(), errs.E("Index", errs.FatalIndex, err)
		case <-idx.taskDone:
			if idx.quiescent() {
				return idx.snapshotErrors(), nil
			}
		}
	}
}

func (idx *Indexer) quiescent() bool {
	return idx.queued.Load() == idx.done.Load() &&
		idx.spawned.Load() == idx.done.Load() &&
		idx.doneFirst.Load()
}

// pump repeatedly takes a Task off todo_queue and spawns a worker for it,
// bounded by runner's concurrency cap, standing in for the driver's "pump
// one task" step.
func (idx *Indexer) pump(ctx context.Context, runner *taskRunner) {
	for {
		task, ok := idx.todo.pop()
		if !ok {
			return
		}
		idx.spawned.Add(1)
		runner.spawn(func() error {
			idx.worker(ctx, task)
			return nil
		})
	}
}

// worker enumerates one directory, submitting each discovered entry to the
// persister and re-enqueueing subdirectories as new Tasks.
func (idx *Indexer) worker(ctx context.Context, t Task) {
	defer func() {
		idx.done.Add(1)
		if t.ParentID == idx.rootDirEntryID {
			idx.doneFirst.Store(true)
		}
		select {
		case idx.taskDone <- struct{}{}:
		case <-ctx.Done():
		}
	}()

	entries, err := os.ReadDir(t.Path)
	if err != nil {
		idx.recordNonFatal(t.Path, err)
		return
	}

	for _, entry := range entries {
		entryType := catalog.EntryFile
		if entry.IsDir() {
			entryType = catalog.EntryDir
		}

		reply := make(chan dbReply, 1)
		msg := dbMessage{
			name:      entry.Name(),
			parentID:  t.ParentID,
			entryType: entryType,
			reply:     reply,
		}

		select {
		case idx.dbQueue <- msg:
		case <-ctx.Done():
			return
		}

		var r dbReply
		select {
		case r = <-reply:
		case <-ctx.Done():
			return
		}
		if r.err != nil {
			idx.fail(r.err)
			return
		}

		if entry.IsDir() {
			idx.queued.Add(1)
			idx.todo.push(Task{Path: filepath.Join(t.Path, entry.Name()), ParentID: r.id})
		}
	}
}

// persist is the single writer of the per-root store: every DbMessage is
// handled in the order it was received, keeping LocalStore writes
// serialized with no transaction contention.
func (idx *Indexer) persist(ctx context.Context) {
	for {
		select {
		case msg, ok := <-idx.dbQueue:
			if !ok {
				return
			}
			entry := catalog.NewDirEntry(msg.name, msg.parentID, true, msg.entryType)
			status, err := idx.store.PutDirEntry(ctx, entry.ID, entry, false)
			if err != nil {
				msg.reply <- dbReply{err: err}
				idx.fail(err)
				continue
			}
			if status == localstore.Exists {
				err := invariantError("fresh id already present in local store")
				msg.reply <- dbReply{err: err}
				idx.fail(err)
				continue
			}
			msg.reply <- dbReply{id: entry.ID}
		case <-ctx.Done():
			return
		}
	}
}

func (idx *Indexer) fail(err error) {
	select {
	case idx.fatalErrors <- err:
	default:
	}
}

func (idx *Indexer) recordNonFatal(path string, cause error) {
	idx.errMu.Lock()
	defer idx.errMu.Unlock()
	idx.errors = append(idx.errors, NonFatalError{Path: path, Cause: cause})
}

func (idx *Indexer) snapshotErrors() []NonFatalError {
	idx.errMu.Lock()
	defer idx.errMu.Unlock()
	out := make([]NonFatalError, len(idx.errors))
	copy(out, idx.errors)
	return out
}

type invariantError string

func (e invariantError) Error() string { return string(e) }
