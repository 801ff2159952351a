package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"runic/internal/source"
	"runic/internal/token"
)

// Status captures per-file progress state.
type Status string

const (
	// StatusQueued means the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusLoading means the file is being read from disk.
	StatusLoading Status = "loading"
	// StatusTokenizing means the engine is running over the file.
	StatusTokenizing Status = "tokenizing"
	StatusDone  Status = "done"
	StatusError Status = "error"
)

// Event is a progress notification for one file.
type Event struct {
	File    string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}

// FileResult is the outcome of tokenizing one file.
type FileResult struct {
	Path    string
	Source  *source.Source
	Tokens  []token.Token[string]
	Err     error // I/O failure or a *diag.Diagnostic
	Cached  bool
	Elapsed time.Duration
}

// Options configures TokenizeAll.
type Options struct {
	Jobs     int          // number of workers, <=0 means GOMAXPROCS
	Cache    *Cache       // optional token cache
	Progress ProgressSink // optional, nil means no events
}

// TokenizeAll tokenizes the given files in parallel. The result slice keeps
// the input order regardless of completion order; per-file failures land in
// FileResult.Err rather than aborting the batch.
func TokenizeAll(ctx context.Context, paths []string, rs *RuleSet, opts Options) ([]FileResult, error) {
	ruleList, err := rs.Build()
	if err != nil {
		return nil, err
	}
	fingerprint := rs.Fingerprint()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	sink := opts.Progress
	if sink == nil {
		sink = NopSink{}
	}

	for _, path := range paths {
		sink.OnEvent(Event{File: path, Status: StatusQueued})
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			began := time.Now()
			sink.OnEvent(Event{File: path, Status: StatusLoading})

			src, err := source.Load(path)
			if err != nil {
				err = fmt.Errorf("failed to load file: %w", err)
				results[i] = FileResult{Path: path, Err: err}
				sink.OnEvent(Event{File: path, Status: StatusError, Err: err})
				return nil
			}

			if opts.Cache != nil {
				if toks, ok, cerr := opts.Cache.Get(src, fingerprint); cerr == nil && ok {
					results[i] = FileResult{
						Path: path, Source: src, Tokens: toks,
						Cached: true, Elapsed: time.Since(began),
					}
					sink.OnEvent(Event{File: path, Status: StatusDone, Elapsed: time.Since(began)})
					return nil
				}
			}

			sink.OnEvent(Event{File: path, Status: StatusTokenizing})
			toks, terr := Tokenize(src, ruleList)
			results[i] = FileResult{
				Path: path, Source: src, Tokens: toks,
				Err: terr, Elapsed: time.Since(began),
			}
			if terr != nil {
				sink.OnEvent(Event{File: path, Status: StatusError, Err: terr})
				return nil
			}

			if opts.Cache != nil {
				// Ошибка записи в кэш не делает результат хуже.
				_ = opts.Cache.Put(src, fingerprint, toks)
			}
			sink.OnEvent(Event{File: path, Status: StatusDone, Elapsed: time.Since(began)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
