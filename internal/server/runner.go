package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/jroosing/hydrasink/internal/config"
	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/filtering"
)

const stopTimeout = 5 * time.Second

// Runner orchestrates blocklist loading, the UDP server and shutdown.
type Runner struct {
	logger *slog.Logger
	store  *database.DB
	stats  *DNSStats

	mu        sync.RWMutex
	blocklist *filtering.Blocklist
	sources   []filtering.SourceInfo
	udp       *UDPServer
}

// NewRunner creates a new server runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, stats: NewDNSStats()}
}

// SetStore attaches the database. Stored blocklist entries are merged on
// the next LoadBlocklist and detections are recorded while serving.
func (r *Runner) SetStore(db *database.DB) {
	r.store = db
}

// Stats returns the live query counters.
func (r *Runner) Stats() *DNSStats {
	return r.stats
}

// Blocklist returns the loaded blocklist, or nil before LoadBlocklist.
func (r *Runner) Blocklist() *filtering.Blocklist {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.blocklist
}

// Sources reports what each blocklist source contributed.
func (r *Runner) Sources() []filtering.SourceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources
}

// Addr returns the DNS listener address while serving, else nil.
func (r *Runner) Addr() net.Addr {
	r.mu.RLock()
	udp := r.udp
	r.mu.RUnlock()
	if udp == nil {
		return nil
	}
	return udp.Addr()
}

// LoadBlocklist builds the blocklist from cfg and the attached store.
func (r *Runner) LoadBlocklist(ctx context.Context, cfg *config.Config) error {
	var stored []string
	if r.store != nil {
		names, err := r.store.BlocklistDomainNames(ctx)
		if err != nil {
			return fmt.Errorf("read stored blocklist: %w", err)
		}
		stored = names
	}

	parser := filtering.NewParser()
	if cfg.Blocklist.FetchTimeoutDuration > 0 {
		parser.Timeout = cfg.Blocklist.FetchTimeoutDuration
	}
	loader := &filtering.Loader{Parser: parser, Logger: r.logger}

	bl, infos, err := loader.Load(ctx, cfg.Blocklist.Sources(stored))
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.blocklist = bl
	r.sources = infos
	r.mu.Unlock()
	return nil
}

// Run starts the sinkhole and blocks until SIGINT or SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext serves until ctx is canceled or the server fails.
//
// The blocklist is loaded first unless LoadBlocklist already ran, so a
// caller such as the management API can share it.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	if r.Blocklist() == nil {
		if err := r.LoadBlocklist(ctx, cfg); err != nil {
			return err
		}
	}

	udp := &UDPServer{Logger: r.logger, Dispatcher: r.newDispatcher(cfg)}
	r.mu.Lock()
	r.udp = udp
	r.mu.Unlock()
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	conn, err := listenUDP(ctx, addr)
	if err != nil {
		return err
	}
	r.logStartup(cfg, conn.LocalAddr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- udp.RunOnConn(ctx, conn) }()

	select {
	case <-ctx.Done():
		// shutdown requested
	case err := <-errCh:
		return err
	}

	if err := udp.Stop(stopTimeout); err != nil {
		r.logger.Warn("shutdown incomplete", "err", err)
	}
	r.logger.Info("sinkhole stopped", "queries", r.stats.Snapshot().QueriesTotal)
	return nil
}

func (r *Runner) newDispatcher(cfg *config.Config) *Dispatcher {
	var observers []Observer
	if cfg.Logging.LogDetections {
		observers = append(observers, LogObserver{Logger: r.logger})
	}
	if r.store != nil {
		observers = append(observers, &DetectionRecorder{
			Store:         r.store,
			IncludePassed: cfg.Database.RecordPassed,
			Logger:        r.logger,
		})
	}

	return &Dispatcher{
		Blocklist:    r.Blocklist(),
		SpoofIP:      cfg.Sinkhole.SpoofIP,
		TTL:          cfg.Sinkhole.AnswerTTL(),
		DefaultRCode: cfg.Sinkhole.RCode,
		Logger:       r.logger,
		Stats:        r.stats,
		Observers:    observers,
	}
}

func (r *Runner) logStartup(cfg *config.Config, addr string) {
	r.logger.Info(
		"dns listening",
		"addr", addr,
		"spoof_ip", cfg.Sinkhole.SpoofIP.String(),
		"ttl", cfg.Sinkhole.AnswerTTL(),
		"default_rcode", cfg.Sinkhole.RCode.String(),
		"blocklist_entries", r.Blocklist().Len(),
		"detections_db", r.store != nil,
	)
}
