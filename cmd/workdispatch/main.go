package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rberlich/workdispatch/internal/client"
	"github.com/rberlich/workdispatch/internal/codec"
	"github.com/rberlich/workdispatch/internal/config"
	"github.com/rberlich/workdispatch/internal/dashboard"
	"github.com/rberlich/workdispatch/internal/producer"
	"github.com/rberlich/workdispatch/internal/protocol"
	"github.com/rberlich/workdispatch/internal/queue"
	"github.com/rberlich/workdispatch/internal/server"
	"github.com/rberlich/workdispatch/internal/statusapi"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Help {
		fmt.Fprintln(os.Stderr, "usage: workdispatch [flags]")
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if cfg.Client {
		err = runClient(ctx, cfg)
	} else {
		err = runServer(ctx, cfg)
	}
	if err != nil {
		log.Printf("workdispatch: %v", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	ctrl := server.NewController(int64(cfg.MaxNServed))
	q := queue.New[protocol.Payload](int(cfg.MaxQueueSize))
	c := codec.Default()

	pool := producer.New(producer.Config{
		PayloadType:      payloadTypeFor(cfg.PayloadType),
		ContainerSize:    int(cfg.ContainerSize),
		SleepSeconds:     cfg.PayloadSleepTime,
		NumThreads:       int(cfg.NProducerThreads),
		FullQueueSleepMs: int(cfg.FullQueueSleepMs),
	}, q, ctrl.Stopped)

	producerDone := make(chan struct{})
	go func() {
		pool.Run()
		close(producerDone)
	}()

	if cfg.StatusAddr != "" {
		router := statusapi.NewRouter(ctrl)
		go func() {
			if err := router.Run(cfg.StatusAddr); err != nil {
				log.Printf("[status] %v", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	acc := server.NewAcceptor(addr, q, ctrl, c)

	acceptorDone := make(chan error, 1)
	go func() { acceptorDone <- acc.ListenAndServe() }()

	log.Printf("[server] listening on %s (payload_type=%s, max_n_served=%d, max_queue_size=%d)",
		addr, cfg.PayloadType, cfg.MaxNServed, cfg.MaxQueueSize)
	log.Printf("[server] n_context_threads=%d has no effect in this build: each session runs on its own goroutine instead of a shared reactor pool",
		cfg.NContextThreads)

	select {
	case <-ctx.Done():
	case <-ctrl.Done():
		log.Printf("[server] max_n_served threshold reached, shutting down")
	case err := <-acceptorDone:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := acc.Close(shutdownCtx); err != nil {
		log.Printf("[server] acceptor close: %v", err)
	}

	<-producerDone
	log.Printf("[server] exited cleanly, packages_served=%d", ctrl.PackagesServed())
	return nil
}

func runClient(ctx context.Context, cfg *config.Config) error {
	c := codec.Default()
	url := fmt.Sprintf("ws://%s:%d/", cfg.Host, cfg.Port)

	dash := dashboard.New(cfg.ClientID, url)
	if cfg.DashboardAddr != "" {
		go func() {
			if err := dash.ServeHTTP(ctx, cfg.DashboardAddr); err != nil {
				log.Printf("[dashboard] %v", err)
			}
		}()
	}

	cl, err := client.Dial(url, c, client.Hooks{
		OnFetch:   dash.RecordFetch,
		OnCompute: func() {},
		OnNoData:  dash.RecordNoData,
		OnResult:  dash.RecordProcessed,
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	dash.MarkConnected()

	log.Printf("[client %d] connected to %s", cfg.ClientID, url)
	err = cl.Run(ctx)
	if err != nil && ctx.Err() != nil {
		// Cancelled by signal: a normal shutdown, not a failure.
		return nil
	}
	return err
}

func payloadTypeFor(pt config.PayloadType) producer.PayloadType {
	if pt == config.PayloadSleep {
		return producer.SleepType
	}
	return producer.Container
}
