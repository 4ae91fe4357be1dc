package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/johnsosoka/jscom-contact-services/internal/config"
	"github.com/johnsosoka/jscom-contact-services/internal/filter"
	"github.com/johnsosoka/jscom-contact-services/internal/logging"
	"github.com/johnsosoka/jscom-contact-services/internal/notify"
	"github.com/johnsosoka/jscom-contact-services/internal/queue"
	"github.com/johnsosoka/jscom-contact-services/internal/repository"
	"github.com/johnsosoka/jscom-contact-services/internal/worker"
	"log/slog"
)

func main() {
	_ = godotenv.Load()
	logging.Setup("worker")
	cfg := config.Parse()

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	nc, js, err := queue.Connect(cfg.NATSURL)
	if err != nil {
		logging.Fatal("failed to connect to nats", "error", err)
	}
	defer nc.Close()

	submissionQueue, err := queue.NewNatsQueue(js, cfg.SubmissionStream, cfg.SubmissionSubject)
	if err != nil {
		logging.Fatal("failed to provision submission queue", "error", err)
	}
	if err := submissionQueue.Subscribe("contact-filter", cfg.VisibilityTimeout); err != nil {
		logging.Fatal("failed to subscribe to submission queue", "error", err)
	}

	notifyQueue, err := queue.NewNatsQueue(js, cfg.NotifyStream, cfg.NotifySubject)
	if err != nil {
		logging.Fatal("failed to provision notify queue", "error", err)
	}
	if err := notifyQueue.Subscribe("contact-notifier", cfg.VisibilityTimeout); err != nil {
		logging.Fatal("failed to subscribe to notify queue", "error", err)
	}

	deadLetterQueue, err := queue.NewNatsQueue(js, cfg.DeadLetterStream, cfg.DeadLetterSubject)
	if err != nil {
		logging.Fatal("failed to provision dead-letter queue", "error", err)
	}

	messageRepo := repository.NewPgMessageRepository(pool)
	blocklistRepo := repository.NewPgBlockListRepository(pool)

	adapters := notify.NewRegistry(cfg)
	for _, a := range adapters {
		slog.Info("notification channel enabled", "channel", a.Name())
	}
	if len(adapters) == 0 {
		slog.Warn("no notification channels enabled")
	}

	filterConsumer := &worker.Consumer{
		Name:            "filter",
		Source:          submissionQueue,
		DeadLetter:      deadLetterQueue,
		Process:         filter.NewFilter(messageRepo, blocklistRepo, notifyQueue).Process,
		BatchSize:       cfg.FetchBatchSize,
		FetchWait:       5 * time.Second,
		ProcessTimeout:  cfg.ProcessTimeout,
		MaxReceiveCount: cfg.MaxReceiveCount,
	}

	notifyConsumer := &worker.Consumer{
		Name:            "notifier",
		Source:          notifyQueue,
		DeadLetter:      deadLetterQueue,
		Process:         notify.NewDispatcher(adapters).Process,
		BatchSize:       cfg.FetchBatchSize,
		FetchWait:       5 * time.Second,
		ProcessTimeout:  cfg.ProcessTimeout,
		MaxReceiveCount: cfg.MaxReceiveCount,
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, c := range []*worker.Consumer{filterConsumer, notifyConsumer} {
		wg.Add(1)
		go func(c *worker.Consumer) {
			defer wg.Done()
			c.Run(ctx)
		}(c)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	wg.Wait()
}
