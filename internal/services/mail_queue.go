package services

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/taskify/taskify/internal/config"
	"github.com/taskify/taskify/pkg/logger"
)

const TaskTypeInviteMail = "mail:invite"

// InviteMail is the payload for an invitation email job.
type InviteMail struct {
	To          string `json:"to"`
	ProjectName string `json:"project_name"`
	InviterName string `json:"inviter_name"`
	Role        string `json:"role"`
	AcceptURL   string `json:"accept_url"`
}

// MailQueue decouples invitation issuance from email delivery. Issuance
// enqueues and returns; delivery happens later (or not at all) without
// affecting the invitation's validity.
type MailQueue interface {
	// Enqueue adds a mail job to the queue
	Enqueue(mail *InviteMail) error
	// IsAsync returns true if the queue delivers via a separate worker
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// NewMailQueue selects the Redis-backed queue when configured, falling back
// to in-process goroutine delivery otherwise.
func NewMailQueue(cfg *config.Config, sender *EmailService) MailQueue {
	if cfg.Redis.Enabled {
		queue, err := NewAsyncMailQueue(&cfg.Redis)
		if err != nil {
			logger.Warnf("[MailQueue] Redis unavailable, falling back to in-process delivery: %v", err)
		} else {
			logger.Infof("[MailQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
			return queue
		}
	}
	logger.Infof("[MailQueue] In-process delivery (Redis disabled)")
	return NewGoroutineMailQueue(sender)
}

// AsyncMailQueue implements MailQueue using asynq (Redis-based).
type AsyncMailQueue struct {
	client *asynq.Client
}

func NewAsyncMailQueue(cfg *config.RedisConfig) (*AsyncMailQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before accepting jobs
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncMailQueue{client: client}, nil
}

func (q *AsyncMailQueue) Enqueue(mail *InviteMail) error {
	payload, err := json.Marshal(mail)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeInviteMail, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("[MailQueue] Mail job enqueued: id=%s, queue=%s", info.ID, info.Queue)
	return nil
}

func (q *AsyncMailQueue) IsAsync() bool { return true }

func (q *AsyncMailQueue) Close() error { return q.client.Close() }

// GoroutineMailQueue delivers mail from a goroutine in the serving process.
// Good enough without Redis; delivery failures are logged and dropped.
type GoroutineMailQueue struct {
	sender *EmailService
}

func NewGoroutineMailQueue(sender *EmailService) *GoroutineMailQueue {
	return &GoroutineMailQueue{sender: sender}
}

func (q *GoroutineMailQueue) Enqueue(mail *InviteMail) error {
	go func() {
		if err := q.sender.SendInvite(mail); err != nil {
			logger.Warnf("[MailQueue] Invite mail delivery failed: %v", err)
		}
	}()
	return nil
}

func (q *GoroutineMailQueue) IsAsync() bool { return false }

func (q *GoroutineMailQueue) Close() error { return nil }

// MailWorker consumes invite mail jobs from Redis. Only started when the
// async queue is in use.
type MailWorker struct {
	server *asynq.Server
	sender *EmailService
}

func NewMailWorker(cfg *config.RedisConfig, sender *EmailService) *MailWorker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
		},
	)
	return &MailWorker{server: server, sender: sender}
}

// Start runs the worker in the background.
func (w *MailWorker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeInviteMail, w.handleInviteMail)
	return w.server.Start(mux)
}

func (w *MailWorker) Stop() {
	w.server.Shutdown()
}

func (w *MailWorker) handleInviteMail(ctx context.Context, t *asynq.Task) error {
	var mail InviteMail
	if err := json.Unmarshal(t.Payload(), &mail); err != nil {
		return err
	}
	return w.sender.SendInvite(&mail)
}
