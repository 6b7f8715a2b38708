package earning

import (
	"context"
	"sync"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type memoryEarningRepo struct {
	mu      sync.Mutex
	nextID  uint
	byKey   map[string]*domain.Earning
	creates int
	// failCreate makes every Create fail with this error.
	failCreate error
	// missLookups hides existing rows from the first n lookups.
	missLookups int
}

func newMemoryEarningRepo() *memoryEarningRepo {
	return &memoryEarningRepo{byKey: make(map[string]*domain.Earning)}
}

func (r *memoryEarningRepo) Create(_ context.Context, earning *domain.Earning) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.creates++
	if r.failCreate != nil {
		return r.failCreate
	}
	if _, ok := r.byKey[earning.IdempotencyKey]; ok {
		return domain.ErrDuplicateKey
	}

	r.nextID++
	stored := *earning
	stored.ID = r.nextID
	r.byKey[earning.IdempotencyKey] = &stored
	earning.ID = stored.ID
	return nil
}

func (r *memoryEarningRepo) GetByIdempotencyKey(_ context.Context, key string) (*domain.Earning, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.missLookups > 0 {
		r.missLookups--
		return nil, domain.ErrNotFound
	}
	e, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memoryEarningRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	msgs   []domain.Message
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range msgs {
		p.topics = append(p.topics, topic)
		p.msgs = append(p.msgs, m)
	}
	return nil
}

func (p *recordingPublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}

func newTestUsecase(repo domain.EarningRepository, pub domain.PublisherPort) *DefaultEarningUsecase {
	return NewDefaultEarningUsecase(repo, pub, metrics.NewEarningMetrics(prometheus.NewRegistry()), "earning-events")
}
