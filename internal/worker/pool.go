package worker

import (
	"context"
	"sync"
	"time"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"go.uber.org/zap"
)

// Settler resolves an order's pending point settlement.
type Settler interface {
	SettleOrder(ctx context.Context, order *domain.Order) error
}

// PoolConfig holds worker pool settings.
type PoolConfig struct {
	Workers      int
	QueueSize    int
	ScanInterval time.Duration
}

// Pool retries point settlements for orders whose ledger write failed at
// checkout. A scanner periodically enqueues unsettled orders and the
// workers re-run the settlement until it resolves.
type Pool struct {
	workers      int
	queue        chan *domain.Order
	orders       domain.OrderRepository
	settler      Settler
	logger       *zap.Logger
	wg           sync.WaitGroup
	scanInterval time.Duration
}

// NewPool creates a new settlement worker pool
func NewPool(config PoolConfig, orders domain.OrderRepository, settler Settler, logger *zap.Logger) *Pool {
	return &Pool{
		workers:      config.Workers,
		queue:        make(chan *domain.Order, config.QueueSize),
		orders:       orders,
		settler:      settler,
		logger:       logger,
		scanInterval: config.ScanInterval,
	}
}

// Start launches the workers and the scanner.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.wg.Add(1)
	go p.scanner(ctx)
}

// Stop drains the pool and waits for all goroutines to finish.
func (p *Pool) Stop() {
	close(p.queue)
	p.wg.Wait()
}

// worker settles orders from the queue.
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Info("settlement worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("settlement worker stopping", zap.Int("worker_id", id))
			return
		case order, ok := <-p.queue:
			if !ok {
				return
			}
			if err := p.settler.SettleOrder(ctx, order); err != nil {
				p.logger.Error("settlement retry failed",
					zap.String("order_id", order.ID),
					zap.Error(err),
				)
				continue
			}
			p.logger.Info("order settlement resolved",
				zap.String("order_id", order.ID),
				zap.Int64("points_earned", order.PointsEarned),
				zap.Int64("points_spent", order.PointsSpent),
			)
		}
	}
}

// scanner periodically scans for unsettled orders.
func (p *Pool) scanner(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("settlement scanner stopping")
			return
		case <-ticker.C:
			p.scanUnsettledOrders(ctx)
		}
	}
}

// scanUnsettledOrders enqueues pending settlements.
func (p *Pool) scanUnsettledOrders(ctx context.Context) {
	orders, err := p.orders.GetUnsettledOrders(ctx, cap(p.queue))
	if err != nil {
		p.logger.Error("failed to get unsettled orders", zap.Error(err))
		return
	}

	for _, order := range orders {
		select {
		case p.queue <- order:
		case <-ctx.Done():
			return
		default:
			// Queue is full, the next scan will pick the order up again.
			p.logger.Warn("settlement queue is full, skipping order",
				zap.String("order_id", order.ID))
		}
	}
}
