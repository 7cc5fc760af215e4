package scheduler

import (
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/config"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/metrics"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRunTimeout limita cuánto puede tardar un precalentamiento
const DefaultRunTimeout = 2 * time.Minute

// WarmUpScheduler precalienta la caché de precios una vez al día
type WarmUpScheduler struct {
	cron         *cron.Cron
	priceService interfaces.PriceService
	spec         string
	runOnStart   bool
	runTimeout   time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewWarmUpScheduler crea el scheduler. El contexto acota la vida de los trabajos lanzados.
func NewWarmUpScheduler(ctx context.Context, priceService interfaces.PriceService, cfg config.SchedulerConfig, loc *time.Location) *WarmUpScheduler {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WarmUpScheduler{
		cron:         cron.New(cron.WithParser(config.CronParser), cron.WithLocation(loc)),
		priceService: priceService,
		spec:         cfg.Spec,
		runOnStart:   cfg.RunOnStart,
		runTimeout:   DefaultRunTimeout,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start registra el trabajo y arranca el cron. Con run_on_start lanza además una ejecución inmediata.
func (s *WarmUpScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() { _ = s.RunNow() }); err != nil {
		return fmt.Errorf("register warm-up task: %w", err)
	}

	s.cron.Start()
	logging.Info(s.ctx, "Warm-up scheduler started", logging.Fields{
		"spec":         s.spec,
		"run_on_start": s.runOnStart,
	})

	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			_ = s.RunNow()
		}()
	}
	return nil
}

// Stop detiene el cron y espera a que terminen las ejecuciones en curso,
// incluida la lanzada al arrancar
func (s *WarmUpScheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
	logging.Info(context.Background(), "Warm-up scheduler stopped", nil)
}

// RunNow pide la serie spot, lo que refresca ambas series sólo si no son del día.
// Los errores se registran y la siguiente ejecución vuelve a intentarlo.
func (s *WarmUpScheduler) RunNow() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()
	ctx = logging.WithRequestID(ctx, logging.GenerateRequestID())

	if s.priceService.IsFresh(entities.VariableSpot) && s.priceService.IsFresh(entities.VariablePVPC) {
		metrics.RecordScheduledRun("skipped")
		logging.Debug(ctx, "Price cache already fresh, skipping warm-up", nil)
		return nil
	}

	start := time.Now()
	if _, err := s.priceService.GetPrices(ctx, entities.VariableSpot, entities.UnitMega); err != nil {
		metrics.RecordScheduledRun("error")
		logging.Business().RefreshFailed(ctx, string(entities.VariableSpot), err)
		return err
	}

	metrics.RecordScheduledRun("success")
	logging.Info(ctx, "Price cache warmed up", logging.Fields{
		logging.FieldDuration: float64(time.Since(start).Microseconds()) / 1000,
	})
	return nil
}
