package notification

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// HealthChecker verifica la conectividad con la base de datos.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Monitor corre los chequeos del motor en segundo plano con tres timers
// independientes: inventario, ventas y salud del sistema. SingletonMode evita
// que una corrida lenta se superponga con la siguiente del mismo timer.
type Monitor struct {
	engine      *Engine
	companyRepo repository.CompanyRepository
	health      HealthChecker
	cfg         config.MonitorConfig
	scheduler   *gocron.Scheduler
	log         *logger.Logger
}

// NewMonitor construye el monitor.
func NewMonitor(
	engine *Engine,
	companyRepo repository.CompanyRepository,
	health HealthChecker,
	cfg config.MonitorConfig,
	log *logger.Logger,
) *Monitor {
	return &Monitor{
		engine:      engine,
		companyRepo: companyRepo,
		health:      health,
		cfg:         cfg,
		scheduler:   gocron.NewScheduler(time.UTC),
		log:         log,
	}
}

// Start registra los tres timers y arranca el scheduler en segundo plano.
func (m *Monitor) Start() error {
	m.scheduler.SingletonModeAll()

	if _, err := m.scheduler.Every(m.cfg.InventoryMinutes).Minutes().Do(m.runInventoryChecks); err != nil {
		return err
	}
	if _, err := m.scheduler.Every(m.cfg.SalesMinutes).Minutes().Do(m.runSalesChecks); err != nil {
		return err
	}
	if _, err := m.scheduler.Every(m.cfg.HealthMinutes).Minutes().Do(m.runHealthCheck); err != nil {
		return err
	}

	m.scheduler.StartAsync()
	m.log.Info().
		Int("inventario_min", m.cfg.InventoryMinutes).
		Int("ventas_min", m.cfg.SalesMinutes).
		Int("salud_min", m.cfg.HealthMinutes).
		Msg("monitor de notificaciones iniciado")
	return nil
}

// Stop detiene el scheduler y espera a que terminen los jobs en curso.
func (m *Monitor) Stop() {
	m.scheduler.Stop()
	m.log.Info().Msg("monitor de notificaciones detenido")
}

// runInventoryChecks corre stock bajo y vencimientos para cada empresa.
func (m *Monitor) runInventoryChecks() {
	companies, err := m.companyRepo.List()
	if err != nil {
		m.log.Error().Err(err).Msg("monitor: no se pudieron listar empresas")
		return
	}
	for _, c := range companies {
		if r := m.engine.CheckLowStock(c.ID); r.Err != nil {
			m.log.Error().Err(r.Err).Str("company_id", c.ID).Msg("monitor: chequeo de stock falló")
		}
		if r := m.engine.CheckExpiry(c.ID); r.Err != nil {
			m.log.Error().Err(r.Err).Str("company_id", c.ID).Msg("monitor: chequeo de vencimientos falló")
		}
	}
}

// runSalesChecks corre el chequeo de reposición para cada empresa.
func (m *Monitor) runSalesChecks() {
	companies, err := m.companyRepo.List()
	if err != nil {
		m.log.Error().Err(err).Msg("monitor: no se pudieron listar empresas")
		return
	}
	for _, c := range companies {
		if r := m.engine.CheckReorder(c.ID); r.Err != nil {
			m.log.Error().Err(r.Err).Str("company_id", c.ID).Msg("monitor: chequeo de reposición falló")
		}
	}
}

// runHealthCheck verifica la base de datos y notifica a todas las empresas si
// hay un problema de conectividad.
func (m *Monitor) runHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := m.health.Ping(ctx)
	if err == nil {
		return
	}
	m.log.Error().Err(err).Msg("monitor: base de datos no responde")

	companies, err := m.companyRepo.List()
	if err != nil {
		return // sin BD tampoco hay dónde persistir la alerta
	}
	day := time.Now().Format("2006-01-02")
	for _, c := range companies {
		if err := m.engine.NotifySystemEvent(c.ID, "db-health-"+day,
			"Problema de conectividad",
			"La base de datos no respondió al chequeo de salud",
			entity.PriorityUrgent); err != nil {
			m.log.Error().Err(err).Str("company_id", c.ID).Msg("monitor: no se pudo notificar el evento")
		}
	}
}
