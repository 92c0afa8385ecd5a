package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	acceptApplicationHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/accept_application"
	cancelApplicationHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/cancel_application"
	cancelSlotHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/cancel_slot"
	completeSlotHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/complete_slot"
	createSlotsHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/create_slots"
	deleteSlotHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/delete_slot"
	getApplicationHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/get_application"
	getSlotHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/get_slot"
	getSlotStatsHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/get_slot_stats"
	listApplicationsHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/list_applications"
	listSlotsHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/list_slots"
	rejectApplicationHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/reject_application"
	submitApplicationHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/submit_application"
	updateApplicationStatusHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/update_application_status"
	updateSlotHandler "github.com/m04kA/jobfair-interviews/internal/api/handlers/update_slot"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
	accessService "github.com/m04kA/jobfair-interviews/internal/service/access"
	applicationsService "github.com/m04kA/jobfair-interviews/internal/service/applications"
	conflictsService "github.com/m04kA/jobfair-interviews/internal/service/conflicts"
	slotsService "github.com/m04kA/jobfair-interviews/internal/service/slots"
	acceptApplicationUC "github.com/m04kA/jobfair-interviews/internal/usecase/accept_application"
	cancelApplicationUC "github.com/m04kA/jobfair-interviews/internal/usecase/cancel_application"
	createSlotsUC "github.com/m04kA/jobfair-interviews/internal/usecase/create_slots"
	rejectApplicationUC "github.com/m04kA/jobfair-interviews/internal/usecase/reject_application"
	slotLifecycle "github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
	submitApplicationUC "github.com/m04kA/jobfair-interviews/internal/usecase/submit_application"
	updateSlotUC "github.com/m04kA/jobfair-interviews/internal/usecase/update_slot"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
)

// slotStore методы хранилища слотов, нужные всем компонентам
type slotStore interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	ListActiveByRecruiterAndDate(ctx context.Context, recruiterID int64, date time.Time) ([]*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) error
	UpdateStatus(ctx context.Context, slot *domain.Slot) error
	SetMeeting(ctx context.Context, id uuid.UUID, candidateID int64, link, providerMeetingID string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, filter domain.SlotFilter) (*domain.SlotStats, error)
	LockRecruiter(ctx context.Context, recruiterID int64) error
}

// applicationStore методы хранилища заявок, нужные всем компонентам
type applicationStore interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetByCandidateAndPosting(ctx context.Context, candidateID, postingID int64) (*domain.Application, error)
	List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, app *domain.Application) error
	CancelAcceptedBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Application, error)
	HasOtherAccepted(ctx context.Context, slotID uuid.UUID, candidateID int64, excludeID uuid.UUID) (bool, error)
}

type eventDirectory interface {
	GetEvent(ctx context.Context, eventID int64) (*eventservice.Event, error)
	GetPosting(ctx context.Context, postingID int64) (*eventservice.Posting, error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type notificationSender interface {
	Notify(ctx context.Context, notifications ...notifier.Notification)
}

type domainMetrics interface {
	AddSlotsCreated(n int)
	IncSlotTransition(transition string)
	IncConflict(kind string)
	IncProvisioningFailure()
}

// dependencies порты, из которых собирается API
// provisioner может быть nil, тогда видеовстречи не создаются
type dependencies struct {
	slots        slotStore
	applications applicationStore
	events       eventDirectory
	provisioner  slotLifecycle.MeetingProvisioner
	notifier     notificationSender
	txManager    transactionManager
	metrics      domainMetrics
	rules        domain.SlotRules
	logger       *logger.Logger
}

// routerOptions параметры инфраструктурных маршрутов
type routerOptions struct {
	httpMetrics    middleware.HTTPMetricsRecorder // nil - без метрик
	metricsPath    string
	metricsHandler http.Handler
}

// newRouter собирает сервисы, use cases и handlers и регистрирует маршруты
func newRouter(deps *dependencies, opts routerOptions) *mux.Router {
	log := deps.logger

	// Сервисы
	conflicts := conflictsService.NewService(deps.slots, log)
	access := accessService.NewService(deps.slots, deps.events, log)
	slotSvc := slotsService.NewService(deps.slots, log)
	applicationSvc := applicationsService.NewService(deps.applications, access, deps.txManager, log)

	lifecycle := slotLifecycle.NewManager(
		deps.slots,
		deps.applications,
		deps.provisioner,
		deps.notifier,
		deps.txManager,
		deps.metrics,
		log,
	)

	// Use cases
	createSlots := createSlotsUC.NewUseCase(deps.slots, conflicts, deps.events, deps.txManager, deps.metrics, deps.rules, log)
	updateSlot := updateSlotUC.NewUseCase(deps.slots, conflicts, deps.events, deps.txManager, deps.metrics, deps.rules, log)
	submitApplication := submitApplicationUC.NewUseCase(deps.applications, deps.slots, deps.events, deps.notifier, log)
	acceptApplication := acceptApplicationUC.NewUseCase(
		deps.applications, access, lifecycle, deps.notifier, deps.txManager, deps.metrics, log,
	)
	rejectApplication := rejectApplicationUC.NewUseCase(deps.applications, access, deps.notifier, deps.txManager, log)
	cancelApplication := cancelApplicationUC.NewUseCase(
		deps.applications, access, lifecycle, deps.notifier, deps.txManager, deps.metrics, log,
	)

	r := mux.NewRouter()

	if opts.httpMetrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.httpMetrics))
	}
	if opts.metricsHandler != nil {
		r.Handle(opts.metricsPath, opts.metricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	protected.HandleFunc("/events/{eventId}/slots",
		createSlotsHandler.NewHandler(createSlots, log).Handle).Methods(http.MethodPost)

	protected.HandleFunc("/slots", listSlotsHandler.NewHandler(slotSvc, log).Handle).Methods(http.MethodGet)

	// stats регистрируется раньше /slots/{slotId}
	protected.HandleFunc("/slots/stats", getSlotStatsHandler.NewHandler(slotSvc, log).Handle).Methods(http.MethodGet)

	protected.HandleFunc("/slots/{slotId}", getSlotHandler.NewHandler(slotSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}", updateSlotHandler.NewHandler(updateSlot, log).Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", deleteSlotHandler.NewHandler(lifecycle, log).Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/cancel",
		cancelSlotHandler.NewHandler(lifecycle, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{slotId}/complete",
		completeSlotHandler.NewHandler(lifecycle, log).Handle).Methods(http.MethodPatch)

	// --- Заявки ---
	protected.HandleFunc("/applications",
		submitApplicationHandler.NewHandler(submitApplication, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/applications",
		listApplicationsHandler.NewHandler(applicationSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/applications/{applicationId}",
		getApplicationHandler.NewHandler(applicationSvc, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/applications/{applicationId}/accept",
		acceptApplicationHandler.NewHandler(acceptApplication, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/applications/{applicationId}/reject",
		rejectApplicationHandler.NewHandler(rejectApplication, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/applications/{applicationId}/cancel",
		cancelApplicationHandler.NewHandler(cancelApplication, log).Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/applications/{applicationId}/status",
		updateApplicationStatusHandler.NewHandler(applicationSvc, log).Handle).Methods(http.MethodPatch)

	return r
}
