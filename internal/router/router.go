package router

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	_ "animal-shelter/docs"
	"animal-shelter/internal/adapters/notify/lognotify"
	mem "animal-shelter/internal/adapters/storage/memory"
	pg "animal-shelter/internal/adapters/storage/postgres"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/domain/assessments"
	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/domain/characteristics"
	"animal-shelter/internal/domain/intakes"
	"animal-shelter/internal/domain/notes"
	"animal-shelter/internal/domain/outcomes"
	"animal-shelter/internal/domain/references"
	"animal-shelter/internal/domain/tasks"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/auth"
	"animal-shelter/internal/ports/cache"
	"animal-shelter/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Log          logger.Logger
	AuthVerifier auth.AuthVerifier // nil = modo dev (headers X-Debug-*)

	// nil => storage in-memory.
	DB *sql.DB

	// nil => sin cache en las lecturas públicas.
	Cache    cache.Cache
	CacheTTL time.Duration

	// nil => avisos solo al log.
	Notifier notify.Notifier

	// 0 => sin rate limit.
	ApplicantWritesPerMin int

	// nil => authz.DefaultTable().
	Permissions *authz.Table
}

// repos agrupa los adapters de storage elegidos al arrancar.
type repos struct {
	animals         animals.Repository
	applications    applications.Repository
	audit           audit.Repository
	intakes         intakes.Repository
	outcomes        outcomes.Repository
	references      references.Repository
	tasks           tasks.Repository
	notes           notes.Repository
	assessments     assessments.Repository
	characteristics characteristics.Repository

	applicationsUoW applications.UnitOfWork
	intakesUoW      intakes.UnitOfWork
	outcomesUoW     outcomes.UnitOfWork
}

func postgresRepos(db *sql.DB) repos {
	s := pg.NewStore(db)
	return repos{
		animals:         s,
		applications:    s,
		audit:           s,
		intakes:         s,
		outcomes:        s,
		references:      pg.NewReferencesRepo(db),
		tasks:           pg.NewTasksRepo(db),
		notes:           pg.NewNotesRepo(db),
		assessments:     pg.NewAssessmentsRepo(db),
		characteristics: pg.NewCharacteristicsRepo(db),
		applicationsUoW: pg.NewUnitOfWork[applications.Tx](s),
		intakesUoW:      pg.NewUnitOfWork[intakes.Tx](s),
		outcomesUoW:     pg.NewUnitOfWork[outcomes.Tx](s),
	}
}

func memoryRepos() repos {
	s := mem.NewStore()
	return repos{
		animals:         s,
		applications:    s,
		audit:           s,
		intakes:         s,
		outcomes:        s,
		references:      mem.NewReferenceRepo(),
		tasks:           mem.NewTaskRepo(),
		notes:           mem.NewNoteRepo(),
		assessments:     mem.NewAssessmentRepo(),
		characteristics: mem.NewCharacteristicRepo(),
		applicationsUoW: mem.NewUnitOfWork[applications.Tx](s),
		intakesUoW:      mem.NewUnitOfWork[intakes.Tx](s),
		outcomesUoW:     mem.NewUnitOfWork[outcomes.Tx](s),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	table := opts.Permissions
	if table == nil {
		table = authz.DefaultTable()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = lognotify.New(log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.NewRateLimiter(opts.ApplicantWritesPerMin, log).
		Exempt(func(req *http.Request) bool {
			return strings.HasPrefix(req.URL.Path, "/staff/")
		}).
		Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var rp repos
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
	} else {
		rp = memoryRepos()
	}

	gate := authz.NewGate(table, log)

	// Services por módulo
	referencesSvc := references.NewService(rp.references)

	animalOpts := []animals.Option{animals.WithLogger(log)}
	if opts.Cache != nil {
		animalOpts = append(animalOpts, animals.WithCache(opts.Cache, opts.CacheTTL))
	}
	animalsSvc := animals.NewService(rp.animals, referencesSvc, animalOpts...)
	reval := animalsSvc.Revalidator()

	characteristicsSvc := characteristics.NewService(rp.characteristics, animalsSvc, reval)
	animalsSvc.SetTagSource(characteristicsSvc)

	effects := applications.NewEffects(reval, notifier, log)
	applicationsSvc := applications.NewService(rp.applications, rp.applicationsUoW, effects)
	intakesSvc := intakes.NewService(rp.intakes, rp.intakesUoW, animalsSvc, reval)
	outcomesSvc := outcomes.NewService(rp.outcomes, rp.outcomesUoW, animalsSvc, applicationsSvc, effects)
	auditSvc := audit.NewService(rp.audit, animalsSvc)
	tasksSvc := tasks.NewService(rp.tasks, animalsSvc)
	notesSvc := notes.NewService(rp.notes, animalsSvc)
	assessmentsSvc := assessments.NewService(rp.assessments, animalsSvc)

	// Rutas por módulo
	authz.RegisterRoutes(r, gate, log)
	references.RegisterRoutes(r, referencesSvc, gate, log)
	animals.RegisterRoutes(r, animalsSvc, gate, log)
	applications.RegisterRoutes(r, applicationsSvc, gate, log)
	intakes.RegisterRoutes(r, intakesSvc, gate, log)
	outcomes.RegisterRoutes(r, outcomesSvc, gate, log)
	audit.RegisterRoutes(r, auditSvc, gate, log)
	tasks.RegisterRoutes(r, tasksSvc, gate, log)
	notes.RegisterRoutes(r, notesSvc, gate, log)
	assessments.RegisterRoutes(r, assessmentsSvc, gate, log)
	characteristics.RegisterRoutes(r, characteristicsSvc, gate, log)

	return r
}
