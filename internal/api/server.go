package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/dgallion1/fieldreport/internal/auth"
	"github.com/dgallion1/fieldreport/internal/config"
	"github.com/dgallion1/fieldreport/internal/export"
	"github.com/dgallion1/fieldreport/internal/extract"
	"github.com/dgallion1/fieldreport/internal/master"
	"github.com/dgallion1/fieldreport/internal/nav"
	"github.com/dgallion1/fieldreport/internal/report"
	"github.com/dgallion1/fieldreport/internal/reports"
	"github.com/dgallion1/fieldreport/internal/review"
	"github.com/dgallion1/fieldreport/internal/wizard"
)

// Server is the HTTP API server for fieldreport.
type Server struct {
	router chi.Router

	store    *report.Store
	nav      *nav.Engine
	review   *review.Engine
	exporter *export.Service
	importer *wizard.PartsImporter
	wizard   *wizard.ReportWizard
	catalog  *master.Catalog
	reports  *reports.Store
	sessions *auth.Sessions
	claude   *extract.ClaudeClient

	validate *validator.Validate
	log      *slog.Logger
	cfg      config.Config
}

// Deps bundles everything the server routes over.
type Deps struct {
	Store    *report.Store
	Nav      *nav.Engine
	Review   *review.Engine
	Exporter *export.Service
	Importer *wizard.PartsImporter
	Wizard   *wizard.ReportWizard
	Catalog  *master.Catalog
	Reports  *reports.Store
	Sessions *auth.Sessions
	Claude   *extract.ClaudeClient
}

// NewServer creates and configures the HTTP server.
func NewServer(deps Deps, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:    deps.Store,
		nav:      deps.Nav,
		review:   deps.Review,
		exporter: deps.Exporter,
		importer: deps.Importer,
		wizard:   deps.Wizard,
		catalog:  deps.Catalog,
		reports:  deps.Reports,
		sessions: deps.Sessions,
		claude:   deps.Claude,
		validate: validator.New(),
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Post("/api/login", s.handleLogin)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.sessions, s.log))

		r.Post("/api/logout", s.handleLogout)

		r.Route("/api/report", func(r chi.Router) {
			r.Get("/", s.handleGetReport)
			r.Put("/overview", s.handleUpdateOverview)

			r.Route("/{chapter}/tasks", func(r chi.Router) {
				r.Post("/", s.handleAddParentTask)
				r.Patch("/{taskID}", s.handleUpdateParentTask)
				r.Delete("/{taskID}", s.handleRemoveParentTask)

				r.Route("/{taskID}/subtasks", func(r chi.Router) {
					r.Post("/", s.handleAddSubtask)
					r.Patch("/{subID}", s.handleUpdateSubtask)
					r.Delete("/{subID}", s.handleRemoveSubtask)
					r.Post("/{subID}/duplicate", s.handleDuplicateSubtask)

					r.Post("/{subID}/measurements", s.handleAddMeasurement)
					r.Delete("/{subID}/measurements/{recordID}", s.handleRemoveMeasurement)
					r.Post("/{subID}/parts", s.handleAddParts)
					r.Delete("/{subID}/parts/{recordID}", s.handleRemovePart)
					r.Post("/{subID}/images", s.handleAddImage)
					r.Delete("/{subID}/images/{recordID}", s.handleRemoveImage)
				})
			})
		})

		r.Route("/api/nav", func(r chi.Router) {
			r.Get("/", s.handleNavState)
			r.Get("/breadcrumbs", s.handleBreadcrumbs)
			r.Get("/tasks/{chapter}", s.handleFilteredTasks)
			r.Post("/sidebar/toggle", s.handleToggleSidebar)
			r.Put("/view", s.handleSetViewMode)
			r.Put("/active", s.handleSetActiveSection)
			r.Post("/sections/{sectionID}/toggle", s.handleToggleSection)
			r.Post("/expand-all", s.handleExpandAll)
			r.Post("/collapse-all", s.handleCollapseAll)
			r.Put("/filter", s.handleSetFilterMode)
			r.Post("/focus/toggle", s.handleToggleFocus)
		})

		r.Route("/api/review", func(r chi.Router) {
			r.Get("/suggestions", s.handleListSuggestions)
			r.Get("/counts", s.handleSuggestionCounts)
			r.Post("/trigger", s.handleTriggerReview)
			r.Post("/polish", s.handleTriggerPolish)
			r.Post("/suggestions/{suggestionID}/apply", s.handleApplySuggestion)
			r.Post("/suggestions/{suggestionID}/dismiss", s.handleDismissSuggestion)
		})

		r.Route("/api/export", func(r chi.Router) {
			r.Put("/template", s.handleUploadTemplate)
			r.Get("/preview", s.handlePreview)
			r.Get("/docx", s.handleExportDocx)
			r.Get("/pdf", s.handleExportPDF)
		})

		r.Route("/api/import", func(r chi.Router) {
			r.Get("/", s.handleImportState)
			r.Post("/upload", s.handleImportUpload)
			r.Put("/page", s.handleImportSelectPage)
			r.Post("/extract", s.handleImportExtract)
			r.Post("/confirm", s.handleImportConfirm)
			r.Post("/back", s.handleImportBack)
			r.Post("/close", s.handleImportClose)
		})

		r.Route("/api/master", func(r chi.Router) {
			r.Get("/clients", s.handleListClients)
			r.Get("/clients/{clientID}/factories", s.handleListFactories)
			r.Get("/factories/{factoryID}/machines", s.handleListMachines)
			r.Get("/manufacturers", s.handleListManufacturers)
		})

		r.Route("/api/wizard", func(r chi.Router) {
			r.Get("/", s.handleWizardState)
			r.Post("/start", s.handleWizardStart)
			r.Post("/select", s.handleWizardSelect)
			r.Post("/next", s.handleWizardNext)
			r.Post("/back", s.handleWizardBack)
			r.Post("/close", s.handleWizardClose)
		})

		r.Route("/api/reports", func(r chi.Router) {
			r.Get("/", s.handleListReports)
			r.Post("/{reportID}/duplicate", s.handleDuplicateReport)
			r.Delete("/{reportID}", s.handleDeleteReport)
		})

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.claude == nil {
		jsonError(w, "extraction not configured", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, s.claude.Stats())
}

// decodeValid decodes a JSON body into dst and runs struct validation.
func (s *Server) decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return s.validate.Struct(dst)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
