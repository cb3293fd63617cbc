package router

import (
	"net/http"
	"time"

	"neurowatch/internal/config"
	"neurowatch/internal/handlers"
	"neurowatch/internal/models"
	"neurowatch/internal/repository"
	"neurowatch/internal/risk"
	"neurowatch/internal/services"
	"neurowatch/internal/uploads"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

const sessionName = "neurowatch"

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many uploads. Try again in "+time.Until(info.ResetTime).Round(time.Second).String())
}

// NewWorkspaceStore builds the per-browser workspace store. Each new workspace
// starts with the fixture upload history and takes its upload settings from
// the configuration current at creation.
func NewWorkspaceStore(log *zap.Logger, fixtures *models.Fixtures, scheduler services.Scheduler) *repository.WorkspaceStore {
	scorer := risk.NewScorer(nil)
	notifier := services.NewReportNotifier(log)

	newTracker := func() *uploads.Tracker {
		conf := config.Current().Upload
		keyMode, err := uploads.ParseKeyMode(conf.CompletionKey)
		if err != nil {
			log.Warn("Unknown completion key, matching by upload id", zap.Error(err))
			keyMode = uploads.KeyByID
		}
		return uploads.NewTracker(log, fixtures.SeedUploads(), uploads.Options{
			Delay:             conf.ProcessingDelay,
			AllowedExtensions: conf.AllowedExtensions,
			KeyMode:           keyMode,
			Scorer:            scorer,
			Scheduler:         scheduler,
			OnComplete:        notifier.ReportReady,
		})
	}
	ws := config.Conf.Workspace
	return repository.NewWorkspaceStore(ws.MaxSessions, ws.TTL, newTracker)
}

// Setup wires the middleware chain and routes.
func Setup(log *zap.Logger, fixtures *models.Fixtures) *gin.Engine {
	return newEngine(log, fixtures, NewWorkspaceStore(log, fixtures, services.NewTimerScheduler(log)))
}

func newEngine(log *zap.Logger, fixtures *models.Fixtures, workspaces *repository.WorkspaceStore) *gin.Engine {
	conf := config.Conf

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.MaxMultipartMemory = conf.Upload.MaxMultipartMB << 20

	store := cookie.NewStore([]byte(conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   conf.Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(conf.Workspace.TTL.Seconds()),
	})
	router.Use(sessions.Sessions(sessionName, store))

	router.Use(NonceMiddleware())
	router.Use(CSRFProtection())
	router.Use(ContentSecurityPolicy())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	router.Static("/assets", conf.Server.AssetsDir)

	notFound := handlers.NotFound(log)
	loadWorkspace := WorkspaceLoader(log, workspaces)
	doctorHandler := handlers.NewDoctorHandler(log, fixtures.Roster)
	patientHandler := handlers.NewPatientHandler(log)
	dashboardHandler := handlers.NewDashboardHandler(log, workspaces, doctorHandler, patientHandler)
	reportsHandler := handlers.NewReportsHandler(log, fixtures.Roster)
	waveformHandler := handlers.NewWaveformHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: conf.Upload.RateLimit,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/", dashboardHandler.Index)
	router.GET("/api/eeg/:kind", waveformHandler.Trace)

	fragments := router.Group("/")
	fragments.Use(FragmentOnly(notFound), loadWorkspace)
	{
		fragments.POST("/role", dashboardHandler.SelectRole)

		doctor := fragments.Group("/doctor", RoleRequired(models.RoleDoctor))
		{
			doctor.GET("", doctorHandler.Dashboard)
			doctor.GET("/patients/:id", doctorHandler.SelectPatient)
		}

		patient := fragments.Group("/patient", RoleRequired(models.RolePatient))
		{
			patient.GET("", patientHandler.Dashboard)
			patient.GET("/uploads", patientHandler.Uploads)
			patient.POST("/uploads", limiter, patientHandler.Upload)
		}
	}

	reportRoutes := router.Group("/reports", loadWorkspace)
	{
		reportRoutes.GET("/patients.xlsx", RoleRequired(models.RoleDoctor), reportsHandler.Patients)
		reportRoutes.GET("/latest.xlsx", RoleRequired(models.RolePatient), reportsHandler.Latest)
	}

	router.NoRoute(notFound)

	return router
}
