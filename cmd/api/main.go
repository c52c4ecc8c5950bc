package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	apppayroll "github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/application/timeclock"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	infranomina "github.com/jhoicas/Nomina-api/internal/infrastructure/nomina"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/nomina/signer"
	infrapdf "github.com/jhoicas/Nomina-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Nomina-api/internal/interfaces/http"
	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	managerLocRepo := postgres.NewManagerLocationRepository(pool)
	roleHistoryRepo := postgres.NewRoleHistoryRepository(pool)
	timeEntryRepo := postgres.NewTimeEntryRepository(pool)
	payrollRepo := postgres.NewPayrollRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Identidad: proveedor demo solo si está habilitado por configuración.
	// La decisión se toma UNA vez aquí; el resolutor no consulta flags en runtime.
	var demo auth.DemoProvider
	if cfg.Auth.DemoEnabled {
		demo = auth.NewStaticDemoProvider(cfg.Auth.DemoEmployeeID, cfg.Auth.DemoCompanyID, cfg.Auth.DemoOrgID, cfg.Auth.DemoEmail)
		log.Warn().Msg("proveedor de identidad demo HABILITADO (solo dev/QA)")
	}
	identityResolver := auth.NewIdentityResolver(employeeRepo, cfg.JWT.Secret, demo)

	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, roleHistoryRepo, managerLocRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	teamUC := usecase.NewTeamUseCase(teamRepo)
	timeclockUC := timeclock.NewUseCase(timeEntryRepo, log)
	payrollUC := apppayroll.NewUseCase(payrollRepo, employeeRepo, txRunner)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	reportUC := appanalytics.NewReportUseCase(timeEntryRepo, employeeRepo)

	// Nómina electrónica DIAN: CUNE → XML → XAdES-EPES → ZIP → Envío SOAP → Update DB
	xmlBuilder := infranomina.NewXMLBuilderService()
	signerSvc := signer.NewDigitalSignatureService()
	nominaCfg := apppayroll.ElectronicPayrollConfig{
		SoftwareID:   cfg.Nomina.SoftwareID,
		SoftwarePin:  cfg.Nomina.SoftwarePin,
		Environment:  cfg.Nomina.Environment,
		AppEnv:       cfg.Nomina.AppEnv,
		Prefix:       cfg.Nomina.Prefix,
		CertPath:     cfg.Nomina.CertPath,
		CertKeyPath:  cfg.Nomina.CertKeyPath,
		CertPassword: cfg.Nomina.CertPassword,
	}

	// Cliente SOAP DIAN — solo se usa si AppEnv es "test" o "prod".
	// En modo "dev" el orquestador no lo invoca.
	var nominaSubmitter infranomina.NominaSubmitter
	if cfg.Nomina.AppEnv != "dev" && cfg.Nomina.AppEnv != "" {
		nominaSubmitter = infranomina.NewSOAPNominaClient()
	}

	orchestrator := apppayroll.NewNominaOrchestrator(
		payrollRepo, employeeRepo, companyRepo,
		xmlBuilder, signerSvc, nominaSubmitter, nominaCfg,
	)

	// PDF: desprendible de pago (representación gráfica de la nómina)
	payslipGenerator := infrapdf.NewMarotoPayslipGenerator()
	payrollPDFUC := apppayroll.NewPDFUseCase(payrollRepo, employeeRepo, companyRepo, payslipGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nomina API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IdentityResolver: identityResolver,
		AuthUC:           authUC,
		CompanyUC:        companyUC,
		EmployeeUC:       employeeUC,
		LocationUC:       locationUC,
		TeamUC:           teamUC,
		TimeclockUC:      timeclockUC,
		PayrollUC:        payrollUC,
		PayrollPDFUC:     payrollPDFUC,
		Orchestrator:     orchestrator,
		DashboardUC:      dashboardUC,
		ReportUC:         reportUC,
		Log:              log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
