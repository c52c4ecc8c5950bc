package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/application/timeclock"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IdentityResolver *auth.IdentityResolver
	AuthUC           *auth.AuthUseCase
	CompanyUC        *usecase.CompanyUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	LocationUC       *usecase.LocationUseCase
	TeamUC           *usecase.TeamUseCase
	TimeclockUC      *timeclock.UseCase
	PayrollUC        *payroll.UseCase
	PayrollPDFUC     *payroll.PDFUseCase
	Orchestrator     *payroll.NominaOrchestrator
	DashboardUC      *analytics.DashboardUseCase
	ReportUC         *analytics.ReportUseCase
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; me requiere identidad
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Registro de empresa (público: es el alta del tenant)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Log)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas: identidad por cabecera (Bearer JWT/UUID/código o x-employee-id)
	protected := api.Group("/", IdentityMiddleware(deps.IdentityResolver, deps.Log))

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/companies/me", companyHandler.GetOwn)

	adminOnly := RequireRole(entity.RoleAdmin)
	managerial := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleTeamLead, entity.RoleProjectManager)

	// Empleados
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.Log)
	employees := protected.Group("/employees")
	employees.Post("/", adminOnly, employeeHandler.Onboard)
	employees.Get("/", managerial, employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", adminOnly, employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Deactivate)
	employees.Post("/:id/role", adminOnly, employeeHandler.ChangeRole)
	employees.Get("/:id/role-history", adminOnly, employeeHandler.RoleHistory)
	employees.Post("/:id/locations", adminOnly, employeeHandler.AssignLocation)
	employees.Get("/:id/locations", adminOnly, employeeHandler.ListLocations)
	employees.Delete("/:id/locations/:locationId", adminOnly, employeeHandler.UnassignLocation)

	// Sedes
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations := protected.Group("/locations")
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", adminOnly, locationHandler.Update)
	locations.Delete("/:id", adminOnly, locationHandler.Delete)

	// Equipos
	teamHandler := NewTeamHandler(deps.TeamUC)
	teams := protected.Group("/teams")
	teams.Post("/", adminOnly, teamHandler.Create)
	teams.Get("/", teamHandler.List)
	teams.Get("/:id", teamHandler.GetByID)
	teams.Put("/:id", adminOnly, teamHandler.Update)
	teams.Delete("/:id", adminOnly, teamHandler.Delete)

	// Reloj de tiempo
	timeclockHandler := NewTimeclockHandler(deps.TimeclockUC, deps.Log)
	tc := protected.Group("/timeclock")
	tc.Post("/clock-in", timeclockHandler.ClockIn)
	tc.Post("/clock-out", timeclockHandler.ClockOut)
	tc.Get("/status", timeclockHandler.Status)
	tc.Post("/breaks/start", timeclockHandler.StartBreak)
	tc.Post("/breaks/end", timeclockHandler.EndBreak)
	tc.Get("/entries", timeclockHandler.List)
	tc.Put("/entries/:id", managerial, timeclockHandler.UpdateEntry)
	tc.Post("/entries/approve", RequireRole(entity.RoleAdmin, entity.RoleManager), timeclockHandler.BulkApprove)
	tc.Get("/entries/:id/breaks", timeclockHandler.ListBreaks)

	// Nómina
	payrollHandler := NewPayrollHandler(deps.PayrollUC, deps.PayrollPDFUC, deps.Orchestrator, deps.Log)
	pr := protected.Group("/payroll/records")
	pr.Post("/", adminOnly, payrollHandler.CreateRecord)
	pr.Get("/", payrollHandler.ListRecords)
	pr.Get("/:id", payrollHandler.GetRecord)
	pr.Post("/:id/bonuses", adminOnly, payrollHandler.AddBonus)
	pr.Post("/:id/deductions", adminOnly, payrollHandler.AddDeduction)
	pr.Get("/:id/adjustments", payrollHandler.ListAdjustments)
	pr.Post("/:id/emit", adminOnly, payrollHandler.Emit)
	pr.Get("/:id/payslip.pdf", payrollHandler.DownloadPayslipPDF)
	pr.Get("/:id/document.xml", payrollHandler.DownloadSignedXML)

	// Tablero y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	dash := protected.Group("/dashboard", managerial)
	dash.Get("/summary", dashboardHandler.Summary)
	dash.Get("/hours-by-location", dashboardHandler.HoursByLocation)

	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	protected.Get("/reports/time-entries.csv", managerial, reportHandler.TimeEntriesCSV)
}
