package payroll

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"strings"
	"time"

	infranomina "github.com/jhoicas/Nomina-api/internal/infrastructure/nomina"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/nomina/signer"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	domnomina "github.com/jhoicas/Nomina-api/internal/domain/nomina"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	pkgnomina "github.com/jhoicas/Nomina-api/pkg/nomina"
)

// NominaOrchestrator orquesta el ciclo completo del documento soporte de pago
// de nómina electrónica DIAN:
//
//	CUNE → XML NominaIndividual → Firma XAdES-EPES → ZIP → Envío SOAP → Update DB
//
// Se ejecuta siempre en goroutine independiente (ProcessAsync) con su propio
// context.Background() + timeout 30 s, desacoplado del ciclo HTTP.
//
// Modos de operación (controlados por ElectronicPayrollConfig.AppEnv):
//   - "dev"  → Genera y firma el XML, NO envía al WS DIAN. Estado final: EXITOSO (mock).
//   - "test" → Envía al ambiente de habilitación vpfe-hab.dian.gov.co.
//   - "prod" → Envía al ambiente de producción vpfe.dian.gov.co.
type NominaOrchestrator struct {
	payrollRepo  repository.PayrollRepository
	employeeRepo repository.EmployeeRepository
	companyRepo  repository.CompanyRepository
	xmlBuilder   *infranomina.XMLBuilderService
	cune         *domnomina.CuneCalculatorService
	signer       pkgnomina.Signer
	submitter    infranomina.NominaSubmitter // cliente SOAP; nil en dev
	config       ElectronicPayrollConfig
}

// NewNominaOrchestrator construye el orquestador con todas sus dependencias.
// submitter puede ser nil: en ese caso el modo dev es el único que funciona.
func NewNominaOrchestrator(
	payrollRepo repository.PayrollRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	xmlBuilder *infranomina.XMLBuilderService,
	sig pkgnomina.Signer,
	submitter infranomina.NominaSubmitter,
	config ElectronicPayrollConfig,
) *NominaOrchestrator {
	return &NominaOrchestrator{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		xmlBuilder:   xmlBuilder,
		cune:         domnomina.NewCuneCalculatorService(),
		signer:       sig,
		submitter:    submitter,
		config:       config,
	}
}

// ProcessAsync dispara el procesamiento DIAN en una goroutine independiente.
// recordID es el ID de la nómina ya persistida en estado DRAFT; companyID es
// el tenant resuelto del actor que disparó la emisión.
func (o *NominaOrchestrator) ProcessAsync(recordID, companyID string) {
	go o.process(recordID, companyID)
}

// process es el núcleo síncrono del orquestador. Siempre termina actualizando
// document_status en la DB (EXITOSO o ERROR).
func (o *NominaOrchestrator) process(recordID, companyID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sc := access.Scope{CompanyID: companyID}

	// markError actualiza la nómina a ERROR y hace log del problema.
	markError := func(record *entity.PayrollRecord, step, msg string) {
		cune, number := "", ""
		if record != nil {
			cune, number = record.CUNE, record.DocumentNumber
		}
		if err := o.payrollRepo.UpdateDocument(ctx, recordID, cune, number, entity.NominaError, ""); err != nil {
			log.Printf("[NOMINA][%s] no se pudo persistir ERROR: %v", recordID, err)
		}
		log.Printf("[NOMINA][%s] ERROR en %s: %s", recordID, step, msg)
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 0. Re-fetch datos frescos (evita data races con el goroutine HTTP)
	// ═══════════════════════════════════════════════════════════════════════════
	record, err := o.payrollRepo.GetRecord(ctx, recordID, sc)
	if err != nil || record == nil {
		log.Printf("[NOMINA][%s] nómina no encontrada: %v", recordID, err)
		return
	}
	if record.DocumentStatus != entity.NominaDraft {
		log.Printf("[NOMINA][%s] estado %q inesperado (ya procesada?), saltando", recordID, record.DocumentStatus)
		return
	}

	company, err := o.companyRepo.GetByID(ctx, record.CompanyID)
	if err != nil || company == nil {
		markError(record, "fetch-company", fmt.Sprintf("empresa %s no encontrada: %v", record.CompanyID, err))
		return
	}

	employee, err := o.employeeRepo.GetByID(ctx, record.EmployeeID, false)
	if err != nil || employee == nil {
		markError(record, "fetch-employee", fmt.Sprintf("empleado %s no encontrado: %v", record.EmployeeID, err))
		return
	}

	adjustments, err := o.payrollRepo.ListAdjustments(ctx, recordID, record.CompanyID)
	if err != nil {
		markError(record, "fetch-adjustments", fmt.Sprintf("error obteniendo ajustes: %v", err))
		return
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 1. Asignar consecutivo del documento (prefijo + secuencia del tenant)
	// ═══════════════════════════════════════════════════════════════════════════
	seq, err := o.payrollRepo.NextDocumentNumber(ctx, record.CompanyID)
	if err != nil {
		markError(record, "consecutive", err.Error())
		return
	}
	prefix := o.config.Prefix
	if prefix == "" {
		prefix = "NE"
	}
	record.DocumentNumber = fmt.Sprintf("%s%08d", prefix, seq)

	// ═══════════════════════════════════════════════════════════════════════════
	// 2. Calcular CUNE (SHA-384, Anexo Técnico Nómina Electrónica 1.0)
	// ═══════════════════════════════════════════════════════════════════════════
	tipoAmb := o.config.Environment
	if tipoAmb == "" {
		tipoAmb = "2"
	}
	generatedAt := time.Now()
	cune, err := o.cune.Calculate(&domnomina.CuneParams{
		NumNIE:      record.DocumentNumber,
		FecNIE:      generatedAt.Format("2006-01-02"),
		HorNIE:      generatedAt.Format("15:04:05-07:00"),
		ValDev:      record.GrossPay,
		ValDed:      record.TotalDeductions,
		ValTol:      record.NetPay,
		NitNIE:      company.NIT,
		DocEmp:      employee.Document,
		TipoAmb:     tipoAmb,
		SoftwarePin: o.config.SoftwarePin,
	})
	if err != nil {
		markError(record, "cune", err.Error())
		return
	}
	record.CUNE = cune

	// ═══════════════════════════════════════════════════════════════════════════
	// 3. Construir XML NominaIndividual (incluye CUNE en el atributo raíz)
	// ═══════════════════════════════════════════════════════════════════════════
	xmlBytes, errXML := o.xmlBuilder.Build(&infranomina.NominaBuildContext{
		Record:       record,
		Employee:     employee,
		Company:      company,
		Adjustments:  adjustments,
		GeneratedAt:  generatedAt,
		SoftwareID:   o.config.SoftwareID,
		TipoAmbiente: tipoAmb,
	})
	if errXML != nil {
		markError(record, "xml-build", errXML.Error())
		return
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 4. Firma digital XAdES-EPES
	// ═══════════════════════════════════════════════════════════════════════════
	cert, errCert := loadCertificate(o.config)
	if errCert != nil {
		markError(record, "cert-load", errCert.Error())
		return
	}
	if len(cert.Certificate) == 0 || cert.PrivateKey == nil {
		markError(record, "cert-load", "certificado vacío: verifica NOMINA_CERT_PATH y NOMINA_CERT_PASSWORD")
		return
	}

	signedXMLBytes, errSign := o.signer.Sign(xmlBytes, cert)
	if errSign != nil {
		markError(record, "xml-sign", errSign.Error())
		return
	}

	// Actualizar en DB como SIGNED (XML firmado disponible para descarga)
	if err := o.payrollRepo.UpdateDocument(ctx, recordID, record.CUNE, record.DocumentNumber, entity.NominaSigned, string(signedXMLBytes)); err != nil {
		log.Printf("[NOMINA][%s] error persistiendo SIGNED: %v", recordID, err)
		return
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 5. Empaquetar en ZIP
	// ═══════════════════════════════════════════════════════════════════════════
	xmlName, zipName := infranomina.NominaFilenames(company, record)
	zipBytes, errZIP := infranomina.CompressXMLToZip(signedXMLBytes, xmlName)
	if errZIP != nil {
		markError(record, "zip", errZIP.Error())
		return
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 6. Envío condicional al WS DIAN
	// ═══════════════════════════════════════════════════════════════════════════
	appEnv := strings.ToLower(strings.TrimSpace(o.config.AppEnv))

	var finalStatus string

	switch appEnv {
	case infranomina.AppEnvDev, "":
		// ── Modo desarrollo: simular respuesta, no enviar ──────────────────
		log.Printf("[NOMINA][%s] [DEV] Simulando envío a DIAN — ZIP generado: %s (%d bytes)",
			recordID, zipName, len(zipBytes))
		finalStatus = entity.NominaOK

	case infranomina.AppEnvTest, infranomina.AppEnvProd:
		// ── Modo test/prod: llamada real al WS DIAN ────────────────────────
		if o.submitter == nil {
			markError(record, "soap", "NominaSubmitter no inyectado para entorno "+appEnv)
			return
		}
		result, soapErr := o.submitter.SubmitZip(ctx, zipBytes, zipName, appEnv)
		if soapErr != nil {
			markError(record, "soap", soapErr.Error())
			return
		}
		if result.Accepted {
			finalStatus = entity.NominaOK
			log.Printf("[NOMINA][%s] Aceptada por la DIAN → TrackID: %s", recordID, result.TrackID)
		} else {
			finalStatus = entity.NominaError
			log.Printf("[NOMINA][%s] Rechazada por la DIAN — Errores: %s", recordID, result.Errors)
		}

	default:
		markError(record, "config", fmt.Sprintf("NOMINA_APP_ENV desconocido: %q (usar dev|test|prod)", appEnv))
		return
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 7. Persistir resultado final en DB
	// ═══════════════════════════════════════════════════════════════════════════
	if err := o.payrollRepo.UpdateDocument(ctx, recordID, record.CUNE, record.DocumentNumber, finalStatus, string(signedXMLBytes)); err != nil {
		log.Printf("[NOMINA][%s] error persistiendo estado final %s: %v", recordID, finalStatus, err)
		return
	}

	log.Printf("[NOMINA][%s] procesada → %s (CUNE: %s)", recordID, finalStatus, record.CUNE)
}

// ── helpers privados ──────────────────────────────────────────────────────────

func loadCertificate(cfg ElectronicPayrollConfig) (tls.Certificate, error) {
	if cfg.CertPath == "" {
		return tls.Certificate{}, fmt.Errorf("NOMINA_CERT_PATH no configurado")
	}
	lower := strings.ToLower(cfg.CertPath)
	if strings.HasSuffix(lower, ".p12") || strings.HasSuffix(lower, ".pfx") {
		return signer.LoadFromP12(cfg.CertPath, cfg.CertPassword)
	}
	return infranomina.LoadCertFromPEM(cfg.CertPath, cfg.CertKeyPath)
}
