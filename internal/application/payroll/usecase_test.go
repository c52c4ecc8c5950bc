package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// ═══════════════════════════════════════════════════════════════════════════
// FAKES
// ═══════════════════════════════════════════════════════════════════════════

// fakePayrollRepo re-suma los totales desde las filas de detalle igual que la
// implementación SQL: RecomputeTotals nunca incrementa, siempre re-deriva.
type fakePayrollRepo struct {
	records     map[string]*entity.PayrollRecord
	adjustments []*entity.PayrollAdjustment
	seq         int64
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]*entity.PayrollRecord)}
}

func (f *fakePayrollRepo) CreateRecord(_ context.Context, r *entity.PayrollRecord) error {
	f.records[r.ID] = r
	return nil
}

func (f *fakePayrollRepo) GetRecord(_ context.Context, id string, sc access.Scope) (*entity.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != sc.CompanyID {
		return nil, nil
	}
	if sc.EmployeeID != "" && r.EmployeeID != sc.EmployeeID {
		return nil, nil
	}
	return r, nil
}

func (f *fakePayrollRepo) ListRecords(_ context.Context, sc access.Scope, _, _ *time.Time, _, _ int) ([]*entity.PayrollRecord, error) {
	var out []*entity.PayrollRecord
	for _, r := range f.records {
		if r.CompanyID == sc.CompanyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) AddAdjustment(_ context.Context, a *entity.PayrollAdjustment) error {
	f.adjustments = append(f.adjustments, a)
	return nil
}

func (f *fakePayrollRepo) RecomputeTotals(_ context.Context, recordID, companyID string) error {
	r, ok := f.records[recordID]
	if !ok || r.CompanyID != companyID {
		return domain.ErrNotFound
	}
	bonuses, deductions := decimal.Zero, decimal.Zero
	for _, a := range f.adjustments {
		if a.PayrollRecordID != recordID {
			continue
		}
		switch a.Kind {
		case entity.AdjustmentBonus:
			bonuses = bonuses.Add(a.Amount)
		case entity.AdjustmentDeduction:
			deductions = deductions.Add(a.Amount)
		}
	}
	r.GrossPay = r.BasePay.Add(bonuses)
	r.TotalDeductions = deductions
	r.NetPay = r.GrossPay.Sub(deductions)
	return nil
}

func (f *fakePayrollRepo) ListAdjustments(_ context.Context, recordID, companyID string) ([]*entity.PayrollAdjustment, error) {
	var out []*entity.PayrollAdjustment
	for _, a := range f.adjustments {
		if a.PayrollRecordID == recordID && a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) NextDocumentNumber(_ context.Context, _ string) (int64, error) {
	f.seq++
	return f.seq, nil
}

func (f *fakePayrollRepo) UpdateDocument(_ context.Context, recordID, cune, number, status, signedXML string) error {
	r, ok := f.records[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	r.CUNE, r.DocumentNumber, r.DocumentStatus, r.XMLSigned = cune, number, status, signedXML
	return nil
}

var _ repository.PayrollRepository = (*fakePayrollRepo)(nil)

// fakeTxRunner pasa el mismo repo: el fake no distingue tx de no-tx.
type fakeTxRunner struct{ repo repository.PayrollRepository }

func (f *fakeTxRunner) RunPayroll(ctx context.Context, fn func(repository.PayrollRepository) error) error {
	return fn(f.repo)
}

type fakeEmployeeRepo struct{ byID map[string]*entity.Employee }

func (f *fakeEmployeeRepo) Create(context.Context, *entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, activeOnly bool) (*entity.Employee, error) {
	e, ok := f.byID[id]
	if !ok || (activeOnly && !e.Active()) {
		return nil, nil
	}
	return e, nil
}
func (f *fakeEmployeeRepo) GetByCode(context.Context, string, bool) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) GetByEmailAndCompany(context.Context, string, string) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) GetByEmail(context.Context, string) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(context.Context, *entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) Deactivate(context.Context, string, string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) List(context.Context, access.Scope, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) ResolveTenant(context.Context, string) (*access.Tenant, error) {
	return nil, nil
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

func setupPayroll(t *testing.T) (*UseCase, *fakePayrollRepo, string) {
	t.Helper()
	repo := newFakePayrollRepo()
	employees := &fakeEmployeeRepo{byID: map[string]*entity.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "co-1", Status: entity.EmployeeActive, Document: "1018456789"},
	}}
	uc := NewUseCase(repo, employees, &fakeTxRunner{repo: repo})

	resp, err := uc.CreateRecord(context.Background(), "co-1", dto.CreatePayrollRecordRequest{
		EmployeeID:  "emp-1",
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		BasePay:     "1000.00",
	})
	require.NoError(t, err)
	return uc, repo, resp.ID
}

// ═══════════════════════════════════════════════════════════════════════════
// TOTALES DERIVADOS
// ═══════════════════════════════════════════════════════════════════════════

func TestCreateRecord_TotalesInicialesDesdeBase(t *testing.T) {
	uc, _, id := setupPayroll(t)

	resp, err := uc.GetRecord(context.Background(), id, access.Scope{CompanyID: "co-1"})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", resp.BasePay)
	assert.Equal(t, "1000.00", resp.GrossPay)
	assert.Equal(t, "0.00", resp.TotalDeductions)
	assert.Equal(t, "1000.00", resp.NetPay)
	assert.Equal(t, entity.NominaDraft, resp.DocumentStatus)
}

func TestAddBonus_RecalculaDesdeElDetalle(t *testing.T) {
	uc, _, id := setupPayroll(t)
	sc := access.Scope{CompanyID: "co-1"}

	resp, err := uc.AddBonus(context.Background(), id, sc, "admin-1", dto.AddAdjustmentRequest{
		Concept: "Bono de desempeño",
		Amount:  "100.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "1100.00", resp.GrossPay)
	assert.Equal(t, "1100.00", resp.NetPay)

	resp, err = uc.AddDeduction(context.Background(), id, sc, "admin-1", dto.AddAdjustmentRequest{
		Concept: "Aporte salud",
		Amount:  "50.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "1100.00", resp.GrossPay)
	assert.Equal(t, "50.00", resp.TotalDeductions)
	assert.Equal(t, "1050.00", resp.NetPay)
}

func TestAddAdjustment_MontoInvalido(t *testing.T) {
	uc, _, id := setupPayroll(t)
	sc := access.Scope{CompanyID: "co-1"}

	for _, amount := range []string{"", "abc", "-10", "0"} {
		_, err := uc.AddBonus(context.Background(), id, sc, "admin-1", dto.AddAdjustmentRequest{
			Concept: "x", Amount: amount,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "amount %q", amount)
	}
}

func TestAddAdjustment_FueraDeScope(t *testing.T) {
	uc, _, id := setupPayroll(t)

	_, err := uc.AddBonus(context.Background(), id, access.Scope{CompanyID: "co-2"}, "admin-2",
		dto.AddAdjustmentRequest{Concept: "x", Amount: "10.00"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRecord_EmpleadoInactivoODeOtroTenant(t *testing.T) {
	repo := newFakePayrollRepo()
	employees := &fakeEmployeeRepo{byID: map[string]*entity.Employee{
		"emp-2": {ID: "emp-2", CompanyID: "co-1", Status: entity.EmployeeInactive},
		"emp-3": {ID: "emp-3", CompanyID: "co-9", Status: entity.EmployeeActive},
	}}
	uc := NewUseCase(repo, employees, &fakeTxRunner{repo: repo})

	base := dto.CreatePayrollRecordRequest{
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		BasePay:     "1000.00",
	}

	base.EmployeeID = "emp-2"
	_, err := uc.CreateRecord(context.Background(), "co-1", base)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	base.EmployeeID = "emp-3"
	_, err = uc.CreateRecord(context.Background(), "co-1", base)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestListAdjustments_DetalleCompleto(t *testing.T) {
	uc, _, id := setupPayroll(t)
	sc := access.Scope{CompanyID: "co-1"}

	_, err := uc.AddBonus(context.Background(), id, sc, "admin-1", dto.AddAdjustmentRequest{Concept: "Bono", Amount: "100.00"})
	require.NoError(t, err)
	_, err = uc.AddDeduction(context.Background(), id, sc, "admin-1", dto.AddAdjustmentRequest{Concept: "Salud", Amount: "40.00"})
	require.NoError(t, err)

	list, err := uc.ListAdjustments(context.Background(), id, sc)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
