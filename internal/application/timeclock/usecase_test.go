package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// FAKES
// ═══════════════════════════════════════════════════════════════════════════

type fakeTimeEntryRepo struct {
	entries map[string]*entity.TimeEntry
	breaks  map[string]*entity.BreakEntry
}

func newFakeTimeEntryRepo() *fakeTimeEntryRepo {
	return &fakeTimeEntryRepo{
		entries: make(map[string]*entity.TimeEntry),
		breaks:  make(map[string]*entity.BreakEntry),
	}
}

func (f *fakeTimeEntryRepo) Create(_ context.Context, t *entity.TimeEntry) error {
	f.entries[t.ID] = t
	return nil
}

func (f *fakeTimeEntryRepo) GetByID(_ context.Context, id string, sc access.Scope) (*entity.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.CompanyID != sc.CompanyID {
		return nil, nil
	}
	if sc.EmployeeID != "" && e.EmployeeID != sc.EmployeeID {
		return nil, nil
	}
	return e, nil
}

func (f *fakeTimeEntryRepo) GetOpenByEmployee(_ context.Context, employeeID, companyID string) (*entity.TimeEntry, error) {
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.CompanyID == companyID && e.ClockOut == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeEntryRepo) Close(_ context.Context, entryID, companyID string, at time.Time) error {
	e, ok := f.entries[entryID]
	if !ok || e.CompanyID != companyID {
		return domain.ErrNotFound
	}
	e.ClockOut = &at
	return nil
}

func (f *fakeTimeEntryRepo) Update(_ context.Context, t *entity.TimeEntry, sc access.Scope) (bool, error) {
	e, ok := f.entries[t.ID]
	if !ok || e.CompanyID != sc.CompanyID {
		return false, nil
	}
	f.entries[t.ID] = t
	return true, nil
}

func (f *fakeTimeEntryRepo) List(_ context.Context, sc access.Scope, filter repository.TimeEntryFilter, _, _ int) ([]*entity.TimeEntry, error) {
	var out []*entity.TimeEntry
	for _, e := range f.entries {
		if e.CompanyID != sc.CompanyID {
			continue
		}
		if sc.EmployeeID != "" && e.EmployeeID != sc.EmployeeID {
			continue
		}
		if filter.EmployeeID != "" && e.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && e.ApprovalStatus != filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeTimeEntryRepo) BulkApprove(_ context.Context, sc access.Scope, from, to time.Time, approvedBy string) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.CompanyID != sc.CompanyID || e.ApprovalStatus != entity.ApprovalPending {
			continue
		}
		if e.ClockIn.Before(from) || e.ClockIn.After(to) {
			continue
		}
		e.ApprovalStatus = entity.ApprovalApproved
		e.ApprovedBy = &approvedBy
		n++
	}
	return n, nil
}

func (f *fakeTimeEntryRepo) StartBreak(_ context.Context, b *entity.BreakEntry) error {
	f.breaks[b.ID] = b
	return nil
}

func (f *fakeTimeEntryRepo) EndBreak(_ context.Context, breakID, companyID string, at time.Time) error {
	b, ok := f.breaks[breakID]
	if !ok || b.CompanyID != companyID {
		return domain.ErrNotFound
	}
	b.EndedAt = &at
	return nil
}

func (f *fakeTimeEntryRepo) GetOpenBreak(_ context.Context, timeEntryID, companyID string) (*entity.BreakEntry, error) {
	for _, b := range f.breaks {
		if b.TimeEntryID == timeEntryID && b.CompanyID == companyID && b.EndedAt == nil {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeEntryRepo) ListBreaks(_ context.Context, timeEntryID, companyID string) ([]*entity.BreakEntry, error) {
	var out []*entity.BreakEntry
	for _, b := range f.breaks {
		if b.TimeEntryID == timeEntryID && b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ repository.TimeEntryRepository = (*fakeTimeEntryRepo)(nil)

func testEmployee() *entity.Employee {
	return &entity.Employee{
		ID:        "emp-1",
		CompanyID: "co-1",
		Role:      entity.RoleEmployee,
		Status:    entity.EmployeeActive,
	}
}

func newTestUseCase() (*UseCase, *fakeTimeEntryRepo) {
	repo := newFakeTimeEntryRepo()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return NewUseCase(repo, log), repo
}

// ═══════════════════════════════════════════════════════════════════════════
// CLOCK IN / CLOCK OUT
// ═══════════════════════════════════════════════════════════════════════════

func TestClockIn_AbreTurnoPendiente(t *testing.T) {
	uc, _ := newTestUseCase()
	emp := testEmployee()

	resp, err := uc.ClockIn(context.Background(), emp, dto.ClockInRequest{Notes: "turno mañana"})

	require.NoError(t, err)
	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, entity.ApprovalPending, resp.ApprovalStatus)
	assert.Equal(t, entity.StatusClockedIn, resp.Status)
	assert.Nil(t, resp.ClockOut)
}

func TestClockIn_FallaConTurnoAbierto(t *testing.T) {
	uc, _ := newTestUseCase()
	emp := testEmployee()

	_, err := uc.ClockIn(context.Background(), emp, dto.ClockInRequest{})
	require.NoError(t, err)

	_, err = uc.ClockIn(context.Background(), emp, dto.ClockInRequest{})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
}

func TestClockOut_SinTurnoAbierto(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ClockOut(context.Background(), testEmployee())
	assert.ErrorIs(t, err, domain.ErrNoOpenShift)
}

func TestClockOut_CierraPausaAbierta(t *testing.T) {
	uc, repo := newTestUseCase()
	emp := testEmployee()

	_, err := uc.ClockIn(context.Background(), emp, dto.ClockInRequest{})
	require.NoError(t, err)
	_, err = uc.StartBreak(context.Background(), emp)
	require.NoError(t, err)

	resp, err := uc.ClockOut(context.Background(), emp)
	require.NoError(t, err)
	assert.NotNil(t, resp.ClockOut)
	assert.Equal(t, entity.StatusClockedOut, resp.Status)

	// La pausa debe haber quedado cerrada junto con el turno
	for _, b := range repo.breaks {
		assert.NotNil(t, b.EndedAt)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// PAUSAS
// ═══════════════════════════════════════════════════════════════════════════

func TestStartBreak_RequiereTurnoAbierto(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.StartBreak(context.Background(), testEmployee())
	assert.ErrorIs(t, err, domain.ErrNoOpenShift)
}

func TestStartBreak_FallaConPausaAbierta(t *testing.T) {
	uc, _ := newTestUseCase()
	emp := testEmployee()

	_, err := uc.ClockIn(context.Background(), emp, dto.ClockInRequest{})
	require.NoError(t, err)
	_, err = uc.StartBreak(context.Background(), emp)
	require.NoError(t, err)

	_, err = uc.StartBreak(context.Background(), emp)
	assert.ErrorIs(t, err, domain.ErrBreakAlreadyOpen)
}

func TestEndBreak_SinPausaAbierta(t *testing.T) {
	uc, _ := newTestUseCase()
	emp := testEmployee()

	_, err := uc.ClockIn(context.Background(), emp, dto.ClockInRequest{})
	require.NoError(t, err)

	_, err = uc.EndBreak(context.Background(), emp)
	assert.ErrorIs(t, err, domain.ErrNoOpenBreak)
}

func TestStatus_ReflejaPausa(t *testing.T) {
	uc, _ := newTestUseCase()
	emp := testEmployee()

	st, err := uc.Status(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClockedOut, st.Status)

	_, err = uc.ClockIn(context.Background(), emp, dto.ClockInRequest{})
	require.NoError(t, err)
	st, err = uc.Status(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClockedIn, st.Status)

	_, err = uc.StartBreak(context.Background(), emp)
	require.NoError(t, err)
	st, err = uc.Status(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOnBreak, st.Status)

	_, err = uc.EndBreak(context.Background(), emp)
	require.NoError(t, err)
	st, err = uc.Status(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClockedIn, st.Status)
}

// ═══════════════════════════════════════════════════════════════════════════
// APROBACIÓN MASIVA
// ═══════════════════════════════════════════════════════════════════════════

func TestBulkApprove_SoloPendientesYEsIdempotente(t *testing.T) {
	uc, repo := newTestUseCase()
	now := time.Now()

	// dos pendientes en rango, uno ya aprobado, uno fuera de rango
	repo.entries["a"] = &entity.TimeEntry{ID: "a", CompanyID: "co-1", EmployeeID: "e1", ClockIn: now, ApprovalStatus: entity.ApprovalPending}
	repo.entries["b"] = &entity.TimeEntry{ID: "b", CompanyID: "co-1", EmployeeID: "e2", ClockIn: now, ApprovalStatus: entity.ApprovalPending}
	repo.entries["c"] = &entity.TimeEntry{ID: "c", CompanyID: "co-1", EmployeeID: "e3", ClockIn: now, ApprovalStatus: entity.ApprovalApproved}
	repo.entries["d"] = &entity.TimeEntry{ID: "d", CompanyID: "co-1", EmployeeID: "e4", ClockIn: now.Add(-48 * time.Hour), ApprovalStatus: entity.ApprovalPending}

	sc := access.Scope{CompanyID: "co-1"}
	req := dto.BulkApproveRequest{From: now.Add(-time.Hour), To: now.Add(time.Hour)}

	resp, err := uc.BulkApprove(context.Background(), sc, "admin-1", req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Approved)

	// segunda pasada: nada pendiente en el rango
	resp, err = uc.BulkApprove(context.Background(), sc, "admin-1", req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Approved)
}

func TestBulkApprove_RangoInvalido(t *testing.T) {
	uc, _ := newTestUseCase()
	now := time.Now()

	_, err := uc.BulkApprove(context.Background(), access.Scope{CompanyID: "co-1"}, "admin-1",
		dto.BulkApproveRequest{From: now, To: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkApprove_NoTocaOtroTenant(t *testing.T) {
	uc, repo := newTestUseCase()
	now := time.Now()

	repo.entries["x"] = &entity.TimeEntry{ID: "x", CompanyID: "co-2", EmployeeID: "e9", ClockIn: now, ApprovalStatus: entity.ApprovalPending}

	resp, err := uc.BulkApprove(context.Background(), access.Scope{CompanyID: "co-1"}, "admin-1",
		dto.BulkApproveRequest{From: now.Add(-time.Hour), To: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Approved)
	assert.Equal(t, entity.ApprovalPending, repo.entries["x"].ApprovalStatus)
}

// ═══════════════════════════════════════════════════════════════════════════
// CORRECCIONES
// ═══════════════════════════════════════════════════════════════════════════

func TestUpdateEntry_FueraDeScopeRetornaNil(t *testing.T) {
	uc, repo := newTestUseCase()
	now := time.Now()
	repo.entries["x"] = &entity.TimeEntry{ID: "x", CompanyID: "co-2", EmployeeID: "e9", ClockIn: now}

	resp, err := uc.UpdateEntry(context.Background(), "x", access.Scope{CompanyID: "co-1"}, dto.UpdateTimeEntryRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestUpdateEntry_RechazaClockOutAnteriorAlClockIn(t *testing.T) {
	uc, repo := newTestUseCase()
	now := time.Now()
	repo.entries["x"] = &entity.TimeEntry{ID: "x", CompanyID: "co-1", EmployeeID: "e1", ClockIn: now}

	bad := now.Add(-time.Hour)
	_, err := uc.UpdateEntry(context.Background(), "x", access.Scope{CompanyID: "co-1"},
		dto.UpdateTimeEntryRequest{ClockOut: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
