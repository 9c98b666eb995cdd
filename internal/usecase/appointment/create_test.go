package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/audit"
	domain "github.com/salonware/salon-manager/internal/domain/appointment"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/models"
)

// fakeRepo drives the use cases without a database. Fields default to a
// permissive salon so each test overrides only what it exercises.
type fakeRepo struct {
	salon        *models.Salon
	service      *models.Service
	serviceErr   error
	withinHours  bool
	conflictErr  error
	appointment  *models.Appointment
	workingHours *models.WorkingHours
	dayAps       []models.Appointment

	created *models.Appointment
	updated *models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon:       &models.Salon{ID: 1, Timezone: "UTC", MinAdvanceMinutes: 120},
		service:     &models.Service{ID: 3, DurationMin: 60},
		withinHours: true,
	}
}

func (r *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	return r.salon, nil
}

func (r *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	if r.serviceErr != nil {
		return nil, r.serviceErr
	}
	return r.service, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = 42
	r.created = ap
	return nil
}

func (r *fakeRepo) AssertNoTimeConflict(ctx context.Context, professionalID uint, start, end time.Time) error {
	return r.conflictErr
}

func (r *fakeRepo) GetAppointmentForSalon(ctx context.Context, appointmentID, salonID uint) (*models.Appointment, error) {
	if r.appointment == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return r.appointment, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.updated = ap
	return nil
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, professionalID uint, weekday int) (*models.WorkingHours, error) {
	if r.workingHours == nil {
		return nil, httperr.ErrBusiness("no_working_hours")
	}
	return r.workingHours, nil
}

func (r *fakeRepo) ListAppointmentsForDay(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.dayAps, nil
}

func (r *fakeRepo) IsWithinWorkingHours(ctx context.Context, professionalID uint, start, end time.Time) (bool, error) {
	return r.withinHours, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nil, zerolog.Nop())
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		SalonID:        1,
		UserID:         2,
		ProfessionalID: 4,
		ClientID:       5,
		ServiceID:      3,
		Start:          time.Now().UTC().Add(48 * time.Hour),
	}
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, testDispatcher())

	in := validInput()
	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, uint(42), ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, in.Start.Add(60*time.Minute), ap.EndTime, "end time derives from service duration")
	require.NotNil(t, repo.created)
}

func TestCreate_TooSoon(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, testDispatcher())

	in := validInput()
	in.Start = time.Now().UTC().Add(30 * time.Minute)

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
	assert.Nil(t, repo.created)
}

func TestCreate_ServiceNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.serviceErr = httperr.ErrBusiness("service_not_found")
	uc := NewCreateAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreate_OutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.withinHours = false
	uc := NewCreateAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	assert.Nil(t, repo.created)
}

func TestCreate_TimeConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.conflictErr = httperr.ErrBusiness("time_conflict")
	uc := NewCreateAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Nil(t, repo.created)
}

func TestCancel_SetsTerminalState(t *testing.T) {
	repo := newFakeRepo()
	repo.appointment = &models.Appointment{ID: 9, Status: string(domain.StatusScheduled)}
	uc := NewCancelAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), 1, 2, 9)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	require.NotNil(t, repo.updated)
}

func TestCancel_NotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 2, 9)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestComplete_AlreadyCancelled(t *testing.T) {
	repo := newFakeRepo()
	repo.appointment = &models.Appointment{ID: 9, Status: string(domain.StatusCancelled)}
	uc := NewCompleteAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 2, 9)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Nil(t, repo.updated)
}
