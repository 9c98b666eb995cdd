package form

import (
	"time"

	"github.com/salonware/salon-manager/internal/models"
	"github.com/salonware/salon-manager/internal/money"
)

// Per-entity forms. Each one mirrors what the user types: currency as
// decimal strings, dates as "2006-01-02". Model() validates and converts.

// --------- Client ---------

type ClientForm struct {
	ID     uint
	Name   string `validate:"required,max=100"`
	Phone  string `validate:"max=20"`
	Email  string `validate:"omitempty,email,max=100"`
	Notes  string `validate:"max=255"`
	Gender string `validate:"omitempty,oneof=female male other"`
}

func (f ClientForm) RecordID() uint { return f.ID }

func (f ClientForm) Model() (models.Client, error) {
	if err := Check(f); err != nil {
		return models.Client{}, err
	}

	m := models.Client{
		Name:  f.Name,
		Phone: f.Phone,
		Email: f.Email,
	}
	if f.Notes != "" {
		m.Notes = &f.Notes
	}
	if f.Gender != "" {
		m.Gender = &f.Gender
	}
	return m, nil
}

func ClientFormFrom(m models.Client) ClientForm {
	f := ClientForm{
		ID:    m.ID,
		Name:  m.Name,
		Phone: m.Phone,
		Email: m.Email,
	}
	if m.Notes != nil {
		f.Notes = *m.Notes
	}
	if m.Gender != nil {
		f.Gender = *m.Gender
	}
	return f
}

// --------- Product ---------

type ProductForm struct {
	ID          uint
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=255"`
	Price       string `validate:"required"` // major units, e.g. "49.90"
	StockQty    int    `validate:"min=0"`
	Active      bool
}

func (f ProductForm) RecordID() uint { return f.ID }

func (f ProductForm) Model() (models.Product, error) {
	if err := Check(f); err != nil {
		return models.Product{}, err
	}

	cents, err := money.ParseMajor(f.Price)
	if err != nil {
		return models.Product{}, FieldErrors{{
			Field:   "price",
			Rule:    "currency",
			Message: err.Error(),
		}}
	}
	if cents < 0 {
		return models.Product{}, FieldErrors{{
			Field:   "price",
			Rule:    "min",
			Message: "price cannot be negative",
		}}
	}

	return models.Product{
		Name:        f.Name,
		Description: f.Description,
		PriceCents:  cents,
		StockQty:    f.StockQty,
		Active:      f.Active,
	}, nil
}

func ProductFormFrom(m models.Product) ProductForm {
	return ProductForm{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       money.FormatMinor(m.PriceCents),
		StockQty:    m.StockQty,
		Active:      m.Active,
	}
}

// --------- Service ---------

type ServiceForm struct {
	ID          uint
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=255"`
	Price       string `validate:"required"`
	DurationMin int    `validate:"required,min=1"`
	Category    string `validate:"max=50"`
	Active      bool
}

func (f ServiceForm) RecordID() uint { return f.ID }

func (f ServiceForm) Model() (models.Service, error) {
	if err := Check(f); err != nil {
		return models.Service{}, err
	}

	cents, err := money.ParseMajor(f.Price)
	if err != nil {
		return models.Service{}, FieldErrors{{
			Field:   "price",
			Rule:    "currency",
			Message: err.Error(),
		}}
	}
	if cents < 0 {
		return models.Service{}, FieldErrors{{
			Field:   "price",
			Rule:    "min",
			Message: "price cannot be negative",
		}}
	}

	return models.Service{
		Name:        f.Name,
		Description: f.Description,
		PriceCents:  cents,
		DurationMin: f.DurationMin,
		Category:    f.Category,
		Active:      f.Active,
	}, nil
}

func ServiceFormFrom(m models.Service) ServiceForm {
	return ServiceForm{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       money.FormatMinor(m.PriceCents),
		DurationMin: m.DurationMin,
		Category:    m.Category,
		Active:      m.Active,
	}
}

// --------- Professional ---------

type ProfessionalForm struct {
	ID        uint
	Name      string `validate:"required,max=100"`
	Email     string `validate:"omitempty,email,max=100"`
	Phone     string `validate:"max=20"`
	Specialty string `validate:"max=50"`
	Active    bool
}

func (f ProfessionalForm) RecordID() uint { return f.ID }

func (f ProfessionalForm) Model() (models.Professional, error) {
	if err := Check(f); err != nil {
		return models.Professional{}, err
	}
	return models.Professional{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Specialty: f.Specialty,
		Active:    f.Active,
	}, nil
}

func ProfessionalFormFrom(m models.Professional) ProfessionalForm {
	return ProfessionalForm{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Specialty: m.Specialty,
		Active:    m.Active,
	}
}

// --------- Appointment ---------

type AppointmentForm struct {
	ID             uint
	ClientID       uint   `validate:"required"`
	ProfessionalID uint   `validate:"required"`
	ServiceID      uint   `validate:"required"`
	Date           string `validate:"required,datetime=2006-01-02"`
	Time           string `validate:"required,datetime=15:04"`
	Notes          string `validate:"max=255"`
}

func (f AppointmentForm) RecordID() uint { return f.ID }

// Model leaves EndTime zero: the server derives it from the service
// duration and is the sole source of truth for computed fields.
func (f AppointmentForm) Model() (models.Appointment, error) {
	if err := Check(f); err != nil {
		return models.Appointment{}, err
	}

	start, err := time.Parse("2006-01-02 15:04", f.Date+" "+f.Time)
	if err != nil {
		return models.Appointment{}, FieldErrors{{
			Field:   "date",
			Rule:    "datetime",
			Message: "invalid date or time",
		}}
	}

	m := models.Appointment{
		ClientID:       f.ClientID,
		ProfessionalID: f.ProfessionalID,
		ServiceID:      f.ServiceID,
		StartTime:      start,
	}
	if f.Notes != "" {
		m.Notes = &f.Notes
	}
	return m, nil
}

func AppointmentFormFrom(m models.Appointment) AppointmentForm {
	f := AppointmentForm{
		ID:             m.ID,
		ClientID:       m.ClientID,
		ProfessionalID: m.ProfessionalID,
		ServiceID:      m.ServiceID,
		Date:           m.StartTime.Format("2006-01-02"),
		Time:           m.StartTime.Format("15:04"),
	}
	if m.Notes != nil {
		f.Notes = *m.Notes
	}
	return f
}

// --------- Financial entry ---------

type FinancialEntryForm struct {
	ID          uint
	Description string `validate:"required,max=255"`
	Amount      string `validate:"required"`
	Kind        string `validate:"required,oneof=income expense"`
	Status      string `validate:"omitempty,oneof=pending paid"`
	OccurredAt  string `validate:"required,datetime=2006-01-02"`
}

func (f FinancialEntryForm) RecordID() uint { return f.ID }

func (f FinancialEntryForm) Model() (models.FinancialEntry, error) {
	if err := Check(f); err != nil {
		return models.FinancialEntry{}, err
	}

	cents, err := money.ParseMajor(f.Amount)
	if err != nil {
		return models.FinancialEntry{}, FieldErrors{{
			Field:   "amount",
			Rule:    "currency",
			Message: err.Error(),
		}}
	}

	occurred, err := time.Parse("2006-01-02", f.OccurredAt)
	if err != nil {
		return models.FinancialEntry{}, FieldErrors{{
			Field:   "occurred_at",
			Rule:    "datetime",
			Message: "invalid date",
		}}
	}

	status := f.Status
	if status == "" {
		status = "pending"
	}

	return models.FinancialEntry{
		Description: f.Description,
		AmountCents: cents,
		Kind:        f.Kind,
		Status:      status,
		OccurredAt:  occurred,
	}, nil
}

func FinancialEntryFormFrom(m models.FinancialEntry) FinancialEntryForm {
	return FinancialEntryForm{
		ID:          m.ID,
		Description: m.Description,
		Amount:      money.FormatMinor(m.AmountCents),
		Kind:        m.Kind,
		Status:      m.Status,
		OccurredAt:  m.OccurredAt.Format("2006-01-02"),
	}
}
