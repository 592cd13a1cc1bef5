package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"fieldrep/internal/model"
	"fieldrep/internal/selector"
)

// DoctorDraft is the unsaved state of the directory entry form.
type DoctorDraft struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Type          string   `json:"type" validate:"required,doctortype"`
	Speciality    string   `json:"speciality" validate:"required_if=Type Doctor,max=255"`
	SubmitterName string   `json:"submitterName" validate:"required,max=255"`
	Phone         string   `json:"phone" validate:"required"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	Remarks       string   `json:"remarks" validate:"max=2000"`
	VisualAids    []string `json:"visualAids" validate:"dive,required"`
}

// DoctorForm is one directory entry form session.
type DoctorForm struct {
	formCore

	mu      sync.Mutex
	draft   DoctorDraft
	located bool
	cities  []string // nil after LoadLocations: any city accepted
}

func NewDoctorForm(deps Deps) *DoctorForm {
	return &DoctorForm{formCore: newCore(model.KindDoctor, deps)}
}

// LoadLocations resolves the city set of the current session's
// headquarters for the city picker.
func (f *DoctorForm) LoadLocations(ctx context.Context) ([]string, error) {
	s, err := f.identity(ctx)
	if err != nil {
		return nil, err
	}
	cities := model.LocationsFor(s.Headquarters)
	f.mu.Lock()
	f.cities = cities
	f.located = true
	f.mu.Unlock()
	return cities, nil
}

func (f *DoctorForm) Draft() DoctorDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.VisualAids = slices.Clone(f.draft.VisualAids)
	return d
}

func (f *DoctorForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case "name":
		f.draft.Name = strings.TrimSpace(value)
	case "type":
		f.draft.Type = normalize(value, model.ParseDoctorType)
		if f.draft.Type != model.DoctorTypeDoctor {
			f.draft.Speciality = ""
		}
	case "speciality":
		f.draft.Speciality = strings.TrimSpace(value)
	case "submitterName":
		f.draft.SubmitterName = strings.TrimSpace(value)
	case "phone":
		f.draft.Phone = strings.TrimSpace(value)
	case "email":
		f.draft.Email = strings.TrimSpace(value)
	case "address":
		f.draft.Address = strings.TrimSpace(value)
	case "city":
		f.draft.City = strings.TrimSpace(value)
	case "remarks":
		f.draft.Remarks = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// AddVisualAid appends an image to the entry's gallery. Order is kept and
// the same image may appear more than once.
func (f *DoctorForm) AddVisualAid(url string) {
	f.mu.Lock()
	f.draft.VisualAids = append(f.draft.VisualAids, strings.TrimSpace(url))
	f.mu.Unlock()
}

// Validate checks the draft without side effects. The city is checked
// against the headquarters resolved by LoadLocations, which must run first.
func (f *DoctorForm) Validate() ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *DoctorForm) validateLocked() ValidationErrors {
	errs := validateStruct(f.draft)
	if f.draft.Type != model.DoctorTypeDoctor && f.draft.Speciality != "" {
		errs["speciality"] = "Speciality only applies to doctors"
	}
	if _, bad := errs["city"]; !bad {
		switch {
		case !f.located:
			errs["city"] = "Locations are not loaded"
		case f.cities != nil && !slices.Contains(f.cities, f.draft.City):
			errs["city"] = "City is not covered by your headquarters"
		}
	}
	return errs
}

// Submit creates the directory entry. See OrderForm.Submit for the
// failure contract.
func (f *DoctorForm) Submit(ctx context.Context) (*model.DoctorEntry, error) {
	done, err := f.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	f.mu.Lock()
	if errs := f.validateLocked(); len(errs) > 0 {
		f.mu.Unlock()
		return nil, f.invalid(errs)
	}
	d := f.draft
	f.mu.Unlock()

	s, err := f.identity(ctx)
	if err != nil {
		return nil, err
	}

	entry := &model.DoctorEntry{
		Record:        f.newRecord(s),
		Name:          d.Name,
		Type:          d.Type,
		Speciality:    d.Speciality,
		SubmitterName: d.SubmitterName,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		City:          d.City,
		Remarks:       d.Remarks,
		VisualAids:    slices.Clone(d.VisualAids),
	}
	if err := f.create(ctx, entry); err != nil {
		return nil, err
	}

	f.Reset()
	f.refresh(ctx, s.OwnerID)
	return entry, nil
}

func (f *DoctorForm) Reset() {
	f.mu.Lock()
	f.draft = DoctorDraft{}
	f.mu.Unlock()
}

func (f *DoctorForm) TypeSelector(m selector.Measurer) *selector.Selector {
	return selector.New(model.DoctorTypes, m, f.fieldSetter("type"))
}

// CitySelector offers the cities loaded by LoadLocations.
func (f *DoctorForm) CitySelector(m selector.Measurer) *selector.Selector {
	f.mu.Lock()
	cities := slices.Clone(f.cities)
	f.mu.Unlock()
	return selector.New(cities, m, f.fieldSetter("city"))
}

func (f *DoctorForm) fieldSetter(name string) func(string) error {
	return func(v string) error { return f.SetField(name, v) }
}
