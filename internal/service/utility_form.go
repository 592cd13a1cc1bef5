package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fieldrep/internal/model"
	"fieldrep/internal/selector"
)

// UtilityDraft is the unsaved state of the utility request form.
type UtilityDraft struct {
	Type        string `json:"type" validate:"required,utilitytype"`
	Priority    string `json:"priority" validate:"required,priority"`
	Description string `json:"description" validate:"required,max=2000"`
	Location    string `json:"location" validate:"required,max=255"`
	Remarks     string `json:"remarks" validate:"max=2000"`
}

type UtilityForm struct {
	formCore

	mu    sync.Mutex
	draft UtilityDraft
}

func NewUtilityForm(deps Deps) *UtilityForm {
	return &UtilityForm{
		formCore: newCore(model.KindUtility, deps),
		draft:    UtilityDraft{Priority: model.PriorityMedium},
	}
}

func (f *UtilityForm) Draft() UtilityDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *UtilityForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case "type":
		f.draft.Type = normalize(value, model.ParseUtilityType)
	case "priority":
		f.draft.Priority = normalize(value, model.ParsePriority)
	case "description":
		f.draft.Description = strings.TrimSpace(value)
	case "location":
		f.draft.Location = strings.TrimSpace(value)
	case "remarks":
		f.draft.Remarks = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (f *UtilityForm) Validate() ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validateStruct(f.draft)
}

func (f *UtilityForm) Submit(ctx context.Context) (*model.UtilityRequest, error) {
	done, err := f.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	f.mu.Lock()
	d := f.draft
	f.mu.Unlock()
	if errs := validateStruct(d); len(errs) > 0 {
		return nil, f.invalid(errs)
	}

	s, err := f.identity(ctx)
	if err != nil {
		return nil, err
	}

	req := &model.UtilityRequest{
		Type:        d.Type,
		Description: d.Description,
		Location:    d.Location,
		Remarks:     d.Remarks,
	}
	req.Record = f.newRecord(s)
	req.Priority = d.Priority
	if err := f.create(ctx, req); err != nil {
		return nil, err
	}

	f.Reset()
	f.refresh(ctx, s.OwnerID)
	return req, nil
}

func (f *UtilityForm) Reset() {
	f.mu.Lock()
	f.draft = UtilityDraft{Priority: model.PriorityMedium}
	f.mu.Unlock()
}

func (f *UtilityForm) TypeSelector(m selector.Measurer) *selector.Selector {
	return selector.New(model.UtilityTypes, m, f.fieldSetter("type"))
}

func (f *UtilityForm) PrioritySelector(m selector.Measurer) *selector.Selector {
	return selector.New(model.Priorities, m, f.fieldSetter("priority"))
}

func (f *UtilityForm) fieldSetter(name string) func(string) error {
	return func(v string) error { return f.SetField(name, v) }
}
