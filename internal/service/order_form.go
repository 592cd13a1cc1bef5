package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fieldrep/internal/model"
	"fieldrep/internal/selector"

	"github.com/shopspring/decimal"
)

// OrderDraft is the unsaved state of the order form. Quantity stays a
// string until submit so partial input never fails.
type OrderDraft struct {
	Type         string `json:"type" validate:"required,ordertype"`
	Priority     string `json:"priority" validate:"required,priority"`
	ProductID    string `json:"productId" validate:"required"`
	Quantity     string `json:"quantity" validate:"required,posint"`
	HospitalName string `json:"hospitalName" validate:"max=255"`
	DoctorName   string `json:"doctorName" validate:"max=255"`
	Remarks      string `json:"remarks" validate:"max=2000"`
}

func newOrderDraft() OrderDraft {
	return OrderDraft{Priority: model.PriorityMedium}
}

// OrderForm is one order form session.
type OrderForm struct {
	formCore

	mu       sync.Mutex
	draft    OrderDraft
	products []model.Product // nil until LoadCatalog
}

func NewOrderForm(deps Deps) *OrderForm {
	return &OrderForm{formCore: newCore(model.KindOrder, deps), draft: newOrderDraft()}
}

// LoadCatalog reads the product catalog that backs the product picker.
func (f *OrderForm) LoadCatalog(ctx context.Context) ([]model.Product, error) {
	products, err := f.deps.Catalog.Products(ctx)
	if err != nil {
		f.log.WithError(err).Error("failed to load product catalog")
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	f.mu.Lock()
	f.products = products
	f.mu.Unlock()
	return products, nil
}

func (f *OrderForm) Draft() OrderDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetField updates one draft field. Nothing is stored.
func (f *OrderForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case "type":
		f.draft.Type = normalize(value, model.ParseOrderType)
	case "priority":
		f.draft.Priority = normalize(value, model.ParsePriority)
	case "productId":
		f.draft.ProductID = strings.TrimSpace(value)
	case "quantity":
		f.draft.Quantity = strings.TrimSpace(value)
	case "hospitalName":
		f.draft.HospitalName = strings.TrimSpace(value)
	case "doctorName":
		f.draft.DoctorName = strings.TrimSpace(value)
	case "remarks":
		f.draft.Remarks = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Validate checks the draft without side effects. The selected product
// must be in the loaded catalog; before LoadCatalog no product is valid.
func (f *OrderForm) Validate() ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *OrderForm) validateLocked() ValidationErrors {
	errs := validateStruct(f.draft)
	if _, bad := errs["productId"]; !bad {
		if f.products == nil {
			errs["productId"] = "Product catalog is not loaded"
		} else if _, ok := f.productLocked(f.draft.ProductID); !ok {
			errs["productId"] = "Product is not in the catalog"
		}
	}
	return errs
}

func (f *OrderForm) productLocked(id string) (model.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Total previews Price x Quantity for the current draft. It needs the
// catalog and a valid quantity.
func (f *OrderForm) Total() (decimal.Decimal, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.productLocked(f.draft.ProductID)
	if !ok {
		return decimal.Zero, false
	}
	qty, err := parseQuantity(f.draft.Quantity)
	if err != nil || qty <= 0 {
		return decimal.Zero, false
	}
	return p.Price.Mul(decimal.NewFromInt(int64(qty))), true
}

// Submit validates, snapshots the product, computes the derived fields
// and creates the order. On success the draft is cleared and list views
// are told to refresh; on any failure the draft is kept.
func (f *OrderForm) Submit(ctx context.Context) (*model.OrderRequest, error) {
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
	draft := f.draft
	product, _ := f.productLocked(draft.ProductID)
	f.mu.Unlock()

	s, err := f.identity(ctx)
	if err != nil {
		return nil, err
	}

	order := BuildOrder(draft, product)
	order.Record = f.newRecord(s)
	if err := f.create(ctx, order); err != nil {
		return nil, err
	}

	f.Reset()
	f.refresh(ctx, s.OwnerID)
	return order, nil
}

// BuildOrder snapshots product into a new order and computes the derived
// fields. The draft must already be valid.
func BuildOrder(d OrderDraft, product model.Product) *model.OrderRequest {
	qty, _ := parseQuantity(d.Quantity)
	order := &model.OrderRequest{
		Type:         d.Type,
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     qty,
		Price:        product.Price,
		PTS:          product.PTS,
		PTR:          product.PTR,
		TotalAmount:  product.Price.Mul(decimal.NewFromInt(int64(qty))),
		HospitalName: d.HospitalName,
		DoctorName:   d.DoctorName,
		Remarks:      d.Remarks,
	}
	order.Priority = d.Priority
	order.Summary = OrderSummary(order)
	return order
}

// Reset discards the draft (explicit cancel or after a successful submit).
func (f *OrderForm) Reset() {
	f.mu.Lock()
	f.draft = newOrderDraft()
	f.mu.Unlock()
}

func (f *OrderForm) TypeSelector(m selector.Measurer) *selector.Selector {
	return selector.New(model.OrderTypes, m, f.fieldSetter("type"))
}

func (f *OrderForm) PrioritySelector(m selector.Measurer) *selector.Selector {
	return selector.New(model.Priorities, m, f.fieldSetter("priority"))
}

// ProductSelector offers the loaded catalog's product IDs.
func (f *OrderForm) ProductSelector(m selector.Measurer) *selector.Selector {
	f.mu.Lock()
	ids := make([]string, 0, len(f.products))
	for _, p := range f.products {
		ids = append(ids, p.ID)
	}
	f.mu.Unlock()
	return selector.New(ids, m, f.fieldSetter("productId"))
}

func (f *OrderForm) fieldSetter(name string) func(string) error {
	return func(v string) error { return f.SetField(name, v) }
}

// normalize maps value onto its canonical spelling when it is a known
// option, otherwise keeps the raw input for validation to report.
func normalize(value string, parse func(string) (string, bool)) string {
	if v, ok := parse(value); ok {
		return v
	}
	return strings.TrimSpace(value)
}
