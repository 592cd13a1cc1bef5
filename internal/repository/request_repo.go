package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fieldrep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository reads and creates owner-scoped records. Queries never
// cross owners and no record is updated or deleted through it.
type RequestRepository interface {
	FetchOrders(ctx context.Context, ownerID string) ([]model.OrderRequest, error)
	FetchDoctors(ctx context.Context, ownerID string) ([]model.DoctorEntry, error)
	FetchUtilities(ctx context.Context, ownerID string) ([]model.UtilityRequest, error)
	FindDoctor(ctx context.Context, ownerID string, id uuid.UUID) (*model.DoctorEntry, error)
	// Create stores doc and fills in its store-assigned ID.
	Create(ctx context.Context, doc model.Document) error
}

type requestRepository struct {
	db        *gorm.DB
	auditRepo AuditRepository
	txManager TransactionManager
}

func NewRequestRepository(db *gorm.DB, auditRepo AuditRepository, txManager TransactionManager) RequestRepository {
	return &requestRepository{db: db, auditRepo: auditRepo, txManager: txManager}
}

func (r *requestRepository) ownerQuery(ctx context.Context, kind model.Kind, ownerID string) *gorm.DB {
	return GetDB(ctx, r.db).Where("owner_id = ?", ownerID).Order(OrderingFor(kind))
}

func (r *requestRepository) FetchOrders(ctx context.Context, ownerID string) ([]model.OrderRequest, error) {
	var orders []model.OrderRequest
	if err := r.ownerQuery(ctx, model.KindOrder, ownerID).Find(&orders).Error; err != nil {
		return nil, remoteErr("fetch", model.KindOrder, err)
	}
	return orders, nil
}

func (r *requestRepository) FetchDoctors(ctx context.Context, ownerID string) ([]model.DoctorEntry, error) {
	var doctors []model.DoctorEntry
	if err := r.ownerQuery(ctx, model.KindDoctor, ownerID).Find(&doctors).Error; err != nil {
		return nil, remoteErr("fetch", model.KindDoctor, err)
	}
	return doctors, nil
}

func (r *requestRepository) FetchUtilities(ctx context.Context, ownerID string) ([]model.UtilityRequest, error) {
	var utilities []model.UtilityRequest
	if err := r.ownerQuery(ctx, model.KindUtility, ownerID).Find(&utilities).Error; err != nil {
		return nil, remoteErr("fetch", model.KindUtility, err)
	}
	return utilities, nil
}

func (r *requestRepository) FindDoctor(ctx context.Context, ownerID string, id uuid.UUID) (*model.DoctorEntry, error) {
	var doctor model.DoctorEntry
	err := GetDB(ctx, r.db).Where("owner_id = ? AND id = ?", ownerID, id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, remoteErr("fetch", model.KindDoctor, err)
	}
	return &doctor, nil
}

func (r *requestRepository) Create(ctx context.Context, doc model.Document) error {
	meta := doc.Meta()
	if meta.OwnerID == "" {
		return ErrOwnerRequired
	}
	kind := doc.RecordKind()

	err := r.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := GetDB(txCtx, r.db).Create(doc).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", kind, err)
		}

		audit, err := auditEntry(doc)
		if err != nil {
			return err
		}
		if err := r.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return remoteErr("create", kind, err)
	}
	return nil
}

// auditEntry records the submitted document as the audit details.
func auditEntry(doc model.Document) (*model.AuditLog, error) {
	details, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit details: %w", err)
	}
	meta := doc.Meta()
	return &model.AuditLog{
		OwnerID:    meta.OwnerID,
		Action:     submitAction(doc.RecordKind()),
		EntityID:   meta.ID.String(),
		EntityName: entityName(doc),
		Details:    string(details),
	}, nil
}
