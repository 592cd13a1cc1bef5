package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies one logical collection of submitted records.
type Kind string

const (
	KindOrder   Kind = "order"
	KindDoctor  Kind = "doctor"
	KindUtility Kind = "utility"
)

// Status values. Only an external approver moves a record out of pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Priority values
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority normalizes a priority case-insensitively ("high" -> "High").
func ParsePriority(s string) (string, bool) {
	return matchFold(s, Priorities)
}

// Record holds the fields shared by every submitted document.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID   string    `gorm:"type:varchar(128);not null;index" json:"owner_id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}

// Request is a Record that carries a priority.
type Request struct {
	Record
	Priority string `gorm:"type:varchar(10);not null" json:"priority"`
}

func matchFold(s string, set []string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range set {
		if strings.EqualFold(s, v) {
			return v, true
		}
	}
	return "", false
}

// Document is implemented by every stored record kind.
type Document interface {
	RecordKind() Kind
	Meta() *Record
}

func (o *OrderRequest) RecordKind() Kind { return KindOrder }
func (o *OrderRequest) Meta() *Record { return &o.Record }
func (d *DoctorEntry) RecordKind() Kind { return KindDoctor }
func (d *DoctorEntry) Meta() *Record { return &d.Record }
func (u *UtilityRequest) RecordKind() Kind { return KindUtility }
func (u *UtilityRequest) Meta() *Record { return &u.Record }
