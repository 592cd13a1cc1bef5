package model

import "gorm.io/datatypes"

// Directory entry types
const (
	DoctorTypeDoctor    = "Doctor"
	DoctorTypeChemist   = "Chemist"
	DoctorTypeStockiest = "Stockiest"
)

var DoctorTypes = []string{DoctorTypeDoctor, DoctorTypeChemist, DoctorTypeStockiest}

func ParseDoctorType(s string) (string, bool) {
	return matchFold(s, DoctorTypes)
}

// DoctorEntry is a doctor, chemist or stockiest in the representative's
// directory. VisualAids order defines gallery position and may repeat.
type DoctorEntry struct {
	Record
	Name          string                      `gorm:"type:varchar(255);not null;index" json:"name"`
	Type          string                      `gorm:"type:varchar(20);not null" json:"type"`
	Speciality    string                      `gorm:"type:varchar(255)" json:"speciality"`
	SubmitterName string                      `gorm:"type:varchar(255);not null" json:"submitter_name"`
	Phone         string                      `gorm:"type:varchar(20);not null" json:"phone"`
	Email         string                      `gorm:"type:varchar(255)" json:"email"`
	Address       string                      `gorm:"type:text;not null" json:"address"`
	City          string                      `gorm:"type:varchar(100);not null" json:"city"`
	Remarks       string                      `gorm:"type:text" json:"remarks"`
	VisualAids    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"visual_aids"`
}

func (DoctorEntry) TableName() string { return "doctors" }
