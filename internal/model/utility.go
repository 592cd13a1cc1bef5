package model

// Utility request types
const (
	UtilityTypeVisualAid  = "Visual Aid"
	UtilityTypeSamples    = "Samples"
	UtilityTypeLiterature = "Literature"
	UtilityTypeGift       = "Gift Article"
	UtilityTypeStationery = "Stationery"
	UtilityTypeOther      = "Other"
)

var UtilityTypes = []string{
	UtilityTypeVisualAid,
	UtilityTypeSamples,
	UtilityTypeLiterature,
	UtilityTypeGift,
	UtilityTypeStationery,
	UtilityTypeOther,
}

func ParseUtilityType(s string) (string, bool) {
	return matchFold(s, UtilityTypes)
}

// UtilityRequest asks for field resources (samples, literature, ...).
type UtilityRequest struct {
	Request
	Type        string `gorm:"type:varchar(30);not null" json:"type"`
	Description string `gorm:"type:text;not null" json:"description"`
	Location    string `gorm:"type:varchar(255);not null" json:"location"`
	Remarks     string `gorm:"type:text" json:"remarks"`
}

func (UtilityRequest) TableName() string { return "utility_requests" }
