package model

import "time"

// Sensor represents a measuring device attached to a machine.
//
// Machine holds the identifier of the owning Machine document. Only the
// identifier format is checked at write time; a dangling reference is
// accepted, and deleting a machine does not delete its sensors.
type Sensor struct {
	ID                string    `gorm:"primaryKey;size:24" json:"id"`
	Name              string    `gorm:"size:256;not null" json:"name"`
	UnitOfMeasurement string    `gorm:"size:64;not null" json:"unitOfMeasurement"`
	MinValue          *float64  `json:"minValue,omitempty"`
	MaxValue          *float64  `json:"maxValue,omitempty"`
	Machine           string    `gorm:"column:machine;size:24;not null;index" json:"machine"`
	CreateDate        time.Time `gorm:"not null" json:"createDate"`
}
