package model

import "time"

// Machine represents a physical production unit that hosts sensors.
type Machine struct {
	ID          string    `gorm:"primaryKey;size:24" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Description string    `gorm:"size:1024" json:"description,omitempty"`
	CompanyName string    `gorm:"size:256" json:"companyName,omitempty"`
	CreateDate  time.Time `gorm:"not null" json:"createDate"`
	UpdateDate  time.Time `gorm:"not null" json:"updateDate"`
}
