package model

import "time"

// SensorData is a single timestamped measurement produced by a sensor.
// Value is the calibrated measurement, RawValue the uncalibrated one.
type SensorData struct {
	ID       string    `gorm:"primaryKey;size:24" json:"id"`
	Value    float64   `gorm:"not null" json:"value"`
	RawValue float64   `gorm:"not null" json:"rawValue"`
	Date     time.Time `gorm:"not null" json:"date"`
	Sensor   string    `gorm:"column:sensor;size:24;not null;index" json:"sensor"`
}

func (SensorData) TableName() string {
	return "sensor_data"
}
