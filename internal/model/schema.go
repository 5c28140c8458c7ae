package model

import "plant-monitor-backend/internal/schema"

// MachineEntity describes the writable surface of Machine. Identifier and
// the two date columns are server-assigned and deliberately absent.
var MachineEntity = schema.Entity{
	Name:  "machine",
	Table: "machines",
	Fields: []schema.Field{
		{Name: "name", Column: "name", Kind: schema.KindString, Required: true},
		{Name: "description", Column: "description", Kind: schema.KindString},
		{Name: "companyName", Column: "company_name", Kind: schema.KindString},
	},
	Touch: "update_date",
}

// SensorEntity describes the writable surface of Sensor.
var SensorEntity = schema.Entity{
	Name:  "sensor",
	Table: "sensors",
	Fields: []schema.Field{
		{Name: "name", Column: "name", Kind: schema.KindString, Required: true},
		{Name: "unitOfMeasurement", Column: "unit_of_measurement", Kind: schema.KindString, Required: true},
		{Name: "minValue", Column: "min_value", Kind: schema.KindNumber},
		{Name: "maxValue", Column: "max_value", Kind: schema.KindNumber},
		{Name: "machine", Column: "machine", Kind: schema.KindReference, Required: true},
	},
}

// SensorDataEntity describes the writable surface of SensorData. The owning
// sensor is referenced by the canonical field name "sensor".
var SensorDataEntity = schema.Entity{
	Name:  "sensor-data",
	Table: "sensor_data",
	Fields: []schema.Field{
		{Name: "value", Column: "value", Kind: schema.KindNumber, Required: true},
		{Name: "rawValue", Column: "raw_value", Kind: schema.KindNumber, Required: true},
		{Name: "sensor", Column: "sensor", Kind: schema.KindReference, Required: true},
	},
}

// Entities lists every entity description, in resource order.
func Entities() []schema.Entity {
	return []schema.Entity{MachineEntity, SensorEntity, SensorDataEntity}
}
