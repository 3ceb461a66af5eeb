package models

import "time"

// Coordinates is a latitude/longitude pair from the static city table.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation is a single current-weather reading from the upstream provider,
// already normalized (weather code decoded, humidity defaulted).
type Observation struct {
	City          string      `json:"city"`
	Temperature   float64     `json:"temperature"`
	Humidity      float64     `json:"humidity"`
	Description   string      `json:"description"`
	WindSpeed     float64     `json:"windspeed"`
	WindDirection float64     `json:"winddirection"`
	WeatherCode   int         `json:"weathercode"`
	Coordinates   Coordinates `json:"coordinates"`
}

// WeatherRecord is one persisted lookup. Rows are append-only: ID and
// Timestamp are assigned at insert time and never change afterwards.
type WeatherRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	City          string    `gorm:"index" json:"city"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Description   string    `json:"description"`
	WindSpeed     float64   `gorm:"column:windspeed" json:"windspeed"`
	WindDirection float64   `gorm:"column:winddirection" json:"winddirection"`
	WeatherCode   int       `gorm:"column:weathercode" json:"weathercode"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
}

// TableName keeps the table name the deployment schema expects.
func (WeatherRecord) TableName() string {
	return "weather_requests"
}
