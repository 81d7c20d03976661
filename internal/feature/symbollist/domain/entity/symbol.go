// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents a ticker offered by the dashboard's search box.
// It contains the code sent to the quote provider, a display name,
// the listing market, and display ordering.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:32;not null;uniqueIndex" yaml:"code"`
	Name      string    `gorm:"size:255;not null" yaml:"name"`
	Market    string    `gorm:"size:100;not null" yaml:"market"`
	IsActive  bool      `gorm:"not null;default:true" yaml:"-"`
	SortKey   int       `gorm:"not null;default:0" yaml:"sort_key"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" yaml:"-"`
}

// TableName pins the catalog table name.
func (Symbol) TableName() string {
	return "symbols"
}
