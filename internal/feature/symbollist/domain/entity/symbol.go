// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol is a listed instrument users can search for and add to a watchlist.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:100;not null"`
	Type      string    `gorm:"size:50;not null;default:'Common Stock'"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// CatalogItem is a Symbol marked with the caller's watchlist membership.
type CatalogItem struct {
	Symbol
	InWatchlist bool
}
