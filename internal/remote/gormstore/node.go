package gormstore

import "time"

// Node holds a JSON subtree. No stored node is a descendant of another, so
// every path resolves through at most one ancestor node or a set of
// descendant nodes.
type Node struct {
	Path      string    `gorm:"primaryKey;size:512"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

func (Node) TableName() string {
	return "store_nodes"
}
