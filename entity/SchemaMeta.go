package entity

import (
	"gorm.io/gorm"
)

// SchemaMeta versions the local store. On a version mismatch the cart and
// locally-held order tables are reset instead of resurrecting records written
// by an older, differently-shaped schema.
type SchemaMeta struct {
	gorm.Model
	Version int `json:"version"`
}
