package models

import "gorm.io/datatypes"

// StringList is an ordered list of stored attachment object names, kept in a
// JSONB column. Insertion order is the display order.
type StringList = datatypes.JSONSlice[string]
