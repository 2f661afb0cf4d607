package models

import (
	"database/sql/driver"
	"fmt"
)

// YesNo is the Yes/No enum used for the shipping bill (LEO) flag. The
// database column is a boolean; the API speaks the literal values.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// Scan implements sql.Scanner, mapping the stored boolean back to Yes/No.
func (y *YesNo) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*y = No
	case bool:
		if v {
			*y = Yes
		} else {
			*y = No
		}
	case string:
		// Some drivers return booleans as "true"/"t".
		if v == "true" || v == "t" {
			*y = Yes
		} else {
			*y = No
		}
	default:
		return fmt.Errorf("unsupported shipping bill value: %v", value)
	}
	return nil
}

// Value implements driver.Valuer, storing Yes as true.
func (y YesNo) Value() (driver.Value, error) {
	return y == Yes, nil
}
