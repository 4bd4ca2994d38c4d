package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserRole controls what a user may manage
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleSales UserRole = "sales"
)

func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleSales
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !UserRole(str).IsValid() {
		return fmt.Errorf("unknown role %q", str)
	}
	*r = UserRole(str)
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	if value == nil {
		*r = UserRoleSales
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(string(v))
	}
	return nil
}
