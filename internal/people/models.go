package people

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// IntList stores a slice of ids as a JSON text column so the model stays
// portable across sqlite and postgres.
type IntList []int

var _ driver.Valuer = (IntList)(nil)

// Value implements driver.Valuer.
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *IntList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("people: cannot scan %T into IntList", src)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]int)(l))
}

// Person is one roster record: identity fields, household demographics, and
// free-text notes. Only Name and Mobile are mandatory.
type Person struct {
	bun.BaseModel `bun:"table:people,alias:ppl"`

	ID               uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name             string     `bun:"name,notnull" json:"name"`
	DOB              *time.Time `bun:"dob,nullzero" json:"dob,omitempty"`
	Gender           string     `bun:"gender" json:"gender,omitempty"`
	Mobile           string     `bun:"mobile,notnull" json:"mobile"`
	Address          string     `bun:"address" json:"address,omitempty"`
	ContactVolunteer string     `bun:"contact_volunteer" json:"contact_volunteer,omitempty"`
	IsVolunteer      bool       `bun:"is_volunteer" json:"is_volunteer,omitempty"`
	VolunteerTypeIDs IntList    `bun:"volunteer_type_ids,type:text" json:"volunteer_type_ids,omitempty"`
	AdultMale        int        `bun:"adult_male" json:"adult_male,omitempty"`
	AdultFemale      int        `bun:"adult_female" json:"adult_female,omitempty"`
	ChildMale        int        `bun:"child_male" json:"child_male,omitempty"`
	ChildFemale      int        `bun:"child_female" json:"child_female,omitempty"`
	SkillIDs         IntList    `bun:"skill_ids,type:text" json:"skill_ids,omitempty"`
	InterestIDs      IntList    `bun:"interest_ids,type:text" json:"interest_ids,omitempty"`
	Notes            string     `bun:"notes" json:"notes,omitempty"`
}

// Validate enforces the mandatory identity fields.
func (p Person) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Mobile, validation.Required, validation.Length(7, 20)),
	)
}
