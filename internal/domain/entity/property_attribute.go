package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

type AttributeDataType string

const (
	AttributeText    AttributeDataType = "TEXT"
	AttributeNumber  AttributeDataType = "NUMBER"
	AttributeBoolean AttributeDataType = "BOOLEAN"
)

func ParseAttributeDataType(s string) (AttributeDataType, error) {
	t := AttributeDataType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case AttributeText, AttributeNumber, AttributeBoolean:
		return t, nil
	}
	return "", errs.Validation(errs.CodeValidationFailed, "unknown attribute data type: "+s)
}

// PropertyAttribute defines a typed, named characteristic (e.g. "parking spots").
type PropertyAttribute struct {
	ID        string
	Name      string
	DataType  AttributeDataType
	Unit      string
	CreatedAt time.Time
}

// ValidateValue checks v against the attribute's data type and returns the
// canonical string form to store.
func (a *PropertyAttribute) ValidateValue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errs.Validation(errs.CodeValidationFailed, "value for "+a.Name+" must not be blank")
	}
	switch a.DataType {
	case AttributeNumber:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", errs.Validation(errs.CodeValidationFailed, a.Name+" must be a number")
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case AttributeBoolean:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", errs.Validation(errs.CodeValidationFailed, a.Name+" must be true or false")
		}
		return strconv.FormatBool(b), nil
	default:
		return v, nil
	}
}

// PropertyAttributeValue is a property's value for one attribute.
// Rows are never physically removed; Deleted hides them from all reads.
type PropertyAttributeValue struct {
	ID          string
	PropertyID  string
	AttributeID string
	Attribute   *PropertyAttribute
	Value       string
	Deleted     bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (v *PropertyAttributeValue) MarkDeleted(now time.Time) {
	v.Deleted = true
	v.DeletedAt = &now
}
