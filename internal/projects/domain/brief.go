package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type BusinessType string

const (
	BusinessEcommerce BusinessType = "ECOMMERCE"
	BusinessService   BusinessType = "SERVICE"
)

type BuyerType string

const (
	BuyerOperator  BuyerType = "OPERATOR"
	BuyerInvestor  BuyerType = "INVESTOR"
	BuyerStrategic BuyerType = "STRATEGIC"
)

type Angle string

const (
	AngleCashflow  Angle = "CASHFLOW"
	AngleLifestyle Angle = "LIFESTYLE"
	AngleGrowth    Angle = "GROWTH"
)

var (
	BusinessTypes = []BusinessType{BusinessEcommerce, BusinessService}
	BuyerTypes    = []BuyerType{BuyerOperator, BuyerInvestor, BuyerStrategic}
	Angles        = []Angle{AngleCashflow, AngleLifestyle, AngleGrowth}
)

const MaxNicheLength = 200

func (b BusinessType) Valid() bool { return oneOf(b, BusinessTypes) }
func (b BuyerType) Valid() bool    { return oneOf(b, BuyerTypes) }
func (a Angle) Valid() bool        { return oneOf(a, Angles) }

// Brief is the sales strategy stored for a project. There is at most one per
// project and each save replaces every field.
type Brief struct {
	ID           string       `db:"id" json:"id"`
	ProjectID    string       `db:"project_id" json:"projectId"`
	BusinessType BusinessType `db:"business_type" json:"businessType"`
	Niche        string       `db:"niche" json:"niche"`
	BuyerType    BuyerType    `db:"buyer_type" json:"buyerType"`
	Angle        Angle        `db:"angle" json:"angle"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

type BriefInput struct {
	BusinessType BusinessType `json:"businessType"`
	Niche        string       `json:"niche"`
	BuyerType    BuyerType    `json:"buyerType"`
	Angle        Angle        `json:"angle"`
}

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Normalize trims the niche and validates every field against its closed set.
func (in BriefInput) Normalize() (BriefInput, error) {
	in.Niche = strings.TrimSpace(in.Niche)

	switch {
	case !in.BusinessType.Valid():
		return in, &ValidationError{Field: "businessType", Message: "must be one of " + join(BusinessTypes)}
	case in.Niche == "":
		return in, &ValidationError{Field: "niche", Message: "is required"}
	case utf8.RuneCountInString(in.Niche) > MaxNicheLength:
		return in, &ValidationError{Field: "niche", Message: fmt.Sprintf("must be at most %d characters", MaxNicheLength)}
	case !in.BuyerType.Valid():
		return in, &ValidationError{Field: "buyerType", Message: "must be one of " + join(BuyerTypes)}
	case !in.Angle.Valid():
		return in, &ValidationError{Field: "angle", Message: "must be one of " + join(Angles)}
	}
	return in, nil
}

func oneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func join[T ~string](set []T) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
