package store

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"

	"github.com/bloodcare/bloodcare/auth"
)

// defaultPhoneRegion is used when normalizing phone numbers submitted
// without a country prefix.
const defaultPhoneRegion = "VN"

// Role is a named authority grantable to accounts
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	Name          auth.RoleTag `bun:"role_name,pk" json:"role_name"`
	Description   string       `bun:"description" json:"description,omitempty"`
}

// Account is the credential record behind every login
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountCode   string       `bun:"account_code,notnull,unique" json:"account_code,omitempty"`
	Username      string       `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string       `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string       `bun:"password_hash" json:"-"`
	Active        bool         `bun:"is_active" json:"is_active"`
	Role          auth.RoleTag `bun:"role_name,notnull" json:"role_name,omitempty"`
	Profile       *Profile     `bun:"rel:has-one,join:id=account_id" json:"profile,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time   `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Profile holds the donor-facing attributes of an account
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prf"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID     uuid.UUID  `bun:"account_id,notnull,unique,type:uuid" json:"account_id,omitempty"`
	FullName      string     `bun:"full_name" json:"full_name,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	DateOfBirth   *time.Time `bun:"date_of_birth,nullzero" json:"date_of_birth,omitempty"`
	Gender        string     `bun:"gender" json:"gender,omitempty"`
	City          string     `bun:"city" json:"city,omitempty"`
	District      string     `bun:"district" json:"district,omitempty"`
	Ward          string     `bun:"ward" json:"ward,omitempty"`
	Street        string     `bun:"street" json:"street,omitempty"`
	BloodType     string     `bun:"blood_type" json:"blood_type,omitempty"`
	DonationCount int        `bun:"donation_count" json:"donation_count"`
	NextRestDate  *time.Time `bun:"next_rest_date,nullzero" json:"next_rest_date,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// DonationEvent is a scheduled blood drive
type DonationEvent struct {
	bun.BaseModel `bun:"table:donation_events,alias:evt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Location      string     `bun:"location" json:"location,omitempty"`
	StartAt       *time.Time `bun:"start_at,nullzero" json:"start_at,omitempty"`
	EndAt         *time.Time `bun:"end_at,nullzero" json:"end_at,omitempty"`
	Capacity      int        `bun:"capacity" json:"capacity"`
	Registered    int        `bun:"registered" json:"registered"`
	Status        string     `bun:"status" json:"status,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

const (
	EventStatusUpcoming = "upcoming"
	EventStatusOngoing  = "ongoing"
	EventStatusClosed   = "closed"
)

// NewAccountCode builds a human-readable account code, e.g.
// AC-20240131153045-042. Collisions are handled by the unique column.
func NewAccountCode(now time.Time) string {
	return fmt.Sprintf("AC-%s-%03d", now.Format("20060102150405"), rand.Intn(1000))
}

// NormalizePhone parses and formats a phone number as E164, using the
// default region for numbers without a country prefix. Empty input is
// returned untouched so optional fields stay optional.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("invalid phone number %q: %w", raw, err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number %q", raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = auth.RoleMember
	}

	if record.AccountCode == "" {
		record.AccountCode = NewAccountCode(time.Now())
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
