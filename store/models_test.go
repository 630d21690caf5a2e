package store

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodcare/bloodcare/auth"
)

func TestNewAccountCode(t *testing.T) {
	at := time.Date(2024, 1, 31, 15, 30, 45, 0, time.UTC)

	code := NewAccountCode(at)

	assert.True(t, strings.HasPrefix(code, "AC-20240131153045-"))
	assert.Len(t, code, len("AC-20240131153045-000"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "local format", raw: "0912345678", want: "+84912345678"},
		{name: "international format", raw: "+84912345678", want: "+84912345678"},
		{name: "with spaces", raw: " 091 234 5678 ", want: "+84912345678"},
		{name: "empty is allowed", raw: "", want: ""},
		{name: "garbage", raw: "not-a-phone", wantErr: true},
		{name: "too short", raw: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrepareAccountDefaults(t *testing.T) {
	record := &Account{Username: "donor"}

	prepareAccountDefaults(record)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, auth.RoleMember, record.Role)
	assert.True(t, strings.HasPrefix(record.AccountCode, "AC-"))

	// explicit values survive
	id := uuid.New()
	record = &Account{ID: id, Role: auth.RoleAdmin, AccountCode: "AC-20240131153045-001"}
	prepareAccountDefaults(record)

	assert.Equal(t, id, record.ID)
	assert.Equal(t, auth.RoleAdmin, record.Role)
	assert.Equal(t, "AC-20240131153045-001", record.AccountCode)

	// nil record is a no-op
	prepareAccountDefaults(nil)
}
