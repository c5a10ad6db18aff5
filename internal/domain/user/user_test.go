package user_test

import (
	"testing"

	"github.com/SAUL-ALVES/useradmin/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ana@Example.com", "ana@example.com"},
		{"  ana@example.com  ", "ana@example.com"},
		{"ANA@EXAMPLE.COM", "ana@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, user.NormalizeEmail(tt.in))
	}
}
