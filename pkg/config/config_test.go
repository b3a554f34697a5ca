package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "@starnav.com.br", cfg.Organization.EmailDomain)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, "@every 1h", cfg.Jobs.OverdueScanSpec)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("ORG_EMAIL_DOMAIN", "@fleet.example")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "@fleet.example", cfg.Organization.EmailDomain)
}

func TestParse_EmailDomain(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "leading at", value: "@fleet.example", want: "@fleet.example"},
		{name: "bare host", value: "fleet.example", want: "@fleet.example"},
		{name: "mixed case and spaces", value: "  @Fleet.Example ", want: "@fleet.example"},
		{name: "doubled at", value: "@@fleet.example", want: "@fleet.example"},
		{name: "only at", value: "@", wantErr: true},
		{name: "blank", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORG_EMAIL_DOMAIN", tt.value)
			cfg, err := Parse()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Organization.EmailDomain)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "many")
	_, err := Parse()
	assert.Error(t, err)
}
