package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		jwtSecretKey:         "test-secret",
	}
}

func TestGenerateAndVerifyTokenPair(t *testing.T) {
	svc := testJWTService()

	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	userID, err := svc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	userID, err = svc.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	svc := testJWTService()

	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := testJWTService()
	svc.AccessTokenDuration = -time.Minute

	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	svc := testJWTService()
	other := &JWTService{
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		jwtSecretKey:         "different-secret",
	}

	pair, err := other.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := testJWTService()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer header", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "bearer with no token", header: "Bearer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
