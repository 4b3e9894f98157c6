package authapi

import (
	"strings"
	"time"

	"chonggak/cmd/internal/auth/session"
	"chonggak/cmd/member"
)

// defaultDeviceID is used when a client does not identify its device. All
// such clients share one refresh slot per member.
const defaultDeviceID = "default"

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"device_id"`
}

type reissueRequest struct {
	RefreshToken string `json:"refresh_token"`
	MemberID     string `json:"member_id"`
	DeviceID     string `json:"device_id"`
}

type logoutRequest struct {
	DeviceID string `json:"device_id"`
}

func resolveDeviceID(raw string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return defaultDeviceID
}

type memberResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func toMemberResponse(m member.Member) memberResponse {
	return memberResponse{
		ID:       m.ID,
		Email:    m.Email,
		Nickname: m.Nickname,
		Role:     string(m.Role),
	}
}

type tokenPairResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func toTokenPairResponse(p session.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:      p.AccessToken,
		AccessExpiresAt:  p.AccessExpiresAt,
		RefreshToken:     p.RefreshToken,
		RefreshExpiresAt: p.RefreshExpiresAt,
	}
}
