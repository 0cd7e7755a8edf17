package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeClaims reads the middle segment of the token without looking at the
// header or the signature; the backend stays the authority. Any malformed
// token yields empty claims.
func DecodeClaims(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}
	}
	raw, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return Claims{}
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}
	}
	return Claims{
		SubjectID: stringClaim(claims["sub"]),
		FullName:  stringClaim(claims["full_name"]),
		Role:      ParseRole(stringClaim(claims["role"])),
	}
}

func stringClaim(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
