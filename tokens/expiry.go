package tokens

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// DecodeExpiry extracts the exp claim from a JWT without verifying the
// signature. The gateway holds no verification keys; the backend is the
// authority on token validity and freshness is the only claim read locally.
func DecodeExpiry(rawToken string) (time.Time, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[DecodeExpiry] ParseUnverified")
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return time.Time{}, errors.New("[DecodeExpiry] error extracting claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("[DecodeExpiry] missing exp claim")
	}

	return time.Unix(int64(exp), 0), nil
}
