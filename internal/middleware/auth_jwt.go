package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"menucraft/internal/config"
	"menucraft/internal/realtime"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxRestaurantIDKey = "restaurant_id" // int64
	CtxUserRoleKey     = "user_role"     // string
)

// ParseTokenはキッチン/管理者JWTを検証してclaimsを返す。
// echoミドルウェアとwebsocketのjoin認可の両方から使う
func ParseToken(secret string, rawToken string) (realtime.Claims, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return realtime.Claims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return realtime.Claims{}, errors.New("invalid claims")
	}

	userID, err := parseInt64(claims["sub"])
	if err != nil || userID <= 0 {
		return realtime.Claims{}, errors.New("invalid sub")
	}

	restaurantID, err := parseInt64(claims["restaurant_id"])
	if err != nil || restaurantID <= 0 {
		return realtime.Claims{}, errors.New("invalid restaurant_id")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return realtime.Claims{}, errors.New("invalid role")
	}

	return realtime.Claims{
		UserID:       userID,
		RestaurantID: restaurantID,
		Role:         role,
	}, nil
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, err := ParseToken(cfg.JWTSecret, rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxRestaurantIDKey, claims.RestaurantID)
			c.Set(CtxUserRoleKey, claims.Role)

			return next(c)
		}
	}
}

// RequireAdminはAuthJWTの後段でADMINロールだけ通す
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role != "ADMIN" {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}

// TokenVerifierJWTはrealtime.TokenVerifierのJWT実装
type TokenVerifierJWT struct {
	secret string
}

func NewTokenVerifierJWT(cfg config.Config) *TokenVerifierJWT {
	return &TokenVerifierJWT{secret: cfg.JWTSecret}
}

func (v *TokenVerifierJWT) Verify(token string) (realtime.Claims, error) {
	return ParseToken(v.secret, strings.TrimSpace(token))
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid int")
	}
}
