package helper

import (
	"errors"
	"fmt"
	"time"

	"festival_manager/config"
	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func JwtSecret() []byte {
	return []byte(config.ConfigOr("JWT_SECRET", "festival-dev-secret"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetAccountByUsername(u string) (*model.Account, error) {
	db := database.DB
	var account model.Account
	if err := db.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	return token.SignedString(JwtSecret())
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(JwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret(), nil
	})
}

// GetInfoAccountFromToken reads the parsed JWT stashed by the middleware.
// Returns a zero claim for guests.
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool, bool) {
	var guest model.TokenClaim

	u := c.Locals("user")
	if u == nil {
		return guest, false, false
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		return guest, false, false
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return guest, false, false
	}

	accountId := uint(0)
	if aid, ok := claims["accountId"].(float64); ok {
		accountId = uint(aid)
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	claim := model.TokenClaim{
		AccountId: accountId,
		Username:  username,
		Role:      role,
	}
	isAdmin := role == constants.ROLE_ADMIN
	isStaff := role == constants.ROLE_STAFF || isAdmin
	return claim, isAdmin, isStaff
}
