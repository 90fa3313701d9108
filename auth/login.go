package auth

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RoleFor is the one place admin identity is decided. Admin emails come from
// the ADMIN_EMAILS env var (comma separated); every admin check downstream
// reads the role claim this produces.
func RoleFor(email string) string {
	for _, admin := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if admin != "" && strings.EqualFold(strings.TrimSpace(admin), email) {
			return RoleAdmin
		}
	}
	return RoleUser
}

// EnsureUser fetches the user row for a verified identity, creating it on the
// first authenticated action and refreshing profile fields on later logins.
func EnsureUser(db *gorm.DB, id *Identity) (*models.User, error) {
	var user models.User
	err := db.Where("auth_id = ?", id.UID).First(&user).Error

	if err == gorm.ErrRecordNotFound {
		user = models.User{
			AuthID:  id.UID,
			Email:   id.Email,
			Name:    id.Name,
			Picture: id.Picture,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if id.Name != "" || id.Picture != "" {
		db.Model(&user).Updates(models.User{Name: id.Name, Picture: id.Picture})
	}
	return &user, nil
}

// IssueJWT signs a 24h session token carrying the role claim.
func IssueJWT(user *models.User, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"auth_id": user.AuthID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// LoginHandler exchanges an identity-provider token for an app session token.
func LoginHandler(db *gorm.DB, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
			return
		}

		user, err := EnsureUser(db, identity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		role := RoleFor(user.Email)
		token, err := IssueJWT(user, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"role":    role,
			"token":   token,
		})
	}
}
