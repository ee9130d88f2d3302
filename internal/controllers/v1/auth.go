package v1

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// jwtSecret returns the key used to sign session tokens.
func jwtSecret() []byte {
	secret, ok := os.LookupEnv("JWT_SECRET")
	if !ok {
		// Development fallback. Deployments set JWT_SECRET.
		secret = "staffalloc-dev-secret"
	}

	return []byte(secret)
}

// RegisterAuthRoutes registers the authentication routes with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsAuth)
	r.POST("/register", Register)
	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register
// @Description	Creates a user account with a password
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201				{object}	UserResponse
// @Failure		400				{object}	UserResponse
// @Failure		500				{object}	UserResponse
// @Param			registration	body		RegisterEditable	true	"Registration"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var editable RegisterEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	if strings.TrimSpace(editable.Password) == "" {
		s := errPasswordEmpty.Error()
		c.JSON(http.StatusBadRequest, UserResponse{
			Error: &s,
		})
		return
	}

	if editable.SystemRole != "" && !editable.SystemRole.Valid() {
		s := errSystemRoleInvalid.Error()
		c.JSON(http.StatusBadRequest, UserResponse{
			Error: &s,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(editable.Password), bcrypt.DefaultCost)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, UserResponse{
			Error: &s,
		})
		return
	}

	user := editable.model()
	user.PasswordHash = string(hash)

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Login
// @Description	Verifies the credentials and issues a bearer token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	LoginResponse
// @Failure		400		{object}	LoginResponse
// @Failure		401		{object}	LoginResponse
// @Failure		500		{object}	LoginResponse
// @Param			login	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var editable LoginEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, &models.User{Email: strings.ToLower(strings.TrimSpace(editable.Email))}).Error
	if err != nil {
		// Do not leak whether the account exists
		s := errCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(editable.Password))
	if err != nil {
		s := errCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	})

	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token: signed,
			User:  newUser(c, user),
		},
	})
}
