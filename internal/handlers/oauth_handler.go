package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	"github.com/BruksfildServices01/booking-bridge/internal/config"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
	"github.com/BruksfildServices01/booking-bridge/internal/validators"
)

// OAuthHandler runs the calendar-connect consent flow. The state parameter
// is a short-lived signed token carrying the barber's phone, so the callback
// cannot be replayed onto another account.
type OAuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	provider *calendar.GoogleProvider
}

func NewOAuthHandler(db *gorm.DB, cfg *config.Config, provider *calendar.GoogleProvider) *OAuthHandler {
	return &OAuthHandler{db: db, config: cfg, provider: provider}
}

// Connect returns the consent URL for the barber identified by ?phone=.
func (h *OAuthHandler) Connect(c *gin.Context) {
	phone := validators.NormalizePhone(c.Query("phone"))
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	var barber models.Barber
	if err := h.db.Where("phone = ?", phone).First(&barber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
		return
	}

	state, err := h.signState(phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_sign_state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": h.provider.AuthCodeURL(state),
	})
}

// Callback is the OAuth redirect target: verifies state, trades the code for
// a refresh token and stores it on the barber row.
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_code_or_state"})
		return
	}

	phone, err := h.verifyState(state)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_state"})
		return
	}

	var barber models.Barber
	if err := h.db.Where("phone = ?", phone).First(&barber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
		return
	}

	refreshToken, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "oauth_exchange_failed"})
		return
	}

	barber.RefreshToken = refreshToken
	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_store_credential"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected": true,
		"barber_id": barber.ID,
	})
}

// --------- State token ---------

func (h *OAuthHandler) signState(phone string) (string, error) {
	claims := jwt.MapClaims{
		"phone": phone,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func (h *OAuthHandler) verifyState(state string) (string, error) {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenMalformed
	}

	phone, ok := claims["phone"].(string)
	if !ok || phone == "" {
		return "", jwt.ErrTokenMalformed
	}
	return phone, nil
}
