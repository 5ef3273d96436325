package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-test-secret"

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	router := authTestRouter()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	router := authTestRouter()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc.def.ghi")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	tokens, err := utils.GenerateTokenPair(userID, string(models.UserTypeMember), "user@example.com", testSecret)
	require.NoError(t, err)

	router := authTestRouter()

	var gotUserID primitive.ObjectID
	var gotType string
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		gotUserID = c.MustGet("user_id").(primitive.ObjectID)
		gotType = c.GetString("user_type")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, string(models.UserTypeMember), gotType)
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	userID := primitive.NewObjectID()
	tokens, err := utils.GenerateTokenPair(userID, string(models.UserTypeMember), "user@example.com", "other-secret")
	require.NoError(t, err)

	router := authTestRouter()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequired(t *testing.T) {
	adminID := primitive.NewObjectID()
	adminTokens, err := utils.GenerateTokenPair(adminID, string(models.UserTypeAdmin), "admin@example.com", testSecret)
	require.NoError(t, err)

	memberTokens, err := utils.GenerateTokenPair(primitive.NewObjectID(), string(models.UserTypeMember), "member@example.com", testSecret)
	require.NoError(t, err)

	router := authTestRouter()
	router.GET("/admin", AuthRequired(testSecret), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+memberTokens.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
