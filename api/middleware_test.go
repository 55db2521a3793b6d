package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthenticatedMiddleware(), func(ctx *gin.Context) {
		user, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	return router
}

func TestAuthenticatedMiddleware(t *testing.T) {
	TokenController = utils.NewJWTToken(&utils.Config{SigningKey: "test-signing-key"})
	router := protectedRouter()

	valid, err := TokenController.CreateToken(utils.TokenObject{UserID: 7, Role: "user"})
	require.NoError(t, err)

	other := utils.NewJWTToken(&utils.Config{SigningKey: "other-key"})
	forged, err := other.CreateToken(utils.TokenObject{UserID: 7, Role: "user"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", header: "Basic abc123", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "forged token", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Contains(t, recorder.Body.String(), `"user_id":7`)
			}
		})
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.POST("/anything", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	request := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}
