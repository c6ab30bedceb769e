package handler

import (
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-home-api/internal/middleware"
	"github.com/noah-isme/course-home-api/internal/models"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func newTestContext(method, target string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, nil)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

var learnerClaims = &models.JWTClaims{UserID: "u1", Role: models.RoleLearner}
