package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-home-api/internal/middleware"
	"github.com/noah-isme/course-home-api/internal/models"
)

func viewerFromContext(c *gin.Context) (models.Viewer, bool) {
	claims := middleware.Claims(c)
	if claims == nil || claims.UserID == "" {
		return models.Viewer{}, false
	}
	return claims.Viewer(), true
}

func responseMeta(c *gin.Context, cacheHit bool, start time.Time) map[string]interface{} {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}
