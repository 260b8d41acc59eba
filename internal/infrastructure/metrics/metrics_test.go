package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping/:id", "GET", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/1", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping/:id", "GET", "204")))
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(orderTransitionsTotal.WithLabelValues("en_proceso"))
	RecordOrderTransition("en_proceso")
	assert.Equal(t, before+1, testutil.ToFloat64(orderTransitionsTotal.WithLabelValues("en_proceso")))

	photos := testutil.ToFloat64(inspectionPhotosTotal)
	RecordInspection(3)
	assert.Equal(t, photos+3, testutil.ToFloat64(inspectionPhotosTotal))

	failed := testutil.ToFloat64(notificationsSentTotal.WithLabelValues("email", "error"))
	RecordNotification("email", errors.New("x"))
	assert.Equal(t, failed+1, testutil.ToFloat64(notificationsSentTotal.WithLabelValues("email", "error")))
}
