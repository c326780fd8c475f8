package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	before := testutil.ToFloat64(WatchlistMutations.WithLabelValues("add", "success"))
	WatchlistMutations.WithLabelValues("add", "success").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(WatchlistMutations.WithLabelValues("add", "success")))

	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "watchlist_mutations_total")
}
