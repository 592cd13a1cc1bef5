package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/products?"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	cases := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 10, Offset: 0}},
		{"page=3&limit=5", Params{Page: 3, Limit: 5, Offset: 10}},
		{"page=0&limit=-1", Params{Page: 1, Limit: 10, Offset: 0}},
		{"page=abc&limit=500", Params{Page: 1, Limit: 50, Offset: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(contextWithQuery(tc.query), Limits{Default: 10, Max: 50}))
		})
	}
}

func TestParams_Meta(t *testing.T) {
	p := Params{Page: 2, Limit: 10, Offset: 10}
	assert.Equal(t, Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, p.Meta(21))
	assert.Equal(t, 0, p.Meta(0).TotalPages)
}
