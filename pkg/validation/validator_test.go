package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p samplePayload
	return c.ShouldBindJSON(&p)
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()
	err := bindSample(t, `{"email":"not-an-email","password":"longenough"}`)
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsPasswordAlias(t *testing.T) {
	Init()
	err := bindSample(t, `{"email":"a@b.com","password":"short"}`)
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "min length 8", details["password"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	Init()
	err := bindSample(t, `{"email": oops}`)
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "invalid json", details["payload"])
}

func TestToDetailsNil(t *testing.T) {
	require.Nil(t, ToDetails(nil))
}
