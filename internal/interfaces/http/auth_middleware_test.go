package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/jhoicas/Analitica-api/internal/interfaces/http"
)

// appConRutaProtegida monta una ruta mínima detrás del middleware para
// observar qué queda en c.Locals.
func appConRutaProtegida(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protegida", apihttp.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apihttp.GetUserID(c)})
	})
	return app
}

func TestAuthMiddleware_DejaElUserIDEnLocals(t *testing.T) {
	app := appConRutaProtegida(t)

	req, err := http.NewRequest(http.MethodGet, "/protegida", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+validToken(t))

	status, body := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "usuario-1", body["user_id"])
}

func TestAuthMiddleware_BearerSinTokenDevuelve401(t *testing.T) {
	app := appConRutaProtegida(t)

	req, err := http.NewRequest(http.MethodGet, "/protegida", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer   ")

	status, body := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_EsInsensibleAMayusculasEnBearer(t *testing.T) {
	app := appConRutaProtegida(t)

	req, err := http.NewRequest(http.MethodGet, "/protegida", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "bearer "+validToken(t))

	status, _ := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
}
