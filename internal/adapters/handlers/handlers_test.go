package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/velvetpour/internal/adapters/observers"
	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/internal/middleware/swagger"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

type fakeUsecases struct {
	prepareErr error
	valveErr   error
	lastValve  string
}

func (f *fakeUsecases) GetBottles() ([]entities.Bottle, error) {
	return []entities.Bottle{{ID: 1, Name: "Gin"}}, nil
}

func (f *fakeUsecases) GetMountedBottles() ([]entities.BottleMounted, error) {
	return nil, fmt.Errorf("db down")
}

func (f *fakeUsecases) GetAvailableDrinks() ([]entities.Drink, error) {
	return []entities.Drink{{ID: 3, Name: "Negroni"}}, nil
}

func (f *fakeUsecases) GetDrink(id int) (*models.DrinkRecipe, error) {
	if id != 3 {
		return nil, fmt.Errorf("%w: id=%d", errors.ErrDrinkNotFound, id)
	}
	return &models.DrinkRecipe{DrinkID: 3, Name: "Negroni"}, nil
}

func (f *fakeUsecases) PrepareDrink(id int) (*models.PrepareResponse, error) {
	if _, err := f.GetDrink(id); err != nil {
		return nil, err
	}
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	return &models.PrepareResponse{Status: "accepted", Message: "Preparing Negroni", Drink: "Negroni", RunID: "run-1"}, nil
}

func (f *fakeUsecases) OpenValve(_ context.Context, id int) (models.PourResult, error) {
	f.lastValve = "open"
	return models.PourResult{Request: models.PourRequest{ValveID: id}, Success: f.valveErr == nil}, f.valveErr
}

func (f *fakeUsecases) CloseValve(_ context.Context, id int) (models.PourResult, error) {
	f.lastValve = "close"
	return models.PourResult{Request: models.PourRequest{ValveID: id, TargetVolume: -1}, Success: f.valveErr == nil}, f.valveErr
}

func (f *fakeUsecases) GetStatus() models.MachineStatus {
	return models.MachineStatus{Status: models.StatusBusy, ConnectedClients: 2}
}

type fakeStatus struct{}

func (fakeStatus) Started(string)                        {}
func (fakeStatus) Completed(string)                      {}
func (fakeStatus) Failed(string, string)                 {}
func (fakeStatus) ClientConnected() models.MachineStatus { return models.MachineStatus{} }
func (fakeStatus) ClientDisconnected()                   {}
func (fakeStatus) Status() models.MachineStatus          { return models.MachineStatus{} }

func newTestRouter(uc *fakeUsecases) http.Handler {
	cfg := &config.AppConfig{GinMode: gin.TestMode, WSAllowedOrigins: []string{"*"}}
	logger := logging.NewNop()
	h := NewHandler(uc, fakeStatus{}, observers.NewHub(cfg, logger), logger)
	return ProvideRouter(h, cfg, &swagger.Config{Enabled: true, Path: "/swagger"})
}

func perform(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "тело: %s", w.Body.String())
	return body
}

func TestWelcome(t *testing.T) {
	w := perform(t, newTestRouter(&fakeUsecases{}), http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, welcomeMessage, w.Body.String())
}

func TestPrepareAccepted(t *testing.T) {
	w := perform(t, newTestRouter(&fakeUsecases{}), http.MethodPost, "/api/v1/prepare/3")
	require.Equal(t, http.StatusAccepted, w.Code)

	body := decode(t, w)
	require.Equal(t, "accepted", body["status"])
	require.Equal(t, "Negroni", body["drink"])
	require.Equal(t, "run-1", body["run_id"])
}

func TestPrepareErrors(t *testing.T) {
	cases := []struct {
		name string
		path string
		err  error
		code int
	}{
		{"unknown drink", "/api/v1/prepare/99", nil, http.StatusNotFound},
		{"bad id", "/api/v1/prepare/abc", nil, http.StatusBadRequest},
		{"busy", "/api/v1/prepare/3", fmt.Errorf("%w: Spritz", errors.ErrBusy), http.StatusConflict},
		{"scheduling", "/api/v1/prepare/3", errors.ErrScheduling, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(t, newTestRouter(&fakeUsecases{prepareErr: tc.err}), http.MethodPost, tc.path)
			require.Equal(t, tc.code, w.Code)

			body := decode(t, w)
			require.Equal(t, "error", body["status"])
			require.NotEmpty(t, body["message"])
		})
	}
}

func TestCatalogRoutes(t *testing.T) {
	router := newTestRouter(&fakeUsecases{})

	w := perform(t, router, http.MethodGet, "/api/v1/bottles")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Gin")

	w = perform(t, router, http.MethodGet, "/api/v1/bottles/mounted")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "db down", "внутренняя ошибка не уходит клиенту")

	w = perform(t, router, http.MethodGet, "/api/v1/drinks/available")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Negroni")

	w = perform(t, router, http.MethodGet, "/api/v1/drinks/3")
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(t, router, http.MethodGet, "/api/v1/drinks/4")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusRoute(t *testing.T) {
	w := perform(t, newTestRouter(&fakeUsecases{}), http.MethodGet, "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status models.MachineStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Equal(t, models.StatusBusy, status.Status)
	require.Equal(t, 2, status.ConnectedClients)
}

func TestValveRoutes(t *testing.T) {
	uc := &fakeUsecases{}
	router := newTestRouter(uc)

	w := perform(t, router, http.MethodPost, "/api/v1/valves/1/open")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "open", uc.lastValve)
	require.Equal(t, "open", decode(t, w)["command"])

	w = perform(t, router, http.MethodPost, "/api/v1/valves/1/close")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "close", uc.lastValve)

	uc.valveErr = fmt.Errorf("%w: идет приготовление", errors.ErrBusy)
	w = perform(t, router, http.MethodPost, "/api/v1/valves/1/open")
	require.Equal(t, http.StatusConflict, w.Code)

	uc.valveErr = fmt.Errorf("%w: насос 9", errors.ErrUnknownPump)
	w = perform(t, router, http.MethodPost, "/api/v1/valves/9/close")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebsocketRouteRequiresUpgrade(t *testing.T) {
	w := perform(t, newTestRouter(&fakeUsecases{}), http.MethodGet, "/ws")
	require.Equal(t, http.StatusBadRequest, w.Code, "обычный GET без рукопожатия отклоняется")
}

func TestSwaggerDocServed(t *testing.T) {
	router := newTestRouter(&fakeUsecases{})

	w := perform(t, router, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "VelvetPour API", "документ должен нести заголовок API")
	require.Contains(t, w.Body.String(), "/prepare/{drink_id}", "документ должен описывать маршрут приготовления")
	require.Contains(t, w.Body.String(), "Избранные идут первыми", "порядок доступных коктейлей описан в документе")
}

func TestSwaggerDisabled(t *testing.T) {
	cfg := &config.AppConfig{GinMode: gin.TestMode, WSAllowedOrigins: []string{"*"}}
	logger := logging.NewNop()
	h := NewHandler(&fakeUsecases{}, fakeStatus{}, observers.NewHub(cfg, logger), logger)
	router := ProvideRouter(h, cfg, &swagger.Config{Enabled: false, Path: "/swagger"})

	w := perform(t, router, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusNotFound, w.Code, "выключенный swagger не регистрирует маршрут")
}
