package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/judgegodwins/wordle-duel/game"
	"github.com/judgegodwins/wordle-duel/tokens"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func readEnvelope(t *testing.T, body *bytes.Buffer) envelope {
	data, err := io.ReadAll(body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func newRequest(t *testing.T, method, url string, body any) (*http.Request, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	request, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	return request, httptest.NewRecorder()
}

func TestTokenGenerator(t *testing.T) {
	server := newTestServer(t)

	t.Run("returns token (happy case)", func(t *testing.T) {
		request, response := newRequest(t, http.MethodPost, "/auth/username", map[string]string{"username": "judge"})

		server.Handler().ServeHTTP(response, request)

		require.Equal(t, http.StatusOK, response.Code)

		env := readEnvelope(t, response.Body)
		var data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Token    string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, "judge", data.Username)

		payload, err := tokens.ParseJWTToken(data.Token, []byte(testSecret))
		require.NoError(t, err)
		require.Equal(t, data.ID, payload.ID)
	})

	t.Run("invalid or no body", func(t *testing.T) {
		request, response := newRequest(t, http.MethodPost, "/auth/username", map[string]string{})

		server.Handler().ServeHTTP(response, request)

		require.Equal(t, http.StatusUnprocessableEntity, response.Code)
	})
}

func TestAuthMiddlewareAndTokenData(t *testing.T) {
	server := newTestServer(t)

	valid, err := tokens.NewJWTToken(tokens.Payload{ID: "p1", Username: "judge"}, []byte(testSecret), time.Minute)
	require.NoError(t, err)

	expired, err := tokens.NewJWTToken(tokens.Payload{ID: "p1", Username: "judge"}, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
		code   int
	}{
		{"allow valid token entry", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"disallow tampered token", "Bearer " + valid + "hhh", http.StatusUnauthorized},
		{"return unauthorized for expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request, response := newRequest(t, http.MethodGet, "/auth/me", nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}

			server.Handler().ServeHTTP(response, request)

			require.Equal(t, tc.code, response.Code)
		})
	}

	t.Run("returns payload", func(t *testing.T) {
		request, response := newRequest(t, http.MethodGet, "/auth/me", nil)
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %v", valid))

		server.Handler().ServeHTTP(response, request)

		env := readEnvelope(t, response.Body)
		var payload tokens.Payload
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		require.Equal(t, "p1", payload.ID)
		require.Equal(t, "judge", payload.Username)
	})
}

func TestCheckRoom(t *testing.T) {
	server := newTestServer(t)

	t.Run("unknown room", func(t *testing.T) {
		request, response := newRequest(t, http.MethodGet, "/rooms/nope00", nil)

		server.Handler().ServeHTTP(response, request)

		require.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("waiting room", func(t *testing.T) {
		code := server.coordinator.CreateSession(game.Participant{ConnID: "offline"})
		require.NotEmpty(t, code)

		request, response := newRequest(t, http.MethodGet, "/rooms/"+code, nil)

		server.Handler().ServeHTTP(response, request)

		require.Equal(t, http.StatusOK, response.Code)

		env := readEnvelope(t, response.Body)
		var info struct {
			Code  string `json:"code"`
			Phase string `json:"phase"`
			Full  bool   `json:"full"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &info))
		require.Equal(t, code, info.Code)
		require.Equal(t, "waiting", info.Phase)
		require.False(t, info.Full)
	})
}

func TestCORS(t *testing.T) {
	server := newTestServer(t)

	request, response := newRequest(t, http.MethodOptions, "/auth/username", nil)
	request.Header.Set("Origin", "http://localhost:8080")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)

	server.Handler().ServeHTTP(response, request)

	require.Equal(t, "http://localhost:8080", response.Header().Get("Access-Control-Allow-Origin"))

	request, response = newRequest(t, http.MethodOptions, "/auth/username", nil)
	request.Header.Set("Origin", "http://evil.test")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)

	server.Handler().ServeHTTP(response, request)

	require.Empty(t, response.Header().Get("Access-Control-Allow-Origin"))
}
