package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/graphql-go/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crashlog/internal/auth"
	"crashlog/internal/metrics"
	"crashlog/internal/middleware"
	"crashlog/internal/service"
	"crashlog/internal/storage/memory"
)

const testAdminToken = "test-admin-token"

// newTestServer stands up the full chain: middleware, handler, schema,
// services, in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.New()
	m := metrics.Nop()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	identity := service.NewIdentityService(store, authenticator, jwtManager, m, logger)
	persons := service.NewPersonService(store)
	insurances := service.NewInsuranceService(store, m)
	accidents := service.NewAccidentService(store, m)

	schema, err := NewSchema(identity, persons, insurances, accidents)
	require.NoError(t, err)

	gqlHandler := handler.New(&handler.Config{Schema: &schema})

	var h http.Handler = gqlHandler
	h = middleware.ResolveAdmin(testAdminToken)(h)
	h = middleware.ResolveIdentity(jwtManager)(h)

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

// post executes a query and decodes the envelope. headers are optional
// extras like Authorization.
func post(t *testing.T, server *httptest.Server, query string, headers map[string]string) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, server.URL, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerAndLogin(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()

	resp := post(t, server, `mutation {
		createUser(
			email: "`+email+`",
			password: "secret123",
			confirmedPassword: "secret123",
			firstName: "Test",
			lastName: "User",
			address: "1 Main Street",
			phoneNumber: "5551234567"
		) { id email }
	}`, nil)
	require.Empty(t, resp.Errors)

	resp = post(t, server, `mutation {
		login(email: "`+email+`", password: "secret123") { value }
	}`, nil)
	require.Empty(t, resp.Errors)

	var token struct {
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["login"], &token))
	require.NotEmpty(t, token.Value)
	return token.Value
}

func TestEndToEnd(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice@example.com")
	authed := map[string]string{"Authorization": "Bearer " + token}

	t.Run("me requires a token", func(t *testing.T) {
		resp := post(t, server, `{ me { email } }`, nil)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "Not authenticated", resp.Errors[0].Message)
		assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
	})

	t.Run("me returns the caller", func(t *testing.T) {
		resp := post(t, server, `{ me { email firstName } }`, authed)
		require.Empty(t, resp.Errors)

		var me struct {
			Email     string `json:"email"`
			FirstName string `json:"firstName"`
		}
		require.NoError(t, json.Unmarshal(resp.Data["me"], &me))
		assert.Equal(t, "alice@example.com", me.Email)
		assert.Equal(t, "Test", me.FirstName)
	})

	t.Run("login with a wrong password fails", func(t *testing.T) {
		resp := post(t, server, `mutation {
			login(email: "alice@example.com", password: "wrong") { value }
		}`, nil)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "Incorrect credentials", resp.Errors[0].Message)
	})

	t.Run("accident lifecycle over the wire", func(t *testing.T) {
		resp := post(t, server, `mutation {
			addAccident(
				time: "14:30",
				location: "Main St",
				speed: "30",
				weatherConditions: "rain",
				crashDescription: "rear-ended",
				photos: [{url: "https://img.example/1.jpg"}]
			) { id location photos { url } }
		}`, authed)
		require.Empty(t, resp.Errors)

		var acc struct {
			ID     string `json:"id"`
			Photos []struct {
				URL string `json:"url"`
			} `json:"photos"`
		}
		require.NoError(t, json.Unmarshal(resp.Data["addAccident"], &acc))
		require.Len(t, acc.Photos, 1)

		resp = post(t, server, `mutation {
			addWitness(accidentID: "`+acc.ID+`", input: {
				firstName: "Wen", lastName: "Lee",
				phoneNumber: "5550001", involvement: "witness"
			}) { witnesses { phoneNumber } }
		}`, authed)
		require.Empty(t, resp.Errors)

		resp = post(t, server, `{
			getAllMyAccidents { id user { email } witnesses { firstName } }
		}`, authed)
		require.Empty(t, resp.Errors)

		var mine []struct {
			ID   string `json:"id"`
			User struct {
				Email string `json:"email"`
			} `json:"user"`
			Witnesses []struct {
				FirstName string `json:"firstName"`
			} `json:"witnesses"`
		}
		require.NoError(t, json.Unmarshal(resp.Data["getAllMyAccidents"], &mine))
		require.Len(t, mine, 1)
		assert.Equal(t, "alice@example.com", mine[0].User.Email)
		require.Len(t, mine[0].Witnesses, 1)
	})

	t.Run("find of a missing accident is null", func(t *testing.T) {
		resp := post(t, server, `{ findAccident(accidentID: "nope") { id } }`, nil)
		require.Empty(t, resp.Errors)
		assert.Equal(t, "null", string(resp.Data["findAccident"]))
	})

	t.Run("insurance ownership hides foreign records", func(t *testing.T) {
		resp := post(t, server, `mutation {
			addInsuranceDetails(
				carRegistrationNumber: "AB12 CDE",
				insurerCompany: "Acme",
				insurerContactNumber: "5550001111",
				insurancePolicy: "comprehensive",
				insurancePolicyNumber: "POL-42"
			) { id owner { ... on User { email } } }
		}`, authed)
		require.Empty(t, resp.Errors)

		var ins struct {
			ID    string `json:"id"`
			Owner struct {
				Email string `json:"email"`
			} `json:"owner"`
		}
		require.NoError(t, json.Unmarshal(resp.Data["addInsuranceDetails"], &ins))
		assert.Equal(t, "alice@example.com", ins.Owner.Email)

		otherToken := registerAndLogin(t, server, "mallory@example.com")
		resp = post(t, server, `mutation {
			deleteInsuranceDetails(insuranceID: "`+ins.ID+`") { id }
		}`, map[string]string{"Authorization": "Bearer " + otherToken})
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "Cannot find these insurance details", resp.Errors[0].Message)
	})

	t.Run("deleteAllInsurances is gated by the admin token", func(t *testing.T) {
		resp := post(t, server, `mutation { deleteAllInsurances }`, authed)
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "Admin authorization required", resp.Errors[0].Message)

		resp = post(t, server, `mutation { deleteAllInsurances }`,
			map[string]string{"X-Admin-Token": testAdminToken})
		require.Empty(t, resp.Errors)
		assert.Equal(t, "true", string(resp.Data["deleteAllInsurances"]))
	})
}
