package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamewallet/database/dbtest"
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	masterCode   = "MASTER"
	masterSecret = "master-secret"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app     *fiber.App
	admins  *services.AdminService
	wallets *services.WalletService
}

func newServer(t *testing.T, loginLimit int) *testServer {
	t.Helper()

	db := dbtest.New(t)
	wallets := services.NewWalletService(db, nil)
	agents := services.NewAgentService(db)
	sessions := services.NewSessionService(db, wallets, time.Hour)
	bonuses := services.NewBonusService(db, wallets)
	audit := services.NewCallbackAuditor(db)
	admins := services.NewAdminService(db, "jwt-secret", time.Hour)
	wallets.SetWagerRecorder(bonuses)

	app := fiber.New()
	Setup(app, Deps{
		Agents:            agents,
		Wallets:           wallets,
		Sessions:          sessions,
		Bonuses:           bonuses,
		KYC:               services.NewKYCService(db, wallets),
		Admins:            admins,
		Seamless:          services.NewSeamlessService("gitslotpark", wallets, agents, sessions, audit),
		Audit:             audit,
		MasterAgentCode:   masterCode,
		MasterAgentSecret: masterSecret,
		LoginRateLimit:    loginLimit,
	})
	return &testServer{app: app, admins: admins, wallets: wallets}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

type agentCreds struct {
	AgentCode string `json:"agent_code"`
	SecretKey string `json:"secret_key"`
}

func (c agentCreds) headers() map[string]string {
	return map[string]string{"X-Agent-Code": c.AgentCode, "X-Secret-Key": c.SecretKey}
}

func (s *testServer) registerAgent(t *testing.T, username string) agentCreds {
	t.Helper()

	status, env := s.do(t, http.MethodPost, "/agent/register", map[string]any{
		"username":  username,
		"currency":  "IDR",
		"signature": helpers.HMACSHA256Hex(masterSecret, masterCode+masterSecret),
	}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	var creds agentCreds
	require.NoError(t, json.Unmarshal(env.Data, &creds))
	return creds
}

func dataField(t *testing.T, env envelope, key string) any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m[key]
}

func TestAgentRegisterNeedsMasterSignature(t *testing.T) {
	s := newServer(t, 0)

	status, env := s.do(t, http.MethodPost, "/agent/register", map[string]any{
		"username":  "alpha",
		"currency":  "IDR",
		"signature": "forged",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestOperatorFlow(t *testing.T) {
	s := newServer(t, 0)
	alpha := s.registerAgent(t, "alpha")
	h := alpha.headers()

	status, env := s.do(t, http.MethodPost, "/user/register", map[string]any{
		"user_code": "Alice", "country": "ID", "currency": "IDR",
	}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	player := dataField(t, env, "user_code").(string)
	assert.Equal(t, alpha.AgentCode+"_alice", player)

	status, env = s.do(t, http.MethodPost, "/user/register", map[string]any{
		"user_code": "alice", "country": "ID", "currency": "IDR",
	}, h)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Message)

	_, env = s.do(t, http.MethodPost, "/user/register", map[string]any{
		"user_code": "bob", "country": "ID", "currency": "THB",
	}, h)
	assert.Equal(t, "INVALID_CURRENCY_FOR_COUNTRY", env.Message)

	status, env = s.do(t, http.MethodPost, "/user/transfer", map[string]any{"user_code": player, "amount": "500"}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "500", dataField(t, env, "balance"))

	status, env = s.do(t, http.MethodPost, "/user/transfer", map[string]any{"user_code": player, "amount": "-200"}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "300", dataField(t, env, "balance"))
	assert.Equal(t, "withdraw", dataField(t, env, "type"))

	status, env = s.do(t, http.MethodPost, "/user/transfer", map[string]any{"user_code": player, "amount": "-1000"}, h)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_USER_BALANCE", env.Message)

	_, env = s.do(t, http.MethodPost, "/user/balance", map[string]any{"user_code": player}, h)
	assert.Equal(t, "300", dataField(t, env, "balance"))

	status, env = s.do(t, http.MethodGet, "/user/transactions?user_code="+player+"&limit=1", nil, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.EqualValues(t, 2, dataField(t, env, "count"))
	assert.EqualValues(t, 2, dataField(t, env, "last_page"))

	_, env = s.do(t, http.MethodPost, "/agent/info", nil, h)
	assert.Equal(t, "300", dataField(t, env, "total_user_balance"))

	// A rival agent cannot see or move alpha's player.
	rival := s.registerAgent(t, "rival")
	status, env = s.do(t, http.MethodPost, "/user/balance", map[string]any{"user_code": player}, rival.headers())
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", env.Message)

	status, _ = s.do(t, http.MethodPost, "/user/transfer", map[string]any{"user_code": player, "amount": "100"}, rival.headers())
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestTransferNormalizesUserCode(t *testing.T) {
	s := newServer(t, 0)
	alpha := s.registerAgent(t, "alpha")
	h := alpha.headers()
	ctx := context.Background()

	status, env := s.do(t, http.MethodPost, "/user/transfer", map[string]any{
		"user_code": " " + strings.ToUpper(alpha.AgentCode) + "_Carol ", "amount": "100",
	}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	player := strings.ToLower(alpha.AgentCode) + "_carol"
	assert.Equal(t, player, dataField(t, env, "user_code"))

	status, env = s.do(t, http.MethodPost, "/user/transfer", map[string]any{
		"user_code": strings.ToUpper(player), "amount": "50",
	}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "150", dataField(t, env, "balance"))

	_, env = s.do(t, http.MethodPost, "/user/balance", map[string]any{"user_code": player}, h)
	assert.Equal(t, "150", dataField(t, env, "balance"))

	_, err := s.wallets.Find(ctx, strings.ToUpper(alpha.AgentCode)+"_Carol")
	assert.ErrorIs(t, err, services.ErrWalletNotFound)

	_, env = s.do(t, http.MethodPost, "/agent/info", nil, h)
	assert.Equal(t, "150", dataField(t, env, "total_user_balance"))
}

func TestUserRoutesRequireAgentCredentials(t *testing.T) {
	s := newServer(t, 0)

	status, env := s.do(t, http.MethodPost, "/user/balance", map[string]any{"user_code": "x"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "AGENT_CODE_AND_SECRET_REQUIRED", env.Message)

	status, env = s.do(t, http.MethodPost, "/user/balance", map[string]any{"user_code": "x"},
		map[string]string{"X-Agent-Code": "0abc", "X-Secret-Key": "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_AGENT_CREDENTIALS", env.Message)
}

func TestResponsibleGamingAndKYC(t *testing.T) {
	s := newServer(t, 0)
	alpha := s.registerAgent(t, "alpha")
	h := alpha.headers()
	player := alpha.AgentCode + "_carol"

	_, env := s.do(t, http.MethodPost, "/user/register", map[string]any{"user_code": "carol", "country": "ID", "currency": "IDR"}, h)
	require.True(t, env.Success, env.Message)

	status, env := s.do(t, http.MethodPost, "/user/limits", map[string]any{
		"user_code": player, "daily_deposit_limit": "100", "daily_loss_limit": "0",
	}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	_, env = s.do(t, http.MethodPost, "/user/transfer", map[string]any{"user_code": player, "amount": "150"}, h)
	assert.Equal(t, "LIMIT_EXCEEDED", env.Message)

	status, env = s.do(t, http.MethodPost, "/user/kyc/submit", map[string]any{
		"user_code": player, "document_type": "passport", "document_ref": "s3://kyc/carol",
	}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = s.do(t, http.MethodPost, "/user/self-exclude", map[string]any{"user_code": player, "days": 7}, h)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.NotNil(t, dataField(t, env, "self_excluded_until"))

	status, env = s.do(t, http.MethodPost, "/user/games/start", map[string]any{
		"user_code": player, "provider_id": "gitslotpark", "game_id": "g1",
	}, h)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "USER_SELF_EXCLUDED", env.Message)
}

func TestAdminFlow(t *testing.T) {
	s := newServer(t, 0)
	alpha := s.registerAgent(t, "alpha")
	player := alpha.AgentCode + "_dave"
	_, env := s.do(t, http.MethodPost, "/user/register", map[string]any{"user_code": "dave", "country": "ID", "currency": "IDR"}, alpha.headers())
	require.True(t, env.Success, env.Message)

	_, err := s.admins.UpsertAdmin(context.Background(), "ops", "correct-horse", "admin")
	require.NoError(t, err)

	status, _ := s.do(t, http.MethodGet, "/admin/wallets/"+player, nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = s.do(t, http.MethodPost, "/admin/login", map[string]any{"username": "ops", "password": "wrong-password"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = s.do(t, http.MethodPost, "/admin/login", map[string]any{"username": "ops", "password": "correct-horse"}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	bearer := map[string]string{"Authorization": "Bearer " + dataField(t, env, "token").(string)}

	status, env = s.do(t, http.MethodPost, "/admin/wallets/"+player+"/adjust", map[string]any{"amount": "250", "note": "goodwill"}, bearer)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "250", dataField(t, env, "balance"))

	status, env = s.do(t, http.MethodPost, "/admin/wallets/"+player+"/adjust", map[string]any{"amount": "-50", "note": "correction"}, bearer)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "200", dataField(t, env, "balance"))

	status, _ = s.do(t, http.MethodPost, "/admin/wallets/"+player+"/status", map[string]any{"active": false}, bearer)
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.do(t, http.MethodGet, "/admin/wallets/"+player, nil, bearer)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, dataField(t, env, "is_active"))

	status, env = s.do(t, http.MethodPost, "/admin/bonus/templates", map[string]any{
		"code": "welcome", "name": "Welcome", "amount": "100", "wagering_multiplier": "5", "duration_hours": 24,
	}, bearer)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "WELCOME", dataField(t, env, "code"))

	status, env = s.do(t, http.MethodGet, "/admin/transactions?player_id="+player, nil, bearer)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, dataField(t, env, "count"))

	status, env = s.do(t, http.MethodGet, "/admin/security-logs", nil, bearer)
	require.Equal(t, fiber.StatusOK, status)
	// login_failed, login, two adjustments, status change and template creation.
	assert.EqualValues(t, 6, dataField(t, env, "count"))
}

func TestAdminLoginRateLimited(t *testing.T) {
	s := newServer(t, 2)

	for i := 0; i < 2; i++ {
		status, _ := s.do(t, http.MethodPost, "/admin/login", map[string]any{"username": "ops", "password": "whatever1"}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, status)
	}
	status, env := s.do(t, http.MethodPost, "/admin/login", map[string]any{"username": "ops", "password": "whatever1"}, nil)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Message)
}
