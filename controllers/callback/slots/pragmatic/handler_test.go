package pragmatic

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gamewallet/database/dbtest"
	"gamewallet/helpers"
	"gamewallet/models"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "pp-secret"

func newApp(t *testing.T) (*fiber.App, *services.WalletService, *gorm.DB) {
	t.Helper()
	return newAppWithSecret(t, testSecret)
}

func newAppWithSecret(t *testing.T, secret string) (*fiber.App, *services.WalletService, *gorm.DB) {
	t.Helper()

	db := dbtest.New(t)
	wallets := services.NewWalletService(db, nil)
	sessions := services.NewSessionService(db, wallets, 0)
	require.NoError(t, wallets.CreateWallet(context.Background(), &models.Wallet{
		PlayerID:  "op_alice",
		AgentCode: "OP",
		Country:   "ID",
		Currency:  "IDR",
		Balance:   decimal.NewFromInt(1000),
	}))

	h := NewHandler(wallets, sessions, services.NewCallbackAuditor(db), secret)
	app := fiber.New()
	app.Post("/authenticate", h.Authenticate)
	app.Post("/balance", h.Balance)
	app.Post("/bet", h.Bet)
	app.Post("/result", h.Result)
	app.Post("/refund", h.Refund)
	return app, wallets, db
}

func call(t *testing.T, app *fiber.App, path string, params map[string]string) response {
	t.Helper()
	return callWithSecret(t, app, path, params, testSecret)
}

func callWithSecret(t *testing.T, app *fiber.App, path string, params map[string]string, secret string) response {
	t.Helper()

	params["providerId"] = "pragmaticplay"
	params["hash"] = helpers.PragmaticHash(params, secret)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var out response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestBetResultRefund(t *testing.T) {
	app, _, _ := newApp(t)

	bet := map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "200", "reference": "b1"}
	resp := call(t, app, "/bet", bet)
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, 800.0, resp.Cash)
	assert.Equal(t, "IDR", resp.Currency)
	assert.NotEmpty(t, resp.TransactionID)

	replay := call(t, app, "/bet", map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "200", "reference": "b1"})
	assert.Equal(t, errSuccess, replay.Error)
	assert.Equal(t, 800.0, replay.Cash)
	assert.Equal(t, resp.TransactionID, replay.TransactionID)

	resp = call(t, app, "/result", map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "50", "reference": "w1"})
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, 850.0, resp.Cash)

	resp = call(t, app, "/refund", map[string]string{"userId": "op_alice", "reference": "b1"})
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, 1050.0, resp.Cash)

	// Refunding again, or refunding an unknown bet, is acknowledged without moving money.
	resp = call(t, app, "/refund", map[string]string{"userId": "op_alice", "reference": "b1"})
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, 1050.0, resp.Cash)

	resp = call(t, app, "/refund", map[string]string{"userId": "op_alice", "reference": "never-placed"})
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, 1050.0, resp.Cash)
}

func TestBetFailures(t *testing.T) {
	app, wallets, _ := newApp(t)

	resp := call(t, app, "/bet", map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "5000", "reference": "b1"})
	assert.Equal(t, errInsufficient, resp.Error)
	assert.Equal(t, descriptions[errInsufficient], resp.Description)

	resp = call(t, app, "/bet", map[string]string{"userId": "ghost", "gameId": "vs20", "roundId": "r1", "amount": "1", "reference": "b2"})
	assert.Equal(t, errPlayerNotFound, resp.Error)

	resp = call(t, app, "/bet", map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "abc", "reference": "b3"})
	assert.Equal(t, errBadParameters, resp.Error)

	resp = call(t, app, "/bet", map[string]string{"userId": "op_alice", "gameId": "vs20", "amount": "1", "reference": "b4"})
	assert.Equal(t, errBadParameters, resp.Error)

	resp = call(t, app, "/bet", map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "0.005", "reference": "b6"})
	assert.Equal(t, errBadParameters, resp.Error)

	require.NoError(t, wallets.SetStatus(context.Background(), "op_alice", false))
	resp = call(t, app, "/bet", map[string]string{"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "1", "reference": "b5"})
	assert.Equal(t, errPlayerFrozen, resp.Error)

	w, err := wallets.Find(context.Background(), "op_alice")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(w.Balance))
}

func TestBadHash(t *testing.T) {
	app, _, _ := newApp(t)

	form := url.Values{}
	form.Set("providerId", "pragmaticplay")
	form.Set("userId", "op_alice")
	form.Set("hash", "0000")

	req := httptest.NewRequest(fiber.MethodPost, "/balance", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	var out response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Equal(t, errBadHash, out.Error)
}

func TestEmptySecretRejectsCallbacks(t *testing.T) {
	app, wallets, _ := newAppWithSecret(t, "")

	resp := callWithSecret(t, app, "/result", map[string]string{
		"userId": "op_alice", "gameId": "vs20", "roundId": "r1", "amount": "5000", "reference": "forged",
	}, "")
	assert.Equal(t, errBadHash, resp.Error)

	resp = callWithSecret(t, app, "/balance", map[string]string{"userId": "op_alice"}, "")
	assert.Equal(t, errBadHash, resp.Error)

	w, err := wallets.Find(context.Background(), "op_alice")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(w.Balance))
}

func TestAuthenticateAndBalance(t *testing.T) {
	app, _, db := newApp(t)

	resp := call(t, app, "/authenticate", map[string]string{"token": "missing"})
	assert.Equal(t, errBadToken, resp.Error)

	session := models.GameSession{
		PlayerID:   "op_alice",
		ProviderID: "pragmatic",
		GameID:     "vs20",
		Mode:       models.ModeReal,
		Currency:   "IDR",
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&session).Error)

	resp = call(t, app, "/authenticate", map[string]string{"token": session.SID})
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, "op_alice", resp.UserID)
	assert.Equal(t, 1000.0, resp.Cash)

	other := models.GameSession{PlayerID: "op_alice", ProviderID: "gitslotpark", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&other).Error)
	resp = call(t, app, "/authenticate", map[string]string{"token": other.SID})
	assert.Equal(t, errBadToken, resp.Error)

	resp = call(t, app, "/balance", map[string]string{"userId": "op_alice"})
	assert.Equal(t, errSuccess, resp.Error)
	assert.Equal(t, 1000.0, resp.Cash)

	var logs int64
	require.NoError(t, db.Model(&models.CallbackLog{}).Where("provider = ?", Provider).Count(&logs).Error)
	assert.EqualValues(t, 4, logs)
}
