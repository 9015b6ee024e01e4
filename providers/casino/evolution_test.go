package casino

import (
	"encoding/base64"
	"net/url"
	"testing"

	"gamewallet/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvolutionLaunch(t *testing.T) {
	providers.SetEndpoint("evolution", providers.Endpoint{BaseURL: "https://evo.example.com", OperatorID: "casino1"})

	got, err := providers.BuildLaunchURL(providers.LaunchRequest{
		ProviderID: "evolution",
		GameID:     "lightningroulette",
		PlayerID:   "p1",
		Currency:   "usd",
		Token:      "sid-1",
	})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/entry", u.Path)
	assert.Equal(t, "sid-1", u.Query().Get("JSESSIONID"))
	assert.Equal(t, "casino1", u.Query().Get("casino"))

	raw, err := base64.StdEncoding.DecodeString(u.Query().Get("params"))
	require.NoError(t, err)
	params, err := url.ParseQuery(string(raw))
	require.NoError(t, err)
	assert.Equal(t, "lightningroulette", params.Get("game"))
	assert.Equal(t, "USD", params.Get("currency"))
	assert.Equal(t, "p1", params.Get("player"))

	_, err = providers.BuildLaunchURL(providers.LaunchRequest{
		ProviderID: "evolution",
		GameID:     "lightningroulette",
		Mode:       "demo",
	})
	assert.ErrorIs(t, err, providers.ErrDemoUnsupported)
}
