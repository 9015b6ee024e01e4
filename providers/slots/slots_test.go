package slots

import (
	"net/url"
	"testing"

	"gamewallet/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	providers.SetEndpoint("gitslotpark", providers.Endpoint{BaseURL: "https://gsp.example.com", OperatorID: "AG01"})
	providers.SetEndpoint("pragmatic", providers.Endpoint{BaseURL: "https://pp.example.com", OperatorID: "casino", LobbyURL: "https://lobby.example.com"})
	providers.SetEndpoint("spadegaming", providers.Endpoint{BaseURL: "https://sg.example.com", OperatorID: "MER1"})
}

func TestGitSlotParkLaunch(t *testing.T) {
	got, err := providers.BuildLaunchURL(providers.LaunchRequest{
		ProviderID: "gitslotpark",
		GameID:     "fortune-tiger",
		PlayerID:   "0abc_alice",
		Mode:       "real",
		Currency:   "idr",
		Language:   "id",
		Token:      "tok-1",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"https://gsp.example.com/game/launch?agentID=AG01&currency=IDR&gameID=fortune-tiger&lang=id&mode=real&token=tok-1&userID=0abc_alice",
		got)

	demo, err := providers.BuildLaunchURL(providers.LaunchRequest{
		ProviderID: "gitslotpark",
		GameID:     "fortune-tiger",
		PlayerID:   "0abc_alice",
		Mode:       "demo",
	})
	require.NoError(t, err)
	u, err := url.Parse(demo)
	require.NoError(t, err)
	assert.Equal(t, "demo", u.Query().Get("mode"))
	assert.Empty(t, u.Query().Get("token"))
	assert.Empty(t, u.Query().Get("userID"))
	assert.Equal(t, "en", u.Query().Get("lang"))
}

func TestPragmaticLaunch(t *testing.T) {
	t.Run("real", func(t *testing.T) {
		got, err := providers.BuildLaunchURL(providers.LaunchRequest{
			ProviderID: "PRAGMATIC",
			GameID:     "vs20olympgate",
			PlayerID:   "p1",
			Currency:   "USD",
			Language:   "en",
			Platform:   "mobile",
			Token:      "tok-2",
		})
		require.NoError(t, err)

		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "/gs2c/playGame.do", u.Path)
		assert.Equal(t, "casino", u.Query().Get("stylename"))

		key, err := url.ParseQuery(u.Query().Get("key"))
		require.NoError(t, err)
		assert.Equal(t, "tok-2", key.Get("token"))
		assert.Equal(t, "vs20olympgate", key.Get("symbol"))
		assert.Equal(t, "MOBILE", key.Get("platform"))
		assert.Equal(t, "https://lobby.example.com", key.Get("lobbyUrl"))
	})

	t.Run("demo", func(t *testing.T) {
		got, err := providers.BuildLaunchURL(providers.LaunchRequest{
			ProviderID: "pragmatic",
			GameID:     "vs20olympgate",
			Mode:       "demo",
			Currency:   "eur",
		})
		require.NoError(t, err)
		assert.Equal(t,
			"https://pp.example.com/gs2c/openGame.do?cur=EUR&gameSymbol=vs20olympgate&jurisdiction=99&lang=en&lobbyUrl=https%3A%2F%2Flobby.example.com",
			got)
	})
}

func TestSpadeGamingLaunch(t *testing.T) {
	got, err := providers.BuildLaunchURL(providers.LaunchRequest{
		ProviderID: "spadegaming",
		GameID:     "S-DG03",
		PlayerID:   "p1",
		Language:   "th-TH",
		Token:      "tok-3",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"https://sg.example.com/MER1/auth/?acctId=p1&fun=false&game=S-DG03&language=th_TH&mobile=false&token=tok-3",
		got)

	demo, err := providers.BuildLaunchURL(providers.LaunchRequest{
		ProviderID: "spadegaming",
		GameID:     "S-DG03",
		Mode:       "demo",
		Language:   "xx",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://sg.example.com/MER1/auth/?fun=true&game=S-DG03&language=en_US&mobile=false", demo)
}
