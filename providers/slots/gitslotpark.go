package slots

import (
	"net/url"

	"gamewallet/providers"
)

// GitSlotPark is the aggregator whose seamless callbacks land on /seamless/gitslotpark.
type GitSlotPark struct{}

func (g *GitSlotPark) SupportsDemo() bool { return true }

func (g *GitSlotPark) LaunchURL(req providers.LaunchRequest, ep providers.Endpoint) (string, error) {
	q := url.Values{}
	q.Set("agentID", ep.OperatorID)
	q.Set("gameID", req.GameID)
	q.Set("mode", req.Mode)
	q.Set("lang", req.Language)
	if req.Currency != "" {
		q.Set("currency", req.Currency)
	}
	if req.Mode == providers.ModeReal {
		q.Set("userID", req.PlayerID)
		q.Set("token", req.Token)
	}
	if ep.LobbyURL != "" {
		q.Set("lobbyURL", ep.LobbyURL)
	}

	return ep.BaseURL + "/game/launch?" + q.Encode(), nil
}

func init() {
	providers.RegisterProvider("GITSLOTPARK", &GitSlotPark{}, providers.Endpoint{})
}
