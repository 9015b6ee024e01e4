package slots

import (
	"net/url"

	"gamewallet/providers"
)

type Pragmatic struct{}

func (p *Pragmatic) SupportsDemo() bool { return true }

func (p *Pragmatic) LaunchURL(req providers.LaunchRequest, ep providers.Endpoint) (string, error) {
	if req.Mode == providers.ModeDemo {
		q := url.Values{}
		q.Set("gameSymbol", req.GameID)
		q.Set("lang", req.Language)
		q.Set("jurisdiction", "99")
		if req.Currency != "" {
			q.Set("cur", req.Currency)
		}
		if ep.LobbyURL != "" {
			q.Set("lobbyUrl", ep.LobbyURL)
		}
		return ep.BaseURL + "/gs2c/openGame.do?" + q.Encode(), nil
	}

	platform := "WEB"
	if req.Platform == providers.PlatformMobile {
		platform = "MOBILE"
	}

	key := url.Values{}
	key.Set("token", req.Token)
	key.Set("symbol", req.GameID)
	key.Set("technology", "H5")
	key.Set("platform", platform)
	key.Set("language", req.Language)
	if ep.LobbyURL != "" {
		key.Set("lobbyUrl", ep.LobbyURL)
		key.Set("cashierUrl", ep.LobbyURL)
	}

	q := url.Values{}
	q.Set("key", key.Encode())
	q.Set("stylename", ep.OperatorID)

	return ep.BaseURL + "/gs2c/playGame.do?" + q.Encode(), nil
}

func init() {
	providers.RegisterProvider("PRAGMATIC", &Pragmatic{}, providers.Endpoint{})
}
