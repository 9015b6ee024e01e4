package casino

import (
	"encoding/base64"
	"net/url"

	"gamewallet/providers"
)

// Evolution live tables are real-money only.
type Evolution struct{}

func (e *Evolution) SupportsDemo() bool { return false }

func (e *Evolution) LaunchURL(req providers.LaunchRequest, ep providers.Endpoint) (string, error) {
	params := url.Values{}
	params.Set("game", req.GameID)
	params.Set("language", req.Language)
	params.Set("player", req.PlayerID)
	if req.Currency != "" {
		params.Set("currency", req.Currency)
	}
	if req.Platform == providers.PlatformMobile {
		params.Set("channel", "mobile")
	}

	q := url.Values{}
	q.Set("params", base64.StdEncoding.EncodeToString([]byte(params.Encode())))
	q.Set("JSESSIONID", req.Token)
	if ep.OperatorID != "" {
		q.Set("casino", ep.OperatorID)
	}

	return ep.BaseURL + "/entry?" + q.Encode(), nil
}

func init() {
	providers.RegisterProvider("EVOLUTION", &Evolution{}, providers.Endpoint{})
}
