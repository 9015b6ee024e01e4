package providers

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrInvalidMode         = errors.New("mode must be real or demo")
	ErrTokenRequired       = errors.New("real mode requires a session token")
	ErrDemoUnsupported     = errors.New("provider does not offer demo play")
	ErrGameRequired        = errors.New("game id is required")
	ErrEndpointMissing     = errors.New("provider endpoint not configured")
)

const (
	ModeReal = "real"
	ModeDemo = "demo"

	PlatformDesktop = "desktop"
	PlatformMobile  = "mobile"
)

type LaunchRequest struct {
	ProviderID string `json:"provider_id"`
	GameID     string `json:"game_id"`
	PlayerID   string `json:"player_id"`
	Mode       string `json:"mode"`
	Currency   string `json:"currency"`
	Language   string `json:"language"`
	Platform   string `json:"platform"`
	Token      string `json:"-"`
}

// Endpoint is where a provider hosts its game client.
type Endpoint struct {
	BaseURL    string
	OperatorID string
	LobbyURL   string
}

// GameProviderLauncher composes a launch URL. Implementations must not do I/O.
type GameProviderLauncher interface {
	LaunchURL(req LaunchRequest, ep Endpoint) (string, error)
	SupportsDemo() bool
}

var (
	mu            sync.RWMutex
	GameLaunchers = map[string]GameProviderLauncher{}
	endpoints     = map[string]Endpoint{}
)

func RegisterProvider(name string, launcher GameProviderLauncher, defaults Endpoint) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(name)
	GameLaunchers[key] = launcher
	endpoints[key] = defaults
}

func GetProvider(name string) GameProviderLauncher {
	mu.RLock()
	defer mu.RUnlock()
	return GameLaunchers[strings.ToLower(name)]
}

// SetEndpoint overrides the non-empty fields of a provider's endpoint.
func SetEndpoint(name string, ep Endpoint) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(name)
	cur := endpoints[key]
	if ep.BaseURL != "" {
		cur.BaseURL = strings.TrimRight(ep.BaseURL, "/")
	}
	if ep.OperatorID != "" {
		cur.OperatorID = ep.OperatorID
	}
	if ep.LobbyURL != "" {
		cur.LobbyURL = ep.LobbyURL
	}
	endpoints[key] = cur
}

func endpointFor(name string) Endpoint {
	mu.RLock()
	defer mu.RUnlock()
	return endpoints[strings.ToLower(name)]
}

// Normalize fills defaults and canonicalises casing.
func Normalize(req LaunchRequest) LaunchRequest {
	req.ProviderID = strings.ToLower(strings.TrimSpace(req.ProviderID))
	req.GameID = strings.TrimSpace(req.GameID)
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if req.Mode == "" {
		req.Mode = ModeReal
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	if req.Language == "" {
		req.Language = "en"
	}
	req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	if req.Platform != PlatformMobile {
		req.Platform = PlatformDesktop
	}
	return req
}

// BuildLaunchURL validates the request and delegates to the registered launcher.
func BuildLaunchURL(req LaunchRequest) (string, error) {
	req = Normalize(req)

	launcher := GetProvider(req.ProviderID)
	if launcher == nil {
		return "", ErrUnsupportedProvider
	}
	if req.GameID == "" {
		return "", ErrGameRequired
	}

	switch req.Mode {
	case ModeReal:
		if req.Token == "" {
			return "", ErrTokenRequired
		}
	case ModeDemo:
		if !launcher.SupportsDemo() {
			return "", ErrDemoUnsupported
		}
	default:
		return "", ErrInvalidMode
	}

	ep := endpointFor(req.ProviderID)
	if ep.BaseURL == "" {
		return "", ErrEndpointMissing
	}

	launchURL, err := launcher.LaunchURL(req, ep)
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(launchURL, "//") {
		launchURL = "https:" + launchURL
	}
	return launchURL, nil
}
