package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLauncher struct {
	demo bool
	got  LaunchRequest
}

func (s *stubLauncher) SupportsDemo() bool { return s.demo }

func (s *stubLauncher) LaunchURL(req LaunchRequest, ep Endpoint) (string, error) {
	s.got = req
	return "//" + ep.BaseURL[len("https://"):] + "/play?game=" + req.GameID, nil
}

func TestBuildLaunchURL(t *testing.T) {
	stub := &stubLauncher{}
	RegisterProvider("StubReal", stub, Endpoint{BaseURL: "https://stub.example.com"})
	RegisterProvider("stubnoendpoint", &stubLauncher{demo: true}, Endpoint{})

	t.Run("normalises request and protocol-relative url", func(t *testing.T) {
		got, err := BuildLaunchURL(LaunchRequest{
			ProviderID: " STUBREAL ",
			GameID:     "g1",
			PlayerID:   "p1",
			Currency:   "usd",
			Language:   "EN",
			Token:      "tok",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://stub.example.com/play?game=g1", got)
		assert.Equal(t, ModeReal, stub.got.Mode)
		assert.Equal(t, "USD", stub.got.Currency)
		assert.Equal(t, "en", stub.got.Language)
		assert.Equal(t, PlatformDesktop, stub.got.Platform)
	})

	tests := []struct {
		name string
		req  LaunchRequest
		want error
	}{
		{"unknown provider", LaunchRequest{ProviderID: "nope", GameID: "g", Token: "t"}, ErrUnsupportedProvider},
		{"missing game", LaunchRequest{ProviderID: "stubreal", Token: "t"}, ErrGameRequired},
		{"real without token", LaunchRequest{ProviderID: "stubreal", GameID: "g"}, ErrTokenRequired},
		{"demo unsupported", LaunchRequest{ProviderID: "stubreal", GameID: "g", Mode: "demo"}, ErrDemoUnsupported},
		{"bad mode", LaunchRequest{ProviderID: "stubreal", GameID: "g", Mode: "live"}, ErrInvalidMode},
		{"endpoint missing", LaunchRequest{ProviderID: "stubnoendpoint", GameID: "g", Mode: "demo"}, ErrEndpointMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLaunchURL(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSetEndpointKeepsUnsetFields(t *testing.T) {
	RegisterProvider("merge", &stubLauncher{}, Endpoint{BaseURL: "https://a.example.com", OperatorID: "op"})
	SetEndpoint("MERGE", Endpoint{BaseURL: "https://b.example.com/"})

	ep := endpointFor("merge")
	assert.Equal(t, "https://b.example.com", ep.BaseURL)
	assert.Equal(t, "op", ep.OperatorID)
}
