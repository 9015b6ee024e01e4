package slots

import (
	"net/url"
	"strconv"

	"gamewallet/providers"
)

var spadeLanguages = map[string]string{
	"en": "en_US",
	"id": "id_ID",
	"th": "th_TH",
	"vi": "vi_VN",
	"zh": "zh_CN",
	"ko": "ko_KR",
	"ja": "ja_JP",
}

type SpadeGaming struct{}

func (s *SpadeGaming) SupportsDemo() bool { return true }

func (s *SpadeGaming) LaunchURL(req providers.LaunchRequest, ep providers.Endpoint) (string, error) {
	demo := req.Mode == providers.ModeDemo

	q := url.Values{}
	q.Set("game", req.GameID)
	q.Set("language", spadeLanguage(req.Language))
	q.Set("fun", strconv.FormatBool(demo))
	q.Set("mobile", strconv.FormatBool(req.Platform == providers.PlatformMobile))
	if !demo {
		q.Set("acctId", req.PlayerID)
		q.Set("token", req.Token)
	}

	return ep.BaseURL + "/" + url.PathEscape(ep.OperatorID) + "/auth/?" + q.Encode(), nil
}

func spadeLanguage(lang string) string {
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if code, ok := spadeLanguages[lang]; ok {
		return code
	}
	return "en_US"
}

func init() {
	providers.RegisterProvider("SPADEGAMING", &SpadeGaming{}, providers.Endpoint{})
}
