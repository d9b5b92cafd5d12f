package engine

import "testing"

const (
	uaIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
	uaAndroid = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36"
	uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

func TestDetectOS(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want OS
	}{
		{"iphone", uaIPhone, OSIOS},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", OSIOS},
		{"ipod", "Mozilla/5.0 (iPod touch; CPU iPhone OS 15_0 like Mac OS X)", OSIOS},
		{"android", uaAndroid, OSAndroid},
		{"desktop", uaDesktop, OSOther},
		{"empty", "", OSOther},
		{"case insensitive", "MOZILLA/5.0 (IPHONE)", OSIOS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectOS(tt.ua); got != tt.want {
				t.Errorf("DetectOS(%q) = %v, want %v", tt.ua, got, tt.want)
			}
		})
	}
}

func TestDetectPlatformInApp(t *testing.T) {
	tests := []struct {
		name      string
		ua        string
		appFlag   bool
		bridges   []string
		wantInApp bool
	}{
		{"plain browser", uaAndroid, false, nil, false},
		{"explicit app flag", uaAndroid, true, nil, true},
		{"known bridge", uaAndroid, false, []string{"ReactNativeWebView"}, true},
		{"webkit handler bridge", uaIPhone, false, []string{"webkit.messageHandlers.native"}, true},
		{"unknown bridge", uaAndroid, false, []string{"SomeOtherGlobal"}, false},
		{"wechat wrapper ua", uaAndroid + " MicroMessenger/8.0", false, nil, true},
		{"own wrapper ua", uaIPhone + " outlink-app/1.2", false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DetectPlatform(tt.ua, tt.appFlag, tt.bridges, false)
			if p.InApp != tt.wantInApp {
				t.Errorf("InApp = %v, want %v", p.InApp, tt.wantInApp)
			}
			if p.UserAgent != tt.ua {
				t.Errorf("UserAgent not carried through")
			}
		})
	}
}
