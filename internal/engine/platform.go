package engine

import "strings"

// OS is the mobile operating system a request originates from.
type OS string

const (
	OSIOS     OS = "ios"
	OSAndroid OS = "android"
	OSOther   OS = "other"
)

// Native bridge globals injected by known in-app containers. The
// landing runtime reports which of these exist; their presence means
// location.href navigation behaves differently than in a plain mobile
// browser and some containers need an anchor-click simulation instead.
var knownBridges = map[string]bool{
	"ReactNativeWebView":             true,
	"webkit.messageHandlers.native":  true,
	"AndroidBridge":                  true,
	"JSBridge":                       true,
}

// User-agent fragments of known WebView wrapper apps.
var wrapperSignatures = []string{
	"micromessenger",
	"outlink-app",
}

// Platform is the ambient environment of one landing-page load,
// computed once at entry and passed explicitly to all downstream logic
// so the selection and sanitization algorithms stay pure.
type Platform struct {
	OS           OS
	InApp        bool
	UserAgent    string
	DeploymentCN bool // deployment-wide hint: true for the Chinese-mainland deployment
}

// DetectOS sniffs the operating system from a user-agent string.
func DetectOS(userAgent string) OS {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return OSIOS
	case strings.Contains(ua, "android"):
		return OSAndroid
	}
	return OSOther
}

// DetectPlatform computes the platform capabilities value.
// appFlag is the "?app=1" query flag; bridges are the names of injected
// globals the landing runtime found present.
func DetectPlatform(userAgent string, appFlag bool, bridges []string, deploymentCN bool) Platform {
	return Platform{
		OS:           DetectOS(userAgent),
		InApp:        isInAppContainer(userAgent, appFlag, bridges),
		UserAgent:    userAgent,
		DeploymentCN: deploymentCN,
	}
}

func isInAppContainer(userAgent string, appFlag bool, bridges []string) bool {
	if appFlag {
		return true
	}
	for _, b := range bridges {
		if knownBridges[b] {
			return true
		}
	}
	ua := strings.ToLower(userAgent)
	for _, sig := range wrapperSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}
