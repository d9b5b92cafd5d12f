package catalog

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/outlink-dev/outlink/internal/domain"
)

// q URL-encodes user-supplied search text.
func q(ctx domain.LinkContext) string {
	return url.QueryEscape(ctx.SearchText())
}

// intentURL builds an Android intent URI with a browser fallback, so an
// unmatched intent degrades to the web link inside the OS intent
// resolution mechanism instead of dead-ending.
func intentURL(path, scheme, pkg, fallback string) string {
	u := "intent://" + path + "#Intent;"
	if scheme != "" {
		u += "scheme=" + scheme + ";"
	}
	u += "package=" + pkg + ";"
	if fallback != "" {
		u += "S.browser_fallback_url=" + url.QueryEscape(fallback) + ";"
	}
	return u + "end"
}

var (
	builtinOnce sync.Once
	builtinReg  *Registry
)

// Builtin returns the process-wide static provider registry. It is
// constructed once and never mutated.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtinReg = MustNewRegistry(builtinProviders())
	})
	return builtinReg
}

func builtinProviders() []*ProviderDefinition {
	return []*ProviderDefinition{
		// ── CN ──────────────────────────────────────────────────────

		{
			ID:          "baidu",
			DisplayName: DisplayName{ZH: "百度", EN: "Baidu"},
			Domains:     []string{"baidu.com", "www.baidu.com", "m.baidu.com"},
			Schemes:     []string{"baiduboxapp"},
			HasApp:      true, AndroidPackageID: "com.baidu.searchbox",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.baidu.com/s?wd=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "baiduboxapp://v1/easybrowse/search?word=" + q(ctx)
			},
		},
		{
			ID:          "taobao",
			DisplayName: DisplayName{ZH: "淘宝", EN: "Taobao"},
			Domains:     []string{"taobao.com", "s.taobao.com", "m.taobao.com"},
			Schemes:     []string{"taobao"},
			HasApp:      true, AndroidPackageID: "com.taobao.taobao",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://s.taobao.com/search?q=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "taobao://s.taobao.com/search?q=" + q(ctx)
			},
			AndroidScheme: func(ctx domain.LinkContext) string {
				return intentURL("s.taobao.com/search?q="+q(ctx), "taobao",
					"com.taobao.taobao", "https://s.taobao.com/search?q="+q(ctx))
			},
		},
		{
			ID:          "jd",
			DisplayName: DisplayName{ZH: "京东", EN: "JD.com"},
			Domains:     []string{"jd.com", "search.jd.com", "m.jd.com"},
			Schemes:     []string{"openapp.jdmobile"},
			HasApp:      true, AndroidPackageID: "com.jingdong.app.mall",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://search.jd.com/Search?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return fmt.Sprintf(
					`openapp.jdmobile://virtual?params={"category":"jump","des":"productList","keyWord":"%s"}`,
					q(ctx))
			},
		},
		{
			ID:          "pinduoduo",
			DisplayName: DisplayName{ZH: "拼多多", EN: "Pinduoduo"},
			Domains:     []string{"pinduoduo.com", "yangkeduo.com", "mobile.yangkeduo.com"},
			Schemes:     []string{"pinduoduo"},
			HasApp:      true, AndroidPackageID: "com.xunmeng.pinduoduo",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://mobile.yangkeduo.com/search_result.html?search_key=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "pinduoduo://com.xunmeng.pinduoduo/search_result.html?search_key=" + q(ctx)
			},
		},
		{
			ID:          "meituan",
			DisplayName: DisplayName{ZH: "美团", EN: "Meituan"},
			Domains:     []string{"meituan.com", "i.meituan.com", "www.meituan.com"},
			Schemes:     []string{"imeituan"},
			HasApp:      true, AndroidPackageID: "com.sankuai.meituan",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://i.meituan.com/s/?w=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "imeituan://www.meituan.com/search?q=" + q(ctx)
			},
			AndroidScheme: func(ctx domain.LinkContext) string {
				return intentURL("www.meituan.com/search?q="+q(ctx), "imeituan",
					"com.sankuai.meituan", "https://i.meituan.com/s/?w="+q(ctx))
			},
		},
		{
			ID:          "eleme",
			DisplayName: DisplayName{ZH: "饿了么", EN: "Eleme"},
			Domains:     []string{"ele.me", "www.ele.me", "h5.ele.me"},
			Schemes:     []string{"eleme"},
			HasApp:      true, AndroidPackageID: "me.ele",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.ele.me/search?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "eleme://search?keyword=" + q(ctx)
			},
		},
		{
			ID:          "dianping",
			DisplayName: DisplayName{ZH: "大众点评", EN: "Dianping"},
			Domains:     []string{"dianping.com", "www.dianping.com", "m.dianping.com"},
			Schemes:     []string{"dianping"},
			HasApp:      true, AndroidPackageID: "com.dianping.v1",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://m.dianping.com/search/keyword/" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "dianping://searchshoplist?keyword=" + q(ctx)
			},
		},
		{
			ID:          "douyin",
			DisplayName: DisplayName{ZH: "抖音", EN: "Douyin"},
			Domains:     []string{"douyin.com", "www.douyin.com"},
			Schemes:     []string{"snssdk1128"},
			HasApp:      true, AndroidPackageID: "com.ss.android.ugc.aweme",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.douyin.com/search/" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "snssdk1128://search?keyword=" + q(ctx)
			},
			AndroidScheme: func(ctx domain.LinkContext) string {
				return intentURL("search?keyword="+q(ctx), "snssdk1128",
					"com.ss.android.ugc.aweme", "https://www.douyin.com/search/"+q(ctx))
			},
		},
		{
			ID:          "xiaohongshu",
			DisplayName: DisplayName{ZH: "小红书", EN: "Xiaohongshu"},
			Domains:     []string{"xiaohongshu.com", "www.xiaohongshu.com"},
			Schemes:     []string{"xhsdiscover"},
			HasApp:      true, AndroidPackageID: "com.xingin.xhs",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.xiaohongshu.com/search_result?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "xhsdiscover://search/result?keyword=" + q(ctx)
			},
		},
		{
			ID:          "bilibili",
			DisplayName: DisplayName{ZH: "哔哩哔哩", EN: "Bilibili"},
			Domains:     []string{"bilibili.com", "www.bilibili.com", "search.bilibili.com", "m.bilibili.com"},
			Schemes:     []string{"bilibili"},
			HasApp:      true, AndroidPackageID: "tv.danmaku.bili",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://search.bilibili.com/all?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "bilibili://search?keyword=" + q(ctx)
			},
			AndroidScheme: func(ctx domain.LinkContext) string {
				return intentURL("search?keyword="+q(ctx), "bilibili",
					"tv.danmaku.bili", "https://search.bilibili.com/all?keyword="+q(ctx))
			},
		},
		{
			ID:          "amap",
			DisplayName: DisplayName{ZH: "高德地图", EN: "Amap"},
			Domains:     []string{"amap.com", "www.amap.com", "uri.amap.com"},
			Schemes:     []string{"iosamap", "androidamap"},
			HasApp:      true, AndroidPackageID: "com.autonavi.minimap",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://uri.amap.com/search?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "iosamap://poi?sourceApplication=outlink&keywords=" + q(ctx)
			},
			AndroidScheme: func(ctx domain.LinkContext) string {
				return "androidamap://poi?sourceApplication=outlink&keywords=" + q(ctx)
			},
		},
		{
			ID:          "ctrip",
			DisplayName: DisplayName{ZH: "携程", EN: "Ctrip"},
			Domains:     []string{"ctrip.com", "www.ctrip.com", "m.ctrip.com"},
			Schemes:     []string{"ctrip"},
			HasApp:      true, AndroidPackageID: "ctrip.android.view",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://m.ctrip.com/html5/you/search.html?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "ctrip://wireless/destination_search?keyword=" + q(ctx)
			},
		},
		{
			ID:          "keep",
			DisplayName: DisplayName{ZH: "Keep", EN: "Keep"},
			Domains:     []string{"gotokeep.com", "www.gotokeep.com"},
			Schemes:     []string{"keep"},
			HasApp:      true, AndroidPackageID: "com.gotokeep.keep",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.gotokeep.com/search?keyword=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "keep://search?keyword=" + q(ctx)
			},
		},
		{
			ID:          "weibo",
			DisplayName: DisplayName{ZH: "微博", EN: "Weibo"},
			Domains:     []string{"weibo.com", "s.weibo.com", "m.weibo.cn"},
			Schemes:     []string{"sinaweibo"},
			HasApp:      true, AndroidPackageID: "com.sina.weibo",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://s.weibo.com/weibo?q=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "sinaweibo://searchall?q=" + q(ctx)
			},
		},
		{
			ID:          "neteasemusic",
			DisplayName: DisplayName{ZH: "网易云音乐", EN: "NetEase Cloud Music"},
			Domains:     []string{"music.163.com"},
			Schemes:     []string{"orpheus"},
			HasApp:      true, AndroidPackageID: "com.netease.cloudmusic",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://music.163.com/#/search/m/?s=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "orpheus://search?keyword=" + q(ctx)
			},
		},

		// ── INTL ────────────────────────────────────────────────────

		{
			ID:          "google",
			DisplayName: DisplayName{ZH: "谷歌", EN: "Google"},
			Domains:     []string{"google.com", "www.google.com"},
			HasApp:      false,
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.google.com/search?q=" + q(ctx)
			},
		},
		{
			ID:          "youtube",
			DisplayName: DisplayName{ZH: "YouTube", EN: "YouTube"},
			Domains:     []string{"youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be"},
			Schemes:     []string{"youtube", "vnd.youtube"},
			HasApp:      true, AndroidPackageID: "com.google.android.youtube",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.youtube.com/results?search_query=" + q(ctx)
			},
			UniversalLink: func(ctx domain.LinkContext) string {
				return "https://www.youtube.com/results?search_query=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "youtube://results?search_query=" + q(ctx)
			},
		},
		{
			ID:          "tiktok",
			DisplayName: DisplayName{ZH: "TikTok", EN: "TikTok"},
			Domains:     []string{"tiktok.com", "www.tiktok.com"},
			Schemes:     []string{"snssdk1233", "snssdk1128"},
			HasApp:      true, AndroidPackageID: "com.zhiliaoapp.musically",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.tiktok.com/search?q=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "snssdk1233://search?keyword=" + q(ctx)
			},
			// Legacy scheme qualifier kept for older installs; the
			// launch engine rewrites it to a package-only intent on
			// Android versions where the qualified form misroutes.
			AndroidScheme: func(ctx domain.LinkContext) string {
				return intentURL("search?keyword="+q(ctx), "snssdk1128",
					"com.zhiliaoapp.musically", "https://www.tiktok.com/search?q="+q(ctx))
			},
		},
		{
			ID:          "amazon",
			DisplayName: DisplayName{ZH: "亚马逊", EN: "Amazon"},
			Domains:     []string{"amazon.com", "www.amazon.com"},
			Schemes:     []string{"com.amazon.mobile.shopping"},
			HasApp:      true, AndroidPackageID: "com.amazon.mShop.android.shopping",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.amazon.com/s?k=" + q(ctx)
			},
			UniversalLink: func(ctx domain.LinkContext) string {
				return "https://www.amazon.com/s?k=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "com.amazon.mobile.shopping://www.amazon.com/s?k=" + q(ctx)
			},
		},
		{
			ID:          "instagram",
			DisplayName: DisplayName{ZH: "Instagram", EN: "Instagram"},
			Domains:     []string{"instagram.com", "www.instagram.com"},
			Schemes:     []string{"instagram"},
			HasApp:      true, AndroidPackageID: "com.instagram.android",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.instagram.com/explore/search/keyword/?q=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "instagram://tag?name=" + q(ctx)
			},
		},
		{
			ID:          "spotify",
			DisplayName: DisplayName{ZH: "Spotify", EN: "Spotify"},
			Domains:     []string{"spotify.com", "open.spotify.com"},
			Schemes:     []string{"spotify"},
			HasApp:      true, AndroidPackageID: "com.spotify.music",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://open.spotify.com/search/" + q(ctx)
			},
			UniversalLink: func(ctx domain.LinkContext) string {
				return "https://open.spotify.com/search/" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "spotify://search/" + q(ctx)
			},
		},
		{
			ID:          "googlemaps",
			DisplayName: DisplayName{ZH: "谷歌地图", EN: "Google Maps"},
			Domains:     []string{"google.com", "www.google.com", "maps.google.com"},
			Schemes:     []string{"comgooglemaps"},
			HasApp:      true, AndroidPackageID: "com.google.android.apps.maps",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.google.com/maps/search/?api=1&query=" + q(ctx)
			},
			UniversalLink: func(ctx domain.LinkContext) string {
				return "https://www.google.com/maps/search/?api=1&query=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "comgooglemaps://?q=" + q(ctx)
			},
		},
		{
			ID:          "tripadvisor",
			DisplayName: DisplayName{ZH: "猫途鹰", EN: "Tripadvisor"},
			Domains:     []string{"tripadvisor.com", "www.tripadvisor.com"},
			HasApp:      true, AndroidPackageID: "com.tripadvisor.tripadvisor",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.tripadvisor.com/Search?q=" + q(ctx)
			},
		},
		{
			ID:          "booking",
			DisplayName: DisplayName{ZH: "缤客", EN: "Booking.com"},
			Domains:     []string{"booking.com", "www.booking.com"},
			Schemes:     []string{"booking"},
			HasApp:      true, AndroidPackageID: "com.booking",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.booking.com/searchresults.html?ss=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "booking://hotels?query=" + q(ctx)
			},
		},
		{
			ID:          "airbnb",
			DisplayName: DisplayName{ZH: "爱彼迎", EN: "Airbnb"},
			Domains:     []string{"airbnb.com", "www.airbnb.com"},
			Schemes:     []string{"airbnb"},
			HasApp:      true, AndroidPackageID: "com.airbnb.android",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.airbnb.com/s/" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "airbnb://d/search?query=" + q(ctx)
			},
		},
		{
			ID:          "expedia",
			DisplayName: DisplayName{ZH: "亿客行", EN: "Expedia"},
			Domains:     []string{"expedia.com", "www.expedia.com"},
			HasApp:      true, AndroidPackageID: "com.expedia.bookings",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.expedia.com/Hotel-Search?destination=" + q(ctx)
			},
		},
		{
			ID:          "ntc",
			DisplayName: DisplayName{ZH: "Nike Training Club", EN: "Nike Training Club"},
			Domains:     []string{"nike.com", "www.nike.com"},
			Schemes:     []string{"niketrainingclub"},
			HasApp:      true, AndroidPackageID: "com.nike.ntc",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.nike.com/ntc-app"
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "niketrainingclub://x-callback-url/search?query=" + q(ctx)
			},
		},
		{
			ID:          "ubereats",
			DisplayName: DisplayName{ZH: "Uber Eats", EN: "Uber Eats"},
			Domains:     []string{"ubereats.com", "www.ubereats.com"},
			Schemes:     []string{"ubereats"},
			HasApp:      true, AndroidPackageID: "com.ubercab.eats",
			WebLink: func(ctx domain.LinkContext) string {
				return "https://www.ubereats.com/search?q=" + q(ctx)
			},
			IOSScheme: func(ctx domain.LinkContext) string {
				return "ubereats://search?q=" + q(ctx)
			},
		},
	}
}
