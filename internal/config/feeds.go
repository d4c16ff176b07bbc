package config

// Default feed tables for Pakistani news sources. Overridable from the
// config file; kept here so a bare config still produces broadcasts.

var defaultEnglishFeeds = map[string][]string{
	"general": {
		"https://www.dawn.com/feeds/latest",
		"https://www.thenews.com.pk/rss/1/1",
		"https://www.geo.tv/rss/1/1",
		"https://www.brecorder.com/feed/",
	},
	"business": {
		"https://profit.pakistantoday.com.pk/feed/",
		"https://www.brecorder.com/feed/",
		"https://tribune.com.pk/business/feed/",
		"https://www.pakistantoday.com.pk/business/feed/",
		"https://www.dawn.com/business/feed",
	},
	"sports": {
		"https://cricketpakistan.com.pk/rss/news",
		"https://www.geo.tv/rss/sports/1",
		"https://www.thenews.com.pk/rss/1/8",
		"https://www.samaa.tv/sports/feed/",
		"https://tribune.com.pk/sports/feed/",
	},
	"technology": {
		"https://propakistani.pk/feed/",
		"https://www.techjuice.pk/feed/",
		"https://en.dailypakistan.com.pk/technology/feed/",
		"https://www.suchtv.pk/technology/feed/index.rss",
		"https://www.phoneworld.com.pk/feed/",
	},
}

var defaultUrduFeeds = map[string][]string{
	"general": {
		"https://www.bbc.com/urdu/topics/cjgn7n9zzq7t.rss",
		"https://urdu.arynews.tv/feed/",
		"https://www.independenturdu.com/rss",
		"https://www.express.pk/feed",
		"https://jang.com.pk/rss",
	},
	"business": {
		"https://www.bbc.com/urdu/topics/c340q0p2585t.rss",
		"https://www.urdupoint.com/business.feed",
		"https://www.express.pk/feed",
		"https://urdu.arynews.tv/feed/",
		"https://jang.com.pk/rss",
	},
	"sports": {
		"https://www.bbc.com/urdu/topics/cg726y985v5t.rss",
		"https://www.urdupoint.com/sports.feed",
		"https://www.express.pk/feed",
		"https://urdu.arynews.tv/feed/",
		"https://jang.com.pk/rss",
	},
	"technology": {
		"https://www.bbc.com/urdu/topics/ckdxnw9n82dt.rss",
		"https://www.urdupoint.com/technology.feed",
		"https://www.express.pk/feed",
		"https://urdu.arynews.tv/feed/",
		"https://jang.com.pk/rss",
	},
}
