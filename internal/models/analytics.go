package models

type Overview struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalPosts       int64 `json:"totalPosts"`
	TotalConnections int64 `json:"totalConnections"`
	ActiveUsers      int64 `json:"activeUsers"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Users int64  `json:"users"`
}

type EngagementStats struct {
	AvgLikes      float64 `json:"avgLikes"`
	AvgComments   float64 `json:"avgComments"`
	AvgShares     float64 `json:"avgShares"`
	TotalLikes    int64   `json:"totalLikes"`
	TotalComments int64   `json:"totalComments"`
	TotalShares   int64   `json:"totalShares"`
}

type Dashboard struct {
	Overview   Overview        `json:"overview"`
	UserGrowth []DailyCount    `json:"userGrowth"`
	Engagement EngagementStats `json:"engagement"`
}

type DailyEngagement struct {
	Date            string `json:"date"`
	TotalEngagement int64  `json:"totalEngagement"`
	PostCount       int64  `json:"postCount"`
}

type DailyViews struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

type PersonalSummary struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	TotalShares   int64 `json:"totalShares"`
	ProfileViews  int   `json:"profileViews"`
}

type PersonalAnalytics struct {
	EngagementOverTime []DailyEngagement `json:"engagementOverTime"`
	TopPosts           []PostView        `json:"topPosts"`
	ProfileViews       []DailyViews      `json:"profileViews"`
	Summary            PersonalSummary   `json:"summary"`
}
