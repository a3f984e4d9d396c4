package entity

// CourseSummary is the projection of a course as served by the external
// catalog service. It is never persisted here; every listing call rebuilds it
// from the wire response.
type CourseSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ImageURL      string `json:"imageUrl"`
	Price         string `json:"price"`
	DiscountPrice string `json:"discountPrice"`
	Hours         string `json:"hours"`
	LikesPercent  string `json:"likesInProcent"`
	LikesCount    string `json:"likesInNumbers"`
	IsBestseller  bool   `json:"isBestseller"`
}
