package request

// DateQuery selects one calendar day, today when empty
type DateQuery struct {
	Date string `form:"date"`
}

// RangeQuery selects an inclusive range of calendar days
type RangeQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}
