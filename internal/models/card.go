package models

// Card is one agent's contribution to a day plan. Lower priority sorts
// earlier in the rendered plan.
type Card struct {
	Agent    string   `json:"agent"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Priority int      `json:"priority"`
	Data     CardData `json:"data"`
}

// Weather is a one-day forecast snapshot
type Weather struct {
	Location  string `json:"location"`
	Date      string `json:"date"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
}

// RouteInfo describes a commute option
type RouteInfo struct {
	Origin string   `json:"origin"`
	Dest   string   `json:"dest"`
	ETAMin int      `json:"eta_min"`
	Route  []string `json:"route"`
}

// Email is an inbox item surfaced by the work agents
type Email struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Due     string `json:"due,omitempty"`
}

// Ticket is an issue-tracker item
type Ticket struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Bill is an upcoming payment
type Bill struct {
	Name   string `json:"name"`
	Due    string `json:"due"`
	Amount int    `json:"amount"`
}

// Errand is a short out-of-house task
type Errand struct {
	Title       string `json:"title"`
	DurationMin int    `json:"duration_min"`
}

// Occasion is an upcoming birthday or anniversary
type Occasion struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	DaysLeft int    `json:"days_left"`
}

// MealPlan is a day of meal recommendations
type MealPlan struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snack     string `json:"snack"`
	Dinner    string `json:"dinner"`
	Hydration string `json:"hydration"`
}

// Per-agent card payloads

type InsightsData struct {
	Insights     []string      `json:"insights"`
	FocusWindows []FocusWindow `json:"focus_windows"`
	Load         DayLoad       `json:"load"`
	Role         string        `json:"role,omitempty"`
}

type BriefData struct {
	Events     []CalendarEvent `json:"events"`
	Weather    Weather         `json:"weather"`
	Music      []string        `json:"music"`
	FocusTip   string          `json:"focus_tip"`
	FreeBlocks []FreeBlock     `json:"free_blocks"`
	Weekend    bool            `json:"weekend"`
}

type CelebrationsData struct {
	UpcomingFamily     []Occasion `json:"upcoming_family"`
	UpcomingColleagues []Occasion `json:"upcoming_colleagues"`
}

type RouteData struct {
	RouteInfo
	LeaveBy string `json:"leave_by,omitempty"`
}

type WorkData struct {
	Emails       []Email  `json:"emails"`
	UrgentEmails []Email  `json:"urgent_emails,omitempty"`
	Tickets      []Ticket `json:"tickets"`
	TopTickets   []Ticket `json:"top_tickets,omitempty"`
	Birthdays    []string `json:"birthdays,omitempty"`
	FocusPlan    []string `json:"focus_plan,omitempty"`
	WeeklyReview []string `json:"weekly_review,omitempty"`
}

type FitnessData struct {
	Plan          string     `json:"plan"`
	SuggestedTime *FreeBlock `json:"suggested_time,omitempty"`
	MealTip       string     `json:"meal_tip"`
}

type HobbyData struct {
	Task          string     `json:"task"`
	SuggestedTime *FreeBlock `json:"suggested_time,omitempty"`
}

type EveningData struct {
	Movies     []string `json:"movies"`
	Playlists  []string `json:"playlists"`
	Suggestion string   `json:"suggestion"`
}

type WindDownData struct {
	JournalPrompts []string `json:"journal_prompts"`
	LightsOut      string   `json:"lights_out"`
	Routine        []string `json:"routine"`
	Weekend        bool     `json:"weekend"`
}

type NutritionData struct {
	Plan          MealPlan   `json:"plan"`
	SuggestedTime *FreeBlock `json:"suggested_time,omitempty"`
}

type FinanceData struct {
	Bills         []Bill     `json:"bills"`
	EmailsToPay   []Email    `json:"emails_to_pay"`
	Errands       []Errand   `json:"errands"`
	SuggestedTime *FreeBlock `json:"suggested_time,omitempty"`
}

type LearningData struct {
	Suggestions   []string   `json:"suggestions"`
	SuggestedTime *FreeBlock `json:"suggested_time,omitempty"`
}

// CardData is the union of agent payloads; only the section matching the
// emitting agent is set.
type CardData struct {
	Insights     *InsightsData     `json:"insights,omitempty"`
	Brief        *BriefData        `json:"brief,omitempty"`
	Celebrations *CelebrationsData `json:"celebrations,omitempty"`
	RouteData    *RouteData        `json:"route,omitempty"`
	Work         *WorkData         `json:"work,omitempty"`
	Fitness      *FitnessData      `json:"fitness,omitempty"`
	Hobby        *HobbyData        `json:"hobby,omitempty"`
	Evening      *EveningData      `json:"evening,omitempty"`
	WindDown     *WindDownData     `json:"wind_down,omitempty"`
	Nutrition    *NutritionData    `json:"nutrition,omitempty"`
	Finance      *FinanceData      `json:"finance,omitempty"`
	Learning     *LearningData     `json:"learning,omitempty"`
}
