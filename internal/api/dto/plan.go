package dto

type PlanRequest struct {
	FromCity    string             `json:"fromCity"`
	ToCity      string             `json:"toCity"`
	Days        int                `json:"days"`
	Season      string             `json:"season"`
	Preferences map[string]float64 `json:"preferences"`
	Seed        *uint64            `json:"seed"`
}

type PlanPOIResponse struct {
	Identifier  string   `json:"identifier"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Labels      []string `json:"labels"`
	Description string   `json:"description,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
}

type PlanDayResponse struct {
	Day           int               `json:"day"`
	Title         string            `json:"title"`
	FromCity      string            `json:"from_city,omitempty"`
	ToCity        string            `json:"to_city"`
	TravelMinutes float64           `json:"travel_minutes"`
	Summary       []string          `json:"summary"`
	Note          string            `json:"note,omitempty"`
	POIs          []PlanPOIResponse `json:"pois"`
}

type PlanResponse struct {
	FromCity string            `json:"from_city"`
	ToCity   string            `json:"to_city"`
	NumDays  int               `json:"num_days"`
	Season   string            `json:"season"`
	Days     []PlanDayResponse `json:"days"`
}

type CitiesResponse struct {
	Cities []string `json:"cities"`
}

type SeasonsResponse struct {
	Seasons []string `json:"seasons"`
}
