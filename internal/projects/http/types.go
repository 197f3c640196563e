package http

type createReq struct {
	Name      string `json:"name"`
	Client    string `json:"client"`
	Group     string `json:"group"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
