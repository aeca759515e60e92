package models

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"Failed to prepare Negroni: machine busy"`
	Error   struct {
		Code    int    `json:"code" example:"409"`
		Message string `json:"message" example:"machine_busy"`
	} `json:"error"`
}

// PrepareResponse - ответ на постановку коктейля в очередь.
type PrepareResponse struct {
	Status  string `json:"status" example:"accepted"`
	Message string `json:"message" example:"Preparing Negroni"`
	Drink   string `json:"drink" example:"Negroni"`
	RunID   string `json:"run_id"`
}

// ValveCommandResponse - ответ на прямую команду клапану.
type ValveCommandResponse struct {
	Status  string     `json:"status" example:"ok"`
	Command string     `json:"command" example:"open"`
	Result  PourResult `json:"result"`
}
