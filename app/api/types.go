package api

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type pollResponse struct {
	Status string `json:"status"`
	Videos int    `json:"videos"`
}

type whoamiResponse struct {
	Caller string `json:"caller"`
}
