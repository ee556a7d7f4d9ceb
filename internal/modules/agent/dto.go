package agent

type CreateAgentRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Services    []string          `json:"services"`
	Price       float64           `json:"price" binding:"gte=0"`
	Currency    string            `json:"currency"`
	Tags        []string          `json:"tags"`
	Socials     map[string]string `json:"socials"`
	AvatarURL   string            `json:"avatar_url"`
}

type UpdateAgentRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Services    []string          `json:"services"`
	Price       *float64          `json:"price"`
	Currency    string            `json:"currency"`
	Tags        []string          `json:"tags"`
	Socials     map[string]string `json:"socials"`
	AvatarURL   string            `json:"avatar_url"`
}

type ListQuery struct {
	Search    string
	Tag       string
	Currency  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}
