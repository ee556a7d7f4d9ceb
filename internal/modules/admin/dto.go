package admin

type SubmitRequestBody struct {
	Content string   `json:"content" binding:"required,min=10"`
	Images  []string `json:"images"`
}

type ResolveRequestBody struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

type BanRequest struct {
	Reason string `json:"reason"`
}

type TitleRequest struct {
	Title string `json:"title" binding:"max=64"`
}

type ListUsersQuery struct {
	Query  string
	Role   string
	Banned *bool
	Page   int
	Limit  int
}
