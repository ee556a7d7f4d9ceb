package forum

type CreateThreadRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateThreadRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type ModerateThreadRequest struct {
	Pinned *bool `json:"pinned"`
	Locked *bool `json:"locked"`
}
