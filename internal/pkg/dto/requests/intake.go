package requests

type SubmitTurn struct {
	Text string `json:"text" validate:"required,min=1,max=4000"`
}

type ResumeSession struct {
	ResumeToken string `json:"resumeToken" validate:"required"`
}
