package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000" example:"How do I prepare for a system design interview?"`
	Context string `json:"context" validate:"omitempty,oneof=general interview resume goals coding" example:"interview"`
}

func (r ChatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	Source   string `json:"source"` // "assistant" or "fallback"
	Fallback bool   `json:"fallback"`
}
