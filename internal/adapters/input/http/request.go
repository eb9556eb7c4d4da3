package http

type (
	// SessionRequest struct - HTTP request DTO carrying the payload to store
	SessionRequest struct {
		Data map[string]interface{} `json:"data" validate:"required" form:"data"`
	}

	// DestroyRequest struct - HTTP request DTO for batched destroy
	DestroyRequest struct {
		IDs []string `json:"ids" validate:"required,min=1,dive,required" form:"ids"`
	}
)
