package master

import "github.com/remitdesk/backoffice-go/internal/pkg/validator"

type CreateNameRequest struct {
	Name string `json:"name"`
}

func (r *CreateNameRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "is required"}}
	}
	return nil
}

type NameResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
