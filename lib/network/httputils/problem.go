package httputils

import (
	"encoding/json"
	"net/http"

	"boscoin.io/council/lib/errors"
)

const ProblemTypePrefix = "https://boscoin.io/council/problems/"

// Problem is a RFC 7807 problem details object. `Code` and `Data` extend it
// with the `*errors.Error` it was made from.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return NewDetailedStatusProblem(status, err.Error())
	}

	p := Problem{
		Type:   ProblemTypePrefix + "error-" + itoa(e.Code),
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
	}
	if len(e.Data) > 0 {
		p.Data = e.Data
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

// ToError turns the problem back into a coded error when it carries a code.
func (p Problem) ToError() error {
	if p.Code == 0 {
		return errors.HTTPServerError.Clone().SetData("status", p.Status).SetData("detail", p.Detail)
	}

	e := &errors.Error{Code: p.Code, Message: p.Title, Data: map[string]interface{}{}}
	for k, v := range p.Data {
		e.Data[k] = v
	}
	return e
}
