package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/council/lib/governance"
)

// Operation is the result of a state-changing request: the attributes and
// messages of the engine response plus the operation's own fields.
type Operation struct {
	self     string
	response governance.Response
	fields   hal.Entry
}

func NewOperation(self string, response governance.Response) *Operation {
	return &Operation{self: self, response: response, fields: hal.Entry{}}
}

func (r *Operation) Set(key string, value interface{}) *Operation {
	r.fields[key] = value
	return r
}

func (r Operation) GetMap() hal.Entry {
	attributes := r.response.Attributes
	if attributes == nil {
		attributes = []governance.Attribute{}
	}

	messages := make([]hal.Entry, 0, len(r.response.Messages))
	for _, m := range r.response.Messages {
		messages = append(messages, hal.Entry{"target": m.Target, "msg": rawMsg(m.Msg)})
	}

	entry := hal.Entry{
		"attributes": attributes,
		"messages":   messages,
	}
	for k, v := range r.fields {
		entry[k] = v
	}

	return entry
}

func (r Operation) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Operation) LinkSelf() string {
	return r.self
}
