package governance

import (
	"encoding/json"
	"fmt"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
)

// Message is an outbound call emitted by an operation. Messages are run
// by the host after the operation is committed, in emission order.
type Message struct {
	Target string `json:"target" msgpack:"target"`
	Msg    []byte `json:"msg" msgpack:"msg"`
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is what every state-changing operation returns besides its own
// result fields.
type Response struct {
	Messages   []Message   `json:"messages"`
	Attributes []Attribute `json:"attributes"`
}

func (r *Response) AddAttribute(key string, value interface{}) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: fmt.Sprintf("%v", value)})
	return r
}

func (r *Response) AddMessage(m Message) *Response {
	r.Messages = append(r.Messages, m)
	return r
}

// Attribute returns the value of the first attribute named `key`.
func (r Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}

	return "", false
}

// LogContext turns the attributes into log15 key-value pairs.
func (r Response) LogContext() []interface{} {
	ctx := make([]interface{}, 0, len(r.Attributes)*2)
	for _, a := range r.Attributes {
		ctx = append(ctx, a.Key, a.Value)
	}
	return ctx
}

type SubmitProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Response
}

type EndProposalResponse struct {
	Result ProposalResult `json:"result"`
	Response
}

type TransferMsg struct {
	Recipient string        `json:"recipient"`
	Amount    common.Amount `json:"amount"`
}

// TokenExecuteMsg is the payload sent to the governance token contract.
type TokenExecuteMsg struct {
	Transfer *TransferMsg `json:"transfer,omitempty"`
}

// NewTransferMessage builds the message moving `amount` of `token` to
// `recipient`.
func NewTransferMessage(token, recipient string, amount common.Amount) (Message, error) {
	b, err := json.Marshal(TokenExecuteMsg{
		Transfer: &TransferMsg{Recipient: recipient, Amount: amount},
	})
	if err != nil {
		return Message{}, err
	}

	return Message{Target: token, Msg: b}, nil
}

// ExecuteMsg is the payload of calls addressed to the governance module
// itself, i.e. execute-calls of a proposal targeting it.
type ExecuteMsg struct {
	UpdateConfig *UpdateConfigMsg `json:"update_config,omitempty"`
}

type UpdateConfigMsg struct {
	Config CreateOrUpdateConfig `json:"config"`
}

func ParseExecuteMsg(b []byte) (msg ExecuteMsg, err error) {
	if err = json.Unmarshal(b, &msg); err != nil {
		err = errors.InvalidMessage.Clone().SetData("error", err.Error())
		return
	}
	if msg.UpdateConfig == nil {
		err = errors.InvalidMessage.Clone().SetData("error", "unknown message")
		return
	}

	return
}

// NewUpdateConfigMsg encodes an `update_config` payload; used to build
// execute-calls changing the governance parameters.
func NewUpdateConfigMsg(config CreateOrUpdateConfig) []byte {
	return common.MustMarshalJSON(ExecuteMsg{UpdateConfig: &UpdateConfigMsg{Config: config}})
}
