package client

import (
	"context"
	neturl "net/url"
	"strconv"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/governance"
)

// Oracle reads historical balances of the voting token `Token`.
type Oracle struct {
	client *Client
	Token  string
}

func NewOracle(client *Client, token string) *Oracle {
	return &Oracle{client: client, Token: token}
}

func heightQuery(height uint64) neturl.Values {
	return neturl.Values{QueryHeight: []string{strconv.FormatUint(height, 10)}}
}

func (o *Oracle) BalanceAt(address string, height uint64) (common.Amount, error) {
	var b Balance
	url := expandURL(UrlBalanceAt, "token", o.Token, "address", address)
	if err := o.client.Get(context.Background(), url, heightQuery(height), &b); err != nil {
		return 0, err
	}

	return b.Balance, nil
}

func (o *Oracle) TotalSupplyAt(height uint64) (common.Amount, error) {
	var s TotalSupply
	url := expandURL(UrlTotalSupply, "token", o.Token)
	if err := o.client.Get(context.Background(), url, heightQuery(height), &s); err != nil {
		return 0, err
	}

	return s.TotalSupply, nil
}

func NewOracleFactory(client *Client) governance.OracleFactory {
	return func(token string) (governance.VotingPowerOracle, error) {
		return NewOracle(client, token), nil
	}
}
