package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/council/lib/errors"
)

const (
	QueryLimit      = "limit"
	QueryStart      = "start"
	QueryStartAfter = "start_after"
)

// PageQuery reads the paging parameters of a list request. `cursorKey` is
// the name of the cursor parameter, `start` or `start_after`.
type PageQuery struct {
	request   *http.Request
	cursorKey string
	cursor    string
	limit     *uint32
}

func NewPageQuery(r *http.Request, cursorKey string) (*PageQuery, error) {
	p := &PageQuery{
		request:   r,
		cursorKey: cursorKey,
	}
	err := p.parseRequest()
	return p, err
}

// Limit is nil when the request has no `limit`.
func (p *PageQuery) Limit() *uint32 {
	return p.limit
}

func (p *PageQuery) Cursor() string {
	return p.cursor
}

func (p *PageQuery) HasCursor() bool {
	return len(p.cursor) > 0
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) NextLink(cursor string) string {
	path := p.request.URL.Path
	query := p.urlValues(cursor).Encode()
	return fmt.Sprintf("%s?%s", path, query)
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	p.cursor = q.Get(p.cursorKey)

	l := q.Get(QueryLimit)
	if l != "" {
		limit, err := strconv.ParseUint(l, 10, 32)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData(QueryLimit, l)
		}
		v := uint32(limit)
		p.limit = &v
	}
	return nil
}

func (p PageQuery) urlValues(cursor string) url.Values {
	v := url.Values{}

	if len(cursor) > 0 {
		v.Set(p.cursorKey, cursor)
	}
	if p.limit != nil {
		v.Set(QueryLimit, strconv.FormatUint(uint64(*p.limit), 10))
	}

	return v
}
