package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"
)

type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList embeds `Resources` as "records"; `Extra` goes to the list
// body itself.
type ResourceList struct {
	Resources []Resource
	SelfLink  string
	NextLink  string
	Extra     hal.Entry
}

func NewResourceList(list []Resource, selfLink, nextLink string) *ResourceList {
	return &ResourceList{
		Resources: list,
		SelfLink:  selfLink,
		NextLink:  nextLink,
	}
}

func (l *ResourceList) SetExtra(key string, value interface{}) *ResourceList {
	if l.Extra == nil {
		l.Extra = hal.Entry{}
	}
	l.Extra[key] = value
	return l
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(l, l.LinkSelf())

	rCollection := hal.ResourceCollection{}
	for _, apiResource := range l.Resources {
		rCollection = append(rCollection, apiResource.Resource())
	}
	rl.EmbedCollection("records", rCollection)

	if l.LinkNext() != "" {
		rl.AddLink("next", hal.NewLink(l.LinkNext()))
	}

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

func (l ResourceList) LinkNext() string {
	return l.NextLink
}

func (l ResourceList) GetMap() hal.Entry {
	if l.Extra == nil {
		return hal.Entry{}
	}
	return l.Extra
}

func expand(pattern string, vars ...string) string {
	for i := 0; i+1 < len(vars); i += 2 {
		pattern = strings.Replace(pattern, "{"+vars[i]+"}", vars[i+1], -1)
	}
	return pattern
}

func formatUint(i uint64) string {
	return strconv.FormatUint(i, 10)
}
