package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"

	"boscoin.io/council/lib/node"
	"boscoin.io/council/lib/node/runner/api/resource"
	"boscoin.io/council/lib/version"
)

// API Endpoint patterns
const (
	GetNodeInfoPattern         = "/"
	GetConfigPattern           = "/config"
	GetProposalsPattern        = "/proposals"
	GetProposalPattern         = "/proposals/{id}"
	GetProposalVotesPattern    = "/proposals/{id}/votes"
	GetVotePattern             = "/proposals/{id}/votes/{voter}"
	PostProposalPattern        = "/proposals"
	PostVotePattern            = "/proposals/{id}/votes"
	PostEndProposalPattern     = "/proposals/{id}/end"
	PostExecuteProposalPattern = "/proposals/{id}/execute"
	GetOutboxPattern           = "/outbox"
	GetOutboxEntryPattern      = "/outbox/{sequence}"
)

const (
	DefaultTerminalCacheSize = 1024

	// TerminalCacheMaxAge is the `max-age`, in seconds, of the responses
	// which can not change anymore.
	TerminalCacheMaxAge = 86400
)

type NetworkHandlerAPI struct {
	host      *node.Host
	urlPrefix string

	// terminal holds the proposals which can not change anymore, by id.
	terminal *lru.Cache
}

func NewNetworkHandlerAPI(host *node.Host, cacheSize int) (*NetworkHandlerAPI, error) {
	if cacheSize < 1 {
		cacheSize = DefaultTerminalCacheSize
	}

	terminal, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	return &NetworkHandlerAPI{
		host:      host,
		urlPrefix: resource.APIPrefix + resource.APIVersionV1,
		terminal:  terminal,
	}, nil
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return api.urlPrefix + pattern
}

// Routes registers the handlers to `router`. `mws` wrap every handler and
// `reads` wraps the GET handlers after them, e.g. with a response cache.
func (api *NetworkHandlerAPI) Routes(router *mux.Router, reads mux.MiddlewareFunc, mws ...mux.MiddlewareFunc) {
	get := router.Methods("GET").Subrouter()
	for _, mw := range mws {
		get.Use(mw)
	}
	if reads != nil {
		get.Use(reads)
	}

	get.HandleFunc(api.HandlerURLPattern(GetNodeInfoPattern), api.GetNodeInfoHandler)
	get.HandleFunc(api.HandlerURLPattern(GetConfigPattern), api.GetConfigHandler)
	get.HandleFunc(api.HandlerURLPattern(GetProposalsPattern), api.GetProposalsHandler)
	get.HandleFunc(api.HandlerURLPattern(GetProposalPattern), api.GetProposalHandler)
	get.HandleFunc(api.HandlerURLPattern(GetProposalVotesPattern), api.GetProposalVotesHandler)
	get.HandleFunc(api.HandlerURLPattern(GetVotePattern), api.GetVoteHandler)
	get.HandleFunc(api.HandlerURLPattern(GetOutboxPattern), api.GetOutboxHandler)
	get.HandleFunc(api.HandlerURLPattern(GetOutboxEntryPattern), api.GetOutboxEntryHandler)

	post := router.Methods("POST").Subrouter()
	for _, mw := range mws {
		post.Use(mw)
	}
	post.HandleFunc(api.HandlerURLPattern(PostProposalPattern), api.PostProposalHandler)
	post.HandleFunc(api.HandlerURLPattern(PostVotePattern), api.PostVoteHandler)
	post.HandleFunc(api.HandlerURLPattern(PostEndProposalPattern), api.PostEndProposalHandler)
	post.HandleFunc(api.HandlerURLPattern(PostExecuteProposalPattern), api.PostExecuteProposalHandler)
}

func nodeInfo(host *node.Host, proposalCount uint64) resource.NodeInfo {
	return resource.NodeInfo{
		Address:       host.Self(),
		Height:        host.Env().Height,
		ProposalCount: proposalCount,
		Version:       version.Version,
		GitCommit:     version.GitCommit,
	}
}

// setImmutable marks the response as shareable for a long time.
func setImmutable(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(TerminalCacheMaxAge)+", immutable")
}

func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache")
}
