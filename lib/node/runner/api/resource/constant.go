package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLNode          = APIPrefix + APIVersionV1 + "/"
	URLConfig        = APIPrefix + APIVersionV1 + "/config"
	URLProposals     = APIPrefix + APIVersionV1 + "/proposals"
	URLProposal      = APIPrefix + APIVersionV1 + "/proposals/{id}"
	URLProposalVotes = APIPrefix + APIVersionV1 + "/proposals/{id}/votes"
	URLVote          = APIPrefix + APIVersionV1 + "/proposals/{id}/votes/{voter}"
	URLProposalEnd   = APIPrefix + APIVersionV1 + "/proposals/{id}/end"
	URLProposalExec  = APIPrefix + APIVersionV1 + "/proposals/{id}/execute"
	URLOutbox        = APIPrefix + APIVersionV1 + "/outbox"
	URLOutboxEntry   = APIPrefix + APIVersionV1 + "/outbox/{sequence}"
)
