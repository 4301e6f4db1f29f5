package errors

//
// Codes are grouped by kind so that clients can classify a failure without
// parsing messages:
//
//   100-109 validation
//   110-119 authorization
//   120-129 proposal state
//   130-139 not found
//   140     already voted
//   150     no voting power
//   160-169 arithmetic
//   200-209 storage
//   300-319 api and collaborators
//
var (
	InvalidRatio     = NewError(100, "ratio must be between 0 and 1")
	InvalidProposal  = NewError(101, "invalid proposal")
	InvalidAddress   = NewError(102, "invalid address")
	ConfigIncomplete = NewError(103, "all params should be available during initialization")
	InvalidDecimal   = NewError(104, "invalid decimal")
	InvalidMessage   = NewError(105, "invalid message")
	InvalidSignature = NewError(106, "invalid signature")

	Unauthorized = NewError(110, "unauthorized")

	ProposalNotActive       = NewError(120, "proposal is not active")
	VotingPeriodEnded       = NewError(121, "voting period has ended")
	VotingPeriodNotEnded    = NewError(122, "voting period has not ended")
	NotPassed               = NewError(123, "proposal has not passed or has already been executed")
	DelayNotEnded           = NewError(124, "proposal has not reached execution time yet")
	Expired                 = NewError(125, "proposal has expired")
	InvalidStatusTransition = NewError(126, "invalid proposal status transition")
	AlreadyInstantiated     = NewError(127, "governance is already instantiated")
	NotInstantiated         = NewError(128, "governance is not instantiated")
	DepositAlreadyUsed      = NewError(129, "deposit receipt is already used")

	ProposalNotFound = NewError(130, "proposal not found")
	VoteNotFound     = NewError(131, "vote not found")

	AlreadyVoted = NewError(140, "user has already voted on this proposal")

	NoVotingPower = NewError(150, "user has no voting power at block")

	ArithmeticOverflow  = NewError(160, "arithmetic overflow")
	ArithmeticUnderflow = NewError(161, "arithmetic underflow")
	DivisionByZero      = NewError(162, "division by zero")

	StorageRecordDoesNotExist  = NewError(200, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(201, "record already exists in storage")
	StorageCoreError           = NewError(202, "storage error")
	NotImplemented             = NewError(203, "not implemented")
	StorageInvalidConfig       = NewError(204, "invalid storage config")

	BadRequestParameter     = NewError(300, "bad request parameter")
	PageQueryLimitMaxExceed = NewError(301, "limit is over max limit")
	ContentTypeNotJSON      = NewError(302, "`Content-Type` must be 'application/json'")
	HTTPServerError         = NewError(303, "Internal Server Error")
	HTTPCacheInvalidConfig  = NewError(304, "invalid http cache config")
	CollaboratorError       = NewError(310, "collaborator query failed")
	RoleNotRegistered       = NewError(311, "role is not registered")
)

// NewInvalidProposal returns InvalidProposal with the failing reason in its
// message and data.
func NewInvalidProposal(reason string) *Error {
	e := InvalidProposal.Clone()
	e.Message = InvalidProposal.Message + ": " + reason

	return e.SetData("reason", reason)
}
