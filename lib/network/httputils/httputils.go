package httputils

import (
	"net/http"
	"strconv"

	"boscoin.io/council/lib/errors"
)

var (
	ErrorsToStatus = map[uint]int{
		errors.InvalidRatio.Code:     http.StatusBadRequest,
		errors.InvalidProposal.Code:  http.StatusBadRequest,
		errors.InvalidAddress.Code:   http.StatusBadRequest,
		errors.ConfigIncomplete.Code: http.StatusBadRequest,
		errors.InvalidDecimal.Code:   http.StatusBadRequest,
		errors.InvalidMessage.Code:   http.StatusBadRequest,
		errors.InvalidSignature.Code: http.StatusUnauthorized,

		errors.Unauthorized.Code: http.StatusForbidden,

		errors.ProposalNotActive.Code:       http.StatusConflict,
		errors.VotingPeriodEnded.Code:       http.StatusConflict,
		errors.VotingPeriodNotEnded.Code:    http.StatusConflict,
		errors.NotPassed.Code:               http.StatusConflict,
		errors.DelayNotEnded.Code:           http.StatusConflict,
		errors.Expired.Code:                 http.StatusConflict,
		errors.InvalidStatusTransition.Code: http.StatusConflict,
		errors.AlreadyInstantiated.Code:     http.StatusConflict,
		errors.NotInstantiated.Code:         http.StatusServiceUnavailable,
		errors.DepositAlreadyUsed.Code:      http.StatusConflict,

		errors.ProposalNotFound.Code: http.StatusNotFound,
		errors.VoteNotFound.Code:     http.StatusNotFound,

		errors.AlreadyVoted.Code:  http.StatusConflict,
		errors.NoVotingPower.Code: http.StatusUnprocessableEntity,

		errors.ArithmeticOverflow.Code:  http.StatusUnprocessableEntity,
		errors.ArithmeticUnderflow.Code: http.StatusUnprocessableEntity,
		errors.DivisionByZero.Code:      http.StatusUnprocessableEntity,

		errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
		errors.StorageRecordAlreadyExists.Code: http.StatusConflict,

		errors.BadRequestParameter.Code:     http.StatusBadRequest,
		errors.PageQueryLimitMaxExceed.Code: http.StatusBadRequest,
		errors.ContentTypeNotJSON.Code:      http.StatusUnsupportedMediaType,
		errors.CollaboratorError.Code:       http.StatusBadGateway,
		errors.RoleNotRegistered.Code:       http.StatusBadGateway,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}

// IsJSONContentType checks the request body is declared as json.
func IsJSONContentType(r *http.Request) bool {
	switch r.Header.Get("Content-Type") {
	case "application/json", "application/json; charset=utf-8":
		return true
	}
	return false
}

func itoa(i uint) string {
	return strconv.FormatUint(uint64(i), 10)
}
