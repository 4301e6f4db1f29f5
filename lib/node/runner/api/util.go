package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcutil/base58"
	"github.com/gorilla/mux"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/network/httputils"
	"boscoin.io/council/lib/storage"
)

const MaxRequestBodySize int64 = 64 * 1024

func parseUintVar(r *http.Request, key string) (uint64, error) {
	v := mux.Vars(r)[key]
	i, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData(key, v)
	}
	return i, nil
}

func parseUintQuery(v, key string) (*uint64, error) {
	if v == "" {
		return nil, nil
	}

	i, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, errors.BadRequestParameter.Clone().SetData(key, v)
	}
	return &i, nil
}

func readJSON(r *http.Request, v interface{}) error {
	if !httputils.IsJSONContentType(r) {
		return errors.ContentTypeNotJSON
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxRequestBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if e, ok := err.(*errors.Error); ok {
			return e
		}
		return errors.BadRequestParameter.Clone().SetData("error", err.Error())
	}

	return nil
}

// snapshot runs `f` against a consistent view of the committed state.
func (api NetworkHandlerAPI) snapshot(f func(st *storage.LevelDBBackend) error) error {
	st, err := api.host.Storage().Snapshot()
	if err != nil {
		return err
	}
	defer st.Release()

	return f(st)
}

// EncodeVoteCursor makes the opaque `start_after` cursor of a vote page.
func EncodeVoteCursor(voter string) string {
	return base58.Encode([]byte(voter))
}

func DecodeVoteCursor(cursor string) (string, error) {
	b := base58.Decode(cursor)
	if len(b) < 1 {
		return "", errors.BadRequestParameter.Clone().SetData("start_after", cursor)
	}
	return string(b), nil
}
