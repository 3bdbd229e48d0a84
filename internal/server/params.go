package server

import (
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"trustrace/internal/domain"
	"trustrace/internal/domain/value"
	"trustrace/pkg/errcodes"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func parseAddress(raw string) (value.Address, error) {
	address, err := value.ParseAddress(raw)
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidAddress, "address must be a 0x hex address or an ENS name")
	}

	return address, nil
}

func pathID(r *http.Request, code failure.ErrorCode) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", domain.NewError(code, "id is required")
	}

	return id, nil
}

func paging(r *http.Request) (limit, offset int, err error) {
	query := r.URL.Query()
	limit, offset = defaultLimit, 0

	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxLimit {
			return 0, 0, domain.NewError(errcodes.InvalidPaging, "limit must be within [1, 100]")
		}
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, domain.NewError(errcodes.InvalidPaging, "offset must not be negative")
		}
	}

	return limit, offset, nil
}
