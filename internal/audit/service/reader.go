package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
	"github.com/prasetyowira/credential-core/internal/audit/dto"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
)

const defaultPageSize = 20

type Reader struct {
	repo        domain.SecurityEventRepository
	pageSizeCap int
}

func NewReader(repo domain.SecurityEventRepository, pageSizeCap int) *Reader {
	// A non-positive cap would clamp every page to zero rows and break the
	// overfetch arithmetic below.
	if pageSizeCap <= 0 {
		pageSizeCap = defaultPageSize
	}

	return &Reader{repo: repo, pageSizeCap: pageSizeCap}
}

// Read returns one page of events matching the filter, newest first. The
// page token carries the keyset cursor of the last returned row, so a fixed
// filter yields disjoint, order-preserving pages even while newer events are
// being published.
func (r *Reader) Read(ctx context.Context, input dto.ListInput) (*dto.PageOutput, error) {
	limit := input.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > r.pageSizeCap {
		limit = r.pageSizeCap
	}

	filter := domain.Filter{
		UserID:   input.UserID,
		TenantID: input.TenantID,
		Type:     domain.EventType(input.Type),
		From:     input.From,
		To:       input.To,
		Limit:    limit + 1,
	}

	if input.PageToken != "" {
		at, id, err := decodePageToken(input.PageToken)
		if err != nil {
			return nil, err
		}
		filter.BeforeAt = &at
		filter.BeforeID = id
	}

	events, err := r.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.PageOutput{}
	if len(events) > limit {
		last := events[limit-1]
		out.NextPageToken = encodePageToken(last.OccurredAt, last.ID)
		events = events[:limit]
	}

	out.Events = make([]dto.SecurityEventOutput, 0, len(events))
	for _, e := range events {
		out.Events = append(out.Events, toOutput(e))
	}

	return out, nil
}

func encodePageToken(at time.Time, id string) string {
	raw := at.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodePageToken(token string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", autherror.ErrInvalidPageToken
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", autherror.ErrInvalidPageToken
	}

	at, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: bad cursor timestamp", autherror.ErrInvalidPageToken)
	}

	return at, parts[1], nil
}
